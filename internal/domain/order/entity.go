package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyPaid     = errors.New("order is already paid")
	ErrMissingRemoteID = errors.New("remote order id is required")
)

type Order struct {
	id              uuid.UUID
	userID          uuid.UUID
	lineItems       []LineItem
	originalAmount  decimal.Decimal
	couponCode      *string
	couponDiscount  decimal.Decimal
	totalAmount     decimal.Decimal
	currency        string
	remoteOrderID   string
	remotePaymentID *string
	remoteSignature *string
	status          Status
	paidAt          *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// NewPendingOrder builds a draft awaiting persistence; the store assigns the id.
func NewPendingOrder(
	userID uuid.UUID,
	items []LineItem,
	quote Quote,
	couponCode *string,
	currency string,
	remoteOrderID string,
) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}
	if remoteOrderID == "" {
		return nil, ErrMissingRemoteID
	}

	copied := make([]LineItem, len(items))
	copy(copied, items)

	return &Order{
		userID:         userID,
		lineItems:      copied,
		originalAmount: quote.Original,
		couponCode:     couponCode,
		couponDiscount: quote.Discount,
		totalAmount:    quote.Total,
		currency:       currency,
		remoteOrderID:  remoteOrderID,
		status:         StatusPending,
	}, nil
}

func ReconstructOrder(
	id, userID uuid.UUID,
	items []LineItem,
	originalAmount decimal.Decimal,
	couponCode *string,
	couponDiscount, totalAmount decimal.Decimal,
	currency, remoteOrderID string,
	remotePaymentID, remoteSignature *string,
	status Status,
	paidAt *time.Time,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:              id,
		userID:          userID,
		lineItems:       items,
		originalAmount:  originalAmount,
		couponCode:      couponCode,
		couponDiscount:  couponDiscount,
		totalAmount:     totalAmount,
		currency:        currency,
		remoteOrderID:   remoteOrderID,
		remotePaymentID: remotePaymentID,
		remoteSignature: remoteSignature,
		status:          status,
		paidAt:          paidAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (o *Order) MarkPaid(remotePaymentID, remoteSignature string, at time.Time) error {
	if o.status == StatusPaid {
		return ErrAlreadyPaid
	}
	o.status = StatusPaid
	o.remotePaymentID = &remotePaymentID
	o.remoteSignature = &remoteSignature
	o.paidAt = &at
	o.updatedAt = at
	return nil
}

func (o *Order) IsPaid() bool {
	return o.status == StatusPaid
}

func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.userID == userID
}

// QualifiesForCoupon compares the pre-discount amount against the issuance threshold.
func (o *Order) QualifiesForCoupon(threshold decimal.Decimal) bool {
	return o.originalAmount.GreaterThanOrEqual(threshold)
}

func (o *Order) ID() uuid.UUID                   { return o.id }
func (o *Order) UserID() uuid.UUID               { return o.userID }
func (o *Order) LineItems() []LineItem           { return o.lineItems }
func (o *Order) OriginalAmount() decimal.Decimal { return o.originalAmount }
func (o *Order) CouponCode() *string             { return o.couponCode }
func (o *Order) CouponDiscount() decimal.Decimal { return o.couponDiscount }
func (o *Order) TotalAmount() decimal.Decimal    { return o.totalAmount }
func (o *Order) Currency() string                { return o.currency }
func (o *Order) RemoteOrderID() string           { return o.remoteOrderID }
func (o *Order) RemotePaymentID() *string        { return o.remotePaymentID }
func (o *Order) RemoteSignature() *string        { return o.remoteSignature }
func (o *Order) Status() Status                  { return o.status }
func (o *Order) PaidAt() *time.Time              { return o.paidAt }
func (o *Order) CreatedAt() time.Time            { return o.createdAt }
func (o *Order) UpdatedAt() time.Time            { return o.updatedAt }
