//go:build unit || e2e

package builder

import (
	"encoding/json"
	"time"

	"storefront-api/internal/domain/order"
	reqdto "storefront-api/internal/handler/dto/request"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type OrderLine struct {
	ProductRef string
	Quantity   int
	UnitPrice  decimal.Decimal
}

type OrderBuilder struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Lines           []OrderLine
	CouponCode      *string
	CouponDiscount  decimal.Decimal
	Currency        string
	RemoteOrderID   string
	RemotePaymentID *string
	RemoteSignature *string
	Status          order.Status
	PaidAt          *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewOrderBuilder() *OrderBuilder {
	now := time.Now()
	return &OrderBuilder{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Lines: []OrderLine{
			{ProductRef: "prod_tshirt", Quantity: 2, UnitPrice: decimal.RequireFromString("150.00")},
		},
		CouponDiscount: decimal.Zero,
		Currency:       "INR",
		RemoteOrderID:  "order_" + uuid.NewString()[:14],
		Status:         order.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) lineItems() []order.LineItem {
	items := make([]order.LineItem, len(b.Lines))
	for i, l := range b.Lines {
		item, err := order.NewLineItem(l.ProductRef, l.Quantity, l.UnitPrice)
		if err != nil {
			panic(err)
		}
		items[i] = item
	}
	return items
}

func (b *OrderBuilder) quote() order.Quote {
	return order.NewQuote(order.SumLineItems(b.lineItems()), b.CouponDiscount)
}

// Build methods
func (b *OrderBuilder) BuildDomain() *order.Order {
	q := b.quote()
	return order.ReconstructOrder(
		b.ID,
		b.UserID,
		b.lineItems(),
		q.Original,
		b.CouponCode,
		q.Discount,
		q.Total,
		b.Currency,
		b.RemoteOrderID,
		b.RemotePaymentID,
		b.RemoteSignature,
		b.Status,
		b.PaidAt,
		b.CreatedAt,
		b.UpdatedAt,
	)
}

func (b *OrderBuilder) BuildDraft() (*order.Order, error) {
	return order.NewPendingOrder(b.UserID, b.lineItems(), b.quote(), b.CouponCode, b.Currency, b.RemoteOrderID)
}

func (b *OrderBuilder) BuildInfra() sqlc.Orders {
	q := b.quote()
	records := make([]map[string]any, len(b.Lines))
	for i, l := range b.Lines {
		records[i] = map[string]any{"product_ref": l.ProductRef, "quantity": l.Quantity, "unit_price": l.UnitPrice}
	}
	items, _ := json.Marshal(records)

	row := sqlc.Orders{
		ID:                   b.ID,
		UserID:               b.UserID,
		LineItems:            items,
		OriginalAmount:       q.Original,
		CouponDiscountAmount: q.Discount,
		TotalAmount:          q.Total,
		Currency:             b.Currency,
		RemoteOrderID:        b.RemoteOrderID,
		Status:               b.Status.String(),
		CreatedAt:            pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:            pgtype.Timestamptz{Time: b.UpdatedAt, Valid: true},
	}
	if b.CouponCode != nil {
		row.CouponCode = pgtype.Text{String: *b.CouponCode, Valid: true}
	}
	if b.RemotePaymentID != nil {
		row.RemotePaymentID = pgtype.Text{String: *b.RemotePaymentID, Valid: true}
	}
	if b.RemoteSignature != nil {
		row.RemoteSignature = pgtype.Text{String: *b.RemoteSignature, Valid: true}
	}
	if b.PaidAt != nil {
		row.PaidAt = pgtype.Timestamptz{Time: *b.PaidAt, Valid: true}
	}
	return row
}

func (b *OrderBuilder) BuildCreateRequestDTO() reqdto.CreateOrderRequest {
	products := make([]reqdto.ProductLine, len(b.Lines))
	for i, l := range b.Lines {
		products[i] = reqdto.ProductLine{ID: l.ProductRef, Price: l.UnitPrice, Quantity: l.Quantity}
	}
	return reqdto.CreateOrderRequest{Products: products, CouponCode: b.CouponCode}
}

func (b *OrderBuilder) BuildVerifyRequestDTO(paymentID, sig string) reqdto.VerifyPaymentRequest {
	return reqdto.VerifyPaymentRequest{
		RazorpayOrderID:   b.RemoteOrderID,
		RazorpayPaymentID: paymentID,
		RazorpaySignature: sig,
		OrderID:           b.ID,
	}
}

func (b *OrderBuilder) BuildView() *queries.OrderView {
	q := b.quote()
	items := make([]queries.OrderItemView, len(b.Lines))
	for i, l := range b.Lines {
		items[i] = queries.OrderItemView{ProductRef: l.ProductRef, Quantity: l.Quantity, UnitPrice: l.UnitPrice}
	}
	return &queries.OrderView{
		ID:                   b.ID,
		UserID:               b.UserID,
		Status:               b.Status.String(),
		Items:                items,
		OriginalAmount:       q.Original,
		CouponCode:           b.CouponCode,
		CouponDiscountAmount: q.Discount,
		TotalAmount:          q.Total,
		Currency:             b.Currency,
		RemoteOrderID:        b.RemoteOrderID,
		RemotePaymentID:      b.RemotePaymentID,
		PaidAt:               b.PaidAt,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}
}

// Fluent builder methods
func (b *OrderBuilder) WithID(id uuid.UUID) *OrderBuilder {
	b.ID = id
	return b
}

func (b *OrderBuilder) WithUserID(userID uuid.UUID) *OrderBuilder {
	b.UserID = userID
	return b
}

func (b *OrderBuilder) WithLines(lines ...OrderLine) *OrderBuilder {
	b.Lines = lines
	return b
}

// WithTotal replaces the cart with a single line priced at amount.
func (b *OrderBuilder) WithTotal(amount string) *OrderBuilder {
	b.Lines = []OrderLine{{ProductRef: "prod_single", Quantity: 1, UnitPrice: decimal.RequireFromString(amount)}}
	return b
}

func (b *OrderBuilder) WithCoupon(code string, discount decimal.Decimal) *OrderBuilder {
	b.CouponCode = &code
	b.CouponDiscount = discount
	return b
}

func (b *OrderBuilder) WithRemoteOrderID(id string) *OrderBuilder {
	b.RemoteOrderID = id
	return b
}

func (b *OrderBuilder) AsPaid(paymentID, sig string, at time.Time) *OrderBuilder {
	b.Status = order.StatusPaid
	b.RemotePaymentID = &paymentID
	b.RemoteSignature = &sig
	b.PaidAt = &at
	return b
}
