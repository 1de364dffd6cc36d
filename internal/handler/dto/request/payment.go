package request

import (
	"strings"

	"storefront-api/internal/domain/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductLine struct {
	ID       string          `json:"_id"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

type CreateOrderRequest struct {
	Products   []ProductLine `json:"products" binding:"required"`
	CouponCode *string       `json:"couponCode,omitempty"`
}

func (r CreateOrderRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CreateOrderRequest) ToLineItems() ([]order.LineItem, error) {
	if len(r.Products) == 0 {
		return nil, order.ErrNoLineItems
	}

	items := make([]order.LineItem, 0, len(r.Products))
	for _, p := range r.Products {
		item, err := order.NewLineItem(strings.TrimSpace(p.ID), p.Quantity, p.Price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Field names follow the provider's checkout callback.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id"`
	RazorpaySignature string    `json:"razorpay_signature"`
	OrderID           uuid.UUID `json:"orderId"`
}

func (r VerifyPaymentRequest) HasAllFields() bool {
	return r.RazorpayOrderID != "" && r.RazorpayPaymentID != "" && r.RazorpaySignature != "" && r.OrderID != uuid.Nil
}
