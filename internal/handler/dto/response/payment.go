package response

import (
	"time"

	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderResponse keeps the field names the storefront checkout already consumes.
type CreateOrderResponse struct {
	RazorpayOrderID string    `json:"razorpayOrderId"`
	OrderID         uuid.UUID `json:"mongoOrderId"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	Key             string    `json:"key"`
}

func FromCreateOrderResult(r *commands.CreateOrderResult) *CreateOrderResponse {
	return &CreateOrderResponse{
		RazorpayOrderID: r.RemoteOrderID,
		OrderID:         r.OrderID,
		Amount:          r.AmountMinor,
		Currency:        r.Currency,
		Key:             r.KeyID,
	}
}

type VerifyPaymentResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	OrderID uuid.UUID `json:"orderId"`
}

// PaymentVerifiedMessage is matched verbatim by the storefront before it clears the cart,
// so replays of an already paid order answer with it too.
const PaymentVerifiedMessage = "Payment verified successfully"

func FromVerifyPaymentResult(r *commands.VerifyPaymentResult) *VerifyPaymentResponse {
	return &VerifyPaymentResponse{
		Success: true,
		Message: PaymentVerifiedMessage,
		OrderID: r.OrderID,
	}
}

type OrderItemResponse struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderResponse struct {
	ID                   uuid.UUID           `json:"id"`
	Status               string              `json:"status"`
	Products             []OrderItemResponse `json:"products"`
	OriginalAmount       decimal.Decimal     `json:"originalAmount"`
	CouponCode           *string             `json:"couponCode,omitempty"`
	CouponDiscountAmount decimal.Decimal     `json:"couponDiscountAmount"`
	TotalAmount          decimal.Decimal     `json:"totalAmount"`
	Currency             string              `json:"currency"`
	RazorpayOrderID      string              `json:"razorpayOrderId"`
	RazorpayPaymentID    *string             `json:"razorpayPaymentId,omitempty"`
	PaidAt               *time.Time          `json:"paidAt,omitempty"`
	CreatedAt            time.Time           `json:"createdAt"`
}

func FromOrderView(v *queries.OrderView) *OrderResponse {
	items := make([]OrderItemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = OrderItemResponse{
			ProductID: it.ProductRef,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
		}
	}
	return &OrderResponse{
		ID:                   v.ID,
		Status:               v.Status,
		Products:             items,
		OriginalAmount:       v.OriginalAmount,
		CouponCode:           v.CouponCode,
		CouponDiscountAmount: v.CouponDiscountAmount,
		TotalAmount:          v.TotalAmount,
		Currency:             v.Currency,
		RazorpayOrderID:      v.RemoteOrderID,
		RazorpayPaymentID:    v.RemotePaymentID,
		PaidAt:               v.PaidAt,
		CreatedAt:            v.CreatedAt,
	}
}
