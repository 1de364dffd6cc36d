package commands

import (
	"context"

	"storefront-api/internal/pkg/errs"
)

var (
	ErrInvalidInput            = errs.New("invalid input")
	ErrInvalidCoupon           = errs.New("invalid coupon")
	ErrCouponNotFound          = errs.New("coupon not found")
	ErrCouponExpired           = errs.New("coupon has expired")
	ErrCouponAlreadyUsed       = errs.New("coupon already used")
	ErrOrderNotFound           = errs.New("order not found")
	ErrSignatureMismatch       = errs.New("payment signature mismatch")
	ErrGateway                 = errs.New("payment gateway error")
	ErrInvalidTransition       = errs.New("invalid order state transition")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
	ErrReconciliationFailed    = errs.New("payment reconciliation failed")
)

type RemoteOrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

type RemoteOrder struct {
	ID          string
	AmountMinor int64
	Currency    string
}

// PaymentGateway creates provider-side orders. Implementations do not retry.
type PaymentGateway interface {
	CreateRemoteOrder(ctx context.Context, in RemoteOrderRequest) (*RemoteOrder, error)
}

type SignatureVerifier interface {
	Verify(orderRef, paymentRef, provided string) bool
}
