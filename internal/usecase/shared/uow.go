package shared

import (
	"context"
	"time"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/domain/order"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Tx exposes repositories bound to a single open transaction.
type Tx interface {
	Orders() OrderRepository
	Coupons() CouponRepository
	Outbox() OutboxRepository
	Reads() CommandReads
}

// CommandReads returns infra.KindNotFound errors for absent rows.
type CommandReads interface {
	OrderByID(ctx context.Context, id uuid.UUID) (*order.Order, error)
	PaidOrderByCoupon(ctx context.Context, userID uuid.UUID, code string) (*order.Order, error)
	ActiveCoupon(ctx context.Context, userID uuid.UUID) (*coupon.Coupon, error)
	ActiveCouponByCode(ctx context.Context, userID uuid.UUID, code string) (*coupon.Coupon, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *order.Order) (*order.Order, error)
	// MarkPaid succeeds only from pending; otherwise it fails with infra.KindConflict.
	MarkPaid(ctx context.Context, id uuid.UUID, remotePaymentID, remoteSignature string, at time.Time) (*order.Order, error)
}

type CouponRepository interface {
	// LockUser serializes coupon writes for one user until the transaction ends.
	LockUser(ctx context.Context, userID uuid.UUID) error
	DeactivateAllActive(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error)
	Deactivate(ctx context.Context, userID uuid.UUID, code string, at time.Time) (bool, error)
	Create(ctx context.Context, c *coupon.Coupon) (*coupon.Coupon, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
}
