package queries

import (
	"context"
	"time"

	"storefront-api/internal/domain/user"
	"storefront-api/internal/infra"
	"storefront-api/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrOrderNotFound = errs.New("order not found")

type OrderItemView struct {
	ProductRef string          `json:"product_ref"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// OrderView never carries the stored payment signature.
type OrderView struct {
	ID                   uuid.UUID       `json:"id"`
	UserID               uuid.UUID       `json:"user_id"`
	Status               string          `json:"status"`
	Items                []OrderItemView `json:"items"`
	OriginalAmount       decimal.Decimal `json:"original_amount"`
	CouponCode           *string         `json:"coupon_code,omitempty"`
	CouponDiscountAmount decimal.Decimal `json:"coupon_discount_amount"`
	TotalAmount          decimal.Decimal `json:"total_amount"`
	Currency             string          `json:"currency"`
	RemoteOrderID        string          `json:"remote_order_id"`
	RemotePaymentID      *string         `json:"remote_payment_id,omitempty"`
	PaidAt               *time.Time      `json:"paid_at,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

type OrderReadStore interface {
	FindViewByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindViewByIDForUser(ctx context.Context, id, userID uuid.UUID) (*OrderView, error)
}

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole user.Role) (*OrderView, error)
}

type orderQueriesImpl struct {
	repo OrderReadStore
}

func NewOrderQueries(repo OrderReadStore) OrderQueries {
	return &orderQueriesImpl{repo: repo}
}

// GetByID hides other users' orders from customers behind ErrOrderNotFound.
func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actorID uuid.UUID, actorRole user.Role) (*OrderView, error) {
	var (
		view *OrderView
		err  error
	)
	if actorRole == user.RoleAdmin {
		view, err = q.repo.FindViewByID(ctx, id)
	} else {
		view, err = q.repo.FindViewByIDForUser(ctx, id, actorID)
	}
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return view, nil
}
