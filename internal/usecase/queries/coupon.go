package queries

import (
	"context"
	"time"

	"storefront-api/internal/infra"

	"github.com/google/uuid"
)

type CouponView struct {
	ID                 uuid.UUID `json:"id"`
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discount_percentage"`
	ExpirationDate     time.Time `json:"expiration_date"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at"`
}

type CouponReadStore interface {
	FindActiveViewByUser(ctx context.Context, userID uuid.UUID) (*CouponView, error)
}

type CouponQueries interface {
	// GetActive returns nil without error when the user holds no active coupon.
	GetActive(ctx context.Context, userID uuid.UUID) (*CouponView, error)
}

type couponQueriesImpl struct {
	repo CouponReadStore
}

func NewCouponQueries(repo CouponReadStore) CouponQueries {
	return &couponQueriesImpl{repo: repo}
}

func (q *couponQueriesImpl) GetActive(ctx context.Context, userID uuid.UUID) (*CouponView, error) {
	view, err := q.repo.FindActiveViewByUser(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return view, nil
}
