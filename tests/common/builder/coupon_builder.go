//go:build unit || e2e

package builder

import (
	"time"

	"storefront-api/internal/domain/coupon"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CouponBuilder struct {
	ID                 uuid.UUID
	Code               string
	UserID             uuid.UUID
	DiscountPercentage int
	ExpirationDate     time.Time
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func NewCouponBuilder() *CouponBuilder {
	now := time.Now()
	return &CouponBuilder{
		ID:                 uuid.New(),
		Code:               "GIFTAB12CD34",
		UserID:             uuid.New(),
		DiscountPercentage: 10,
		ExpirationDate:     now.Add(30 * 24 * time.Hour),
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *CouponBuilder) BuildDomain() *coupon.Coupon {
	pct, err := coupon.NewPercentage(b.DiscountPercentage)
	if err != nil {
		panic(err)
	}
	return coupon.ReconstructCoupon(
		b.ID,
		coupon.Code(b.Code),
		b.UserID,
		pct,
		b.ExpirationDate,
		b.IsActive,
		b.CreatedAt,
		b.UpdatedAt,
	)
}

func (b *CouponBuilder) BuildInfra() sqlc.Coupons {
	return sqlc.Coupons{
		ID:                 b.ID,
		Code:               b.Code,
		UserID:             b.UserID,
		DiscountPercentage: int32(b.DiscountPercentage),
		ExpirationDate:     pgtype.Timestamptz{Time: b.ExpirationDate, Valid: true},
		IsActive:           b.IsActive,
		CreatedAt:          pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:          pgtype.Timestamptz{Time: b.UpdatedAt, Valid: true},
	}
}

func (b *CouponBuilder) BuildView() *queries.CouponView {
	return &queries.CouponView{
		ID:                 b.ID,
		Code:               b.Code,
		DiscountPercentage: b.DiscountPercentage,
		ExpirationDate:     b.ExpirationDate,
		IsActive:           b.IsActive,
		CreatedAt:          b.CreatedAt,
	}
}

// Fluent builder methods
func (b *CouponBuilder) WithCode(code string) *CouponBuilder {
	b.Code = code
	return b
}

func (b *CouponBuilder) WithUserID(userID uuid.UUID) *CouponBuilder {
	b.UserID = userID
	return b
}

func (b *CouponBuilder) WithExpiration(t time.Time) *CouponBuilder {
	b.ExpirationDate = t
	return b
}

func (b *CouponBuilder) AsExpired() *CouponBuilder {
	b.ExpirationDate = time.Now().Add(-time.Hour)
	return b
}

func (b *CouponBuilder) AsInactive() *CouponBuilder {
	b.IsActive = false
	return b
}
