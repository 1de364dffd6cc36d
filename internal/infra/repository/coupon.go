package repository

import (
	"context"
	"time"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/infra"
	"storefront-api/internal/infra/repository/converter"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type CouponWriteQueries interface {
	LockUserCoupons(ctx context.Context, db sqlc.DBTX, userKey string) error
	DeactivateActiveCouponsByUser(ctx context.Context, db sqlc.DBTX, arg sqlc.DeactivateActiveCouponsByUserParams) (int64, error)
	DeactivateCoupon(ctx context.Context, db sqlc.DBTX, arg sqlc.DeactivateCouponParams) (int64, error)
	CreateCoupon(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateCouponParams) (sqlc.Coupons, error)
}

type CouponRepository struct {
	queries CouponWriteQueries
	db      sqlc.DBTX
}

func NewCouponRepository(queries CouponWriteQueries, db sqlc.DBTX) *CouponRepository {
	return &CouponRepository{
		queries: queries,
		db:      db,
	}
}

// LockUser takes a transaction-scoped advisory lock keyed by the user id.
func (r *CouponRepository) LockUser(ctx context.Context, userID uuid.UUID) error {
	if err := r.queries.LockUserCoupons(ctx, r.db, userID.String()); err != nil {
		return infra.WrapRepoErr("failed to lock user coupons", err)
	}
	return nil
}

func (r *CouponRepository) DeactivateAllActive(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	n, err := r.queries.DeactivateActiveCouponsByUser(ctx, r.db, sqlc.DeactivateActiveCouponsByUserParams{
		UserID:    userID,
		UpdatedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to deactivate user coupons", err)
	}
	return n, nil
}

func (r *CouponRepository) Deactivate(ctx context.Context, userID uuid.UUID, code string, at time.Time) (bool, error) {
	n, err := r.queries.DeactivateCoupon(ctx, r.db, sqlc.DeactivateCouponParams{
		UserID:    userID,
		Code:      code,
		UpdatedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to deactivate coupon", err)
	}
	return n > 0, nil
}

// Create reports a code already issued to the user as infra.KindDuplicateKey without aborting the transaction.
func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) (*coupon.Coupon, error) {
	row, err := r.queries.CreateCoupon(ctx, r.db, converter.CouponToInfra(c))
	if pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("coupon code already issued", err, infra.KindDuplicateKey)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to create coupon", err)
	}

	created, err := converter.CouponFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode coupon", err)
	}
	return created, nil
}
