package readstore

import (
	"context"
	"time"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/infra"
	"storefront-api/internal/infra/repository/converter"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"
	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jinzhu/copier"
)

type CouponReadQueries interface {
	GetActiveCouponByUser(ctx context.Context, db sqlc.DBTX, userID uuid.UUID) (sqlc.Coupons, error)
	GetActiveCouponByUserAndCode(ctx context.Context, db sqlc.DBTX, arg sqlc.GetActiveCouponByUserAndCodeParams) (sqlc.Coupons, error)
}

type CouponReadStore struct {
	queries CouponReadQueries
	db      sqlc.DBTX
}

func NewCouponReadStore(queries CouponReadQueries, db sqlc.DBTX) *CouponReadStore {
	return &CouponReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *CouponReadStore) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*coupon.Coupon, error) {
	row, err := r.activeRow(ctx, userID)
	if err != nil {
		return nil, err
	}
	return decodeCoupon(row)
}

// FindActiveByCode matches the code exactly; callers normalize it.
func (r *CouponReadStore) FindActiveByCode(ctx context.Context, userID uuid.UUID, code string) (*coupon.Coupon, error) {
	row, err := r.queries.GetActiveCouponByUserAndCode(ctx, r.db, sqlc.GetActiveCouponByUserAndCodeParams{
		UserID: userID,
		Code:   code,
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	return decodeCoupon(row)
}

func (r *CouponReadStore) FindActiveViewByUser(ctx context.Context, userID uuid.UUID) (*queries.CouponView, error) {
	row, err := r.activeRow(ctx, userID)
	if err != nil {
		return nil, err
	}

	var view queries.CouponView
	if err := copier.CopyWithOption(&view, &row, copier.Option{Converters: timestamptzConverters}); err != nil {
		return nil, infra.WrapRepoErr("failed to map coupon view", err)
	}
	return &view, nil
}

func (r *CouponReadStore) activeRow(ctx context.Context, userID uuid.UUID) (sqlc.Coupons, error) {
	row, err := r.queries.GetActiveCouponByUser(ctx, r.db, userID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return sqlc.Coupons{}, infra.WrapRepoErr("active coupon not found", err, infra.KindNotFound)
		}
		return sqlc.Coupons{}, infra.WrapRepoErr("failed to find active coupon", err)
	}
	return row, nil
}

func decodeCoupon(row sqlc.Coupons) (*coupon.Coupon, error) {
	c, err := converter.CouponFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode coupon", err)
	}
	return c, nil
}

var timestamptzConverters = []copier.TypeConverter{
	{
		SrcType: pgtype.Timestamptz{},
		DstType: time.Time{},
		Fn: func(src any) (any, error) {
			return pgconv.TimeFromPgtype(src.(pgtype.Timestamptz)), nil
		},
	},
}
