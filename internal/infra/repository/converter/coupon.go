package converter

import (
	"storefront-api/internal/domain/coupon"
	sqlc "storefront-api/internal/infra/sqlc/generated"
	"storefront-api/internal/pkg/pgconv"
)

func CouponToInfra(c *coupon.Coupon) sqlc.CreateCouponParams {
	return sqlc.CreateCouponParams{
		ID:                 c.ID(),
		Code:               c.Code().String(),
		UserID:             c.UserID(),
		DiscountPercentage: int32(c.Discount().Value()),
		ExpirationDate:     pgconv.TimeToPgtype(c.ExpirationDate()),
		CreatedAt:          pgconv.TimeToPgtype(c.CreatedAt()),
	}
}

func CouponFromInfra(row sqlc.Coupons) (*coupon.Coupon, error) {
	pct, err := coupon.NewPercentage(int(row.DiscountPercentage))
	if err != nil {
		return nil, err
	}

	return coupon.ReconstructCoupon(
		row.ID,
		coupon.Code(row.Code),
		row.UserID,
		pct,
		pgconv.TimeFromPgtype(row.ExpirationDate),
		row.IsActive,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
