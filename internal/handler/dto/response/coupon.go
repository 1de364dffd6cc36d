package response

import (
	"time"

	"storefront-api/internal/domain/coupon"
	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type CouponResponse struct {
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discountPercentage"`
	ExpirationDate     time.Time `json:"expirationDate"`
	IsActive           bool      `json:"isActive"`
}

func FromCouponView(v *queries.CouponView) *CouponResponse {
	if v == nil {
		return nil
	}
	return &CouponResponse{
		Code:               v.Code,
		DiscountPercentage: v.DiscountPercentage,
		ExpirationDate:     v.ExpirationDate,
		IsActive:           v.IsActive,
	}
}

// ValidateCouponResponse is flat: the confirmation sits next to the coupon fields.
type ValidateCouponResponse struct {
	Message            string    `json:"message"`
	ID                 uuid.UUID `json:"_id"`
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discountPercentage"`
	ExpirationDate     time.Time `json:"expirationDate"`
	IsActive           bool      `json:"isActive"`
	UserID             uuid.UUID `json:"userId"`
}

func NewValidateCouponResponse(c *coupon.Coupon) *ValidateCouponResponse {
	return &ValidateCouponResponse{
		Message:            "Coupon is valid",
		ID:                 c.ID(),
		Code:               c.Code().String(),
		DiscountPercentage: c.Discount().Value(),
		ExpirationDate:     c.ExpirationDate(),
		IsActive:           c.IsActive(),
		UserID:             c.UserID(),
	}
}
