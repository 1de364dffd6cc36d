package coupon

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCouponExpired  = errors.New("coupon has expired")
	ErrCouponInactive = errors.New("coupon is no longer active")
)

var hundred = decimal.NewFromInt(100)

type Coupon struct {
	id             uuid.UUID
	code           Code
	userID         uuid.UUID
	discount       Percentage
	expirationDate time.Time
	isActive       bool
	createdAt      time.Time
	updatedAt      time.Time
}

// NewCoupon builds an active coupon valid for the given duration from issuedAt.
func NewCoupon(userID uuid.UUID, code Code, discount Percentage, issuedAt time.Time, validity time.Duration) *Coupon {
	return &Coupon{
		id:             uuid.New(),
		code:           code,
		userID:         userID,
		discount:       discount,
		expirationDate: issuedAt.Add(validity),
		isActive:       true,
		createdAt:      issuedAt,
		updatedAt:      issuedAt,
	}
}

func ReconstructCoupon(
	id uuid.UUID,
	code Code,
	userID uuid.UUID,
	discount Percentage,
	expirationDate time.Time,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Coupon {
	return &Coupon{
		id:             id,
		code:           code,
		userID:         userID,
		discount:       discount,
		expirationDate: expirationDate,
		isActive:       isActive,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (c *Coupon) IsExpiredAt(t time.Time) bool {
	return c.expirationDate.Before(t)
}

func (c *Coupon) ValidateUsage(t time.Time) error {
	if !c.isActive {
		return ErrCouponInactive
	}
	if c.IsExpiredAt(t) {
		return ErrCouponExpired
	}
	return nil
}

// DiscountFor returns amount * percentage / 100 without rounding.
func (c *Coupon) DiscountFor(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(c.discount.Value()))).Div(hundred)
}

func (c *Coupon) Deactivate(at time.Time) {
	c.isActive = false
	c.updatedAt = at
}

func (c *Coupon) ID() uuid.UUID             { return c.id }
func (c *Coupon) Code() Code                { return c.code }
func (c *Coupon) UserID() uuid.UUID         { return c.userID }
func (c *Coupon) Discount() Percentage      { return c.discount }
func (c *Coupon) ExpirationDate() time.Time { return c.expirationDate }
func (c *Coupon) IsActive() bool            { return c.isActive }
func (c *Coupon) CreatedAt() time.Time      { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time      { return c.updatedAt }
