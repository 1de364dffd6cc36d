//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"storefront-api/internal/domain/coupon"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoupon(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	pct, err := coupon.NewPercentage(10)
	require.NoError(t, err)

	t.Run("basic success case", func(t *testing.T) {
		userID := uuid.New()
		c := coupon.NewCoupon(userID, coupon.Code("GIFTAB12CD34"), pct, issuedAt, 30*24*time.Hour)

		assert.NotEqual(t, uuid.Nil, c.ID())
		assert.Equal(t, userID, c.UserID())
		assert.True(t, c.IsActive())
		assert.Equal(t, 10, c.Discount().Value())
		assert.Equal(t, issuedAt.Add(30*24*time.Hour), c.ExpirationDate())
		assert.Equal(t, c.CreatedAt(), c.UpdatedAt())
	})

	t.Run("usage validation", func(t *testing.T) {
		tests := []struct {
			name   string
			at     time.Time
			active bool
			errIs  error
		}{
			{name: "within validity", at: issuedAt.Add(time.Hour), active: true},
			{name: "exactly at expiration", at: issuedAt.Add(30 * 24 * time.Hour), active: true},
			{name: "after expiration", at: issuedAt.Add(30*24*time.Hour + time.Second), active: true, errIs: coupon.ErrCouponExpired},
			{name: "deactivated", at: issuedAt.Add(time.Hour), active: false, errIs: coupon.ErrCouponInactive},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				c := coupon.NewCoupon(uuid.New(), coupon.Code("GIFTAB12CD34"), pct, issuedAt, 30*24*time.Hour)
				if !tt.active {
					c.Deactivate(tt.at)
				}

				err := c.ValidateUsage(tt.at)
				if tt.errIs == nil {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, tt.errIs)
				}
			})
		}
	})

	t.Run("discount is exact", func(t *testing.T) {
		c := coupon.NewCoupon(uuid.New(), coupon.Code("GIFTAB12CD34"), pct, issuedAt, time.Hour)

		assert.True(t, decimal.NewFromInt(100).Equal(c.DiscountFor(decimal.NewFromInt(1000))))
		assert.True(t, decimal.RequireFromString("12.345").Equal(c.DiscountFor(decimal.RequireFromString("123.45"))))
	})

	t.Run("deactivate updates timestamp", func(t *testing.T) {
		c := coupon.NewCoupon(uuid.New(), coupon.Code("GIFTAB12CD34"), pct, issuedAt, time.Hour)
		later := issuedAt.Add(time.Minute)

		c.Deactivate(later)

		assert.False(t, c.IsActive())
		assert.Equal(t, later, c.UpdatedAt())
	})
}

func TestValueObjects(t *testing.T) {
	t.Run("coupon code", func(t *testing.T) {
		tests := []struct {
			input string
			want  coupon.Code
			errIs error
		}{
			{input: "GIFT1234ABCD", want: "GIFT1234ABCD"},
			{input: "  gift1234abcd ", want: "GIFT1234ABCD"},
			{input: "AB", errIs: coupon.ErrInvalidCouponCode},
			{input: "GIFT-1234", errIs: coupon.ErrInvalidCouponCode},
			{input: "", errIs: coupon.ErrInvalidCouponCode},
		}

		for _, tt := range tests {
			t.Run(tt.input, func(t *testing.T) {
				got, err := coupon.NewCouponCode(tt.input)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("percentage bounds", func(t *testing.T) {
		for _, v := range []int{0, 10, 100} {
			_, err := coupon.NewPercentage(v)
			assert.NoError(t, err, v)
		}
		for _, v := range []int{-1, 101} {
			_, err := coupon.NewPercentage(v)
			assert.ErrorIs(t, err, coupon.ErrInvalidDiscountPercent, v)
		}
	})
}

func TestRandomCodeGenerator(t *testing.T) {
	gen := coupon.NewRandomCodeGenerator()
	seen := make(map[coupon.Code]struct{})

	for range 200 {
		code, err := gen.Generate()
		require.NoError(t, err)

		assert.Regexp(t, `^GIFT[0-9A-Z]{8}$`, code.String())
		_, err = coupon.NewCouponCode(code.String())
		assert.NoError(t, err)
		seen[code] = struct{}{}
	}

	assert.Greater(t, len(seen), 190)
}
