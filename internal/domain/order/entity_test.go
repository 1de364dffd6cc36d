//go:build unit

package order_test

import (
	"math"
	"testing"
	"time"

	"storefront-api/internal/domain/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, ref string, qty int, price string) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(ref, qty, decimal.RequireFromString(price))
	require.NoError(t, err)
	return item
}

func TestLineItem(t *testing.T) {
	tests := []struct {
		name  string
		ref   string
		qty   int
		price string
		errIs error
	}{
		{name: "valid", ref: "prod-1", qty: 2, price: "10.50"},
		{name: "free item", ref: "prod-1", qty: 1, price: "0"},
		{name: "empty ref", ref: "  ", qty: 1, price: "1", errIs: order.ErrEmptyProductRef},
		{name: "zero quantity", ref: "prod-1", qty: 0, price: "1", errIs: order.ErrInvalidQuantity},
		{name: "negative price", ref: "prod-1", qty: 1, price: "-0.01", errIs: order.ErrNegativeUnitPrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := order.NewLineItem(tt.ref, tt.qty, decimal.RequireFromString(tt.price))
			if tt.errIs == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestPricing(t *testing.T) {
	t.Run("sum is exact", func(t *testing.T) {
		items := []order.LineItem{
			mustItem(t, "a", 3, "0.10"),
			mustItem(t, "b", 1, "0.20"),
		}

		assert.Equal(t, "0.5", order.SumLineItems(items).String())
	})

	t.Run("quote caps discount at original", func(t *testing.T) {
		q := order.NewQuote(decimal.NewFromInt(50), decimal.NewFromInt(80))

		assert.True(t, q.Total.IsZero())
		assert.True(t, q.Discount.Equal(decimal.NewFromInt(50)))
	})

	t.Run("minor units round half away from zero", func(t *testing.T) {
		tests := []struct {
			amount string
			want   int64
		}{
			{amount: "900", want: 90000},
			{amount: "10.005", want: 1001},
			{amount: "10.004", want: 1000},
			{amount: "0.015", want: 2},
			{amount: "199.995", want: 20000},
		}

		for _, tt := range tests {
			t.Run(tt.amount, func(t *testing.T) {
				got, err := order.ToMinorUnits(decimal.RequireFromString(tt.amount))
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			})
		}
	})

	t.Run("minor units reject amounts beyond int64", func(t *testing.T) {
		for _, amount := range []string{"100000000000000000", "200000000000000000", "-1"} {
			t.Run(amount, func(t *testing.T) {
				_, err := order.ToMinorUnits(decimal.RequireFromString(amount))
				assert.ErrorIs(t, err, order.ErrAmountOutOfRange)
			})
		}
	})

	t.Run("minor units accept the int64 ceiling", func(t *testing.T) {
		got, err := order.ToMinorUnits(decimal.RequireFromString("92233720368547758.07"))
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), got)
	})
}

func TestOrder(t *testing.T) {
	userID := uuid.New()
	items := []order.LineItem{mustItem(t, "prod-1", 2, "100")}
	quote := order.NewQuote(order.SumLineItems(items), decimal.Zero)

	t.Run("new order is pending", func(t *testing.T) {
		o, err := order.NewPendingOrder(userID, items, quote, nil, "INR", "order_abc")
		require.NoError(t, err)

		assert.Equal(t, order.StatusPending, o.Status())
		assert.True(t, o.BelongsTo(userID))
		assert.False(t, o.BelongsTo(uuid.New()))
		assert.Nil(t, o.PaidAt())
		assert.Nil(t, o.RemotePaymentID())
	})

	t.Run("rejects empty items and remote id", func(t *testing.T) {
		_, err := order.NewPendingOrder(userID, nil, quote, nil, "INR", "order_abc")
		assert.ErrorIs(t, err, order.ErrNoLineItems)

		_, err = order.NewPendingOrder(userID, items, quote, nil, "INR", "")
		assert.ErrorIs(t, err, order.ErrMissingRemoteID)
	})

	t.Run("mark paid is terminal", func(t *testing.T) {
		o, err := order.NewPendingOrder(userID, items, quote, nil, "INR", "order_abc")
		require.NoError(t, err)
		at := time.Now()

		require.NoError(t, o.MarkPaid("pay_1", "sig", at))
		assert.True(t, o.IsPaid())
		assert.Equal(t, "pay_1", *o.RemotePaymentID())
		assert.Equal(t, at, *o.PaidAt())

		assert.ErrorIs(t, o.MarkPaid("pay_2", "sig2", at), order.ErrAlreadyPaid)
		assert.Equal(t, "pay_1", *o.RemotePaymentID())
	})

	t.Run("coupon threshold uses original amount", func(t *testing.T) {
		threshold := decimal.NewFromInt(200)
		tests := []struct {
			original string
			discount string
			want     bool
		}{
			{original: "199", discount: "0", want: false},
			{original: "200", discount: "0", want: true},
			{original: "200", discount: "20", want: true},
			{original: "199.99", discount: "0", want: false},
		}

		for _, tt := range tests {
			q := order.NewQuote(decimal.RequireFromString(tt.original), decimal.RequireFromString(tt.discount))
			o, err := order.NewPendingOrder(userID, items, q, nil, "INR", "order_abc")
			require.NoError(t, err)
			assert.Equal(t, tt.want, o.QualifiesForCoupon(threshold), tt.original)
		}
	})

	t.Run("status parsing", func(t *testing.T) {
		s, err := order.NewStatus("paid")
		require.NoError(t, err)
		assert.Equal(t, order.StatusPaid, s)

		_, err = order.NewStatus("refunded")
		assert.ErrorIs(t, err, order.ErrInvalidStatus)
	})
}
