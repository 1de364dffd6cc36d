package order

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var ErrAmountOutOfRange = errors.New("order amount cannot be charged")

var (
	minorUnitsPerMajor = decimal.NewFromInt(100)
	maxMinorUnits      = decimal.NewFromInt(math.MaxInt64)
)

type Quote struct {
	Original decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// SumLineItems is exact; no rounding happens before conversion to minor units.
func SumLineItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func NewQuote(original, discount decimal.Decimal) Quote {
	if discount.GreaterThan(original) {
		discount = original
	}
	return Quote{
		Original: original,
		Discount: discount,
		Total:    original.Sub(discount),
	}
}

// ToMinorUnits converts a major-unit amount to paise/cents, rounding half away from zero.
// Amounts that do not fit an int64 are rejected rather than wrapped.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	minor := amount.Mul(minorUnitsPerMajor).Round(0)
	if minor.IsNegative() || minor.GreaterThan(maxMinorUnits) {
		return 0, ErrAmountOutOfRange
	}
	return minor.IntPart(), nil
}
