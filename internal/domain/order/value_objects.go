package order

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNoLineItems       = errors.New("order must contain at least one product")
	ErrEmptyProductRef   = errors.New("product reference is required")
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrNegativeUnitPrice = errors.New("unit price cannot be negative")
)

type LineItem struct {
	productRef string
	quantity   int
	unitPrice  decimal.Decimal
}

func NewLineItem(productRef string, quantity int, unitPrice decimal.Decimal) (LineItem, error) {
	productRef = strings.TrimSpace(productRef)
	if productRef == "" {
		return LineItem{}, ErrEmptyProductRef
	}
	if quantity < 1 {
		return LineItem{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return LineItem{}, ErrNegativeUnitPrice
	}
	return LineItem{productRef: productRef, quantity: quantity, unitPrice: unitPrice}, nil
}

func (li LineItem) ProductRef() string         { return li.productRef }
func (li LineItem) Quantity() int              { return li.quantity }
func (li LineItem) UnitPrice() decimal.Decimal { return li.unitPrice }

func (li LineItem) Subtotal() decimal.Decimal {
	return li.unitPrice.Mul(decimal.NewFromInt(int64(li.quantity)))
}
