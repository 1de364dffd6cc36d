//go:build unit || e2e

package testutil

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

// DecimalComparer treats 150 and 150.00 as the same amount.
var DecimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

type cmpMatcher struct {
	want any
}

// MatchesDTO is a gomock matcher that compares request DTOs with go-cmp,
// using decimal equality instead of reflect equality.
func MatchesDTO(want any) gomock.Matcher {
	return cmpMatcher{want: want}
}

func (m cmpMatcher) Matches(x any) bool {
	return cmp.Equal(m.want, x, DecimalComparer)
}

func (m cmpMatcher) String() string {
	return fmt.Sprintf("equals %+v (decimal aware)", m.want)
}
