package calculator

import (
	"slices"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits returned to callers.
const Precision = 2

var cent = decimal.New(1, -Precision)

// Allocate splits total across members in proportion to their weights and rounds
// each share to the cent using the largest remainder method. The shares always
// sum to total.Round(Precision). Members with zero weight receive zero.
//
// Example: 100 split by weights 1/1/1 gives 33.34, 33.33, 33.33; the extra cent
// goes to the member with the largest truncated remainder (ties broken by ID).
func Allocate(total decimal.Decimal, weights map[string]decimal.Decimal) map[string]decimal.Decimal {
	shares := make(map[string]decimal.Decimal, len(weights))

	sumWeights := decimal.Zero
	for _, w := range weights {
		sumWeights = sumWeights.Add(w)
	}
	if !sumWeights.IsPositive() {
		for id := range weights {
			shares[id] = decimal.Zero
		}
		return shares
	}

	type remainder struct {
		id   string
		frac decimal.Decimal
	}

	target := total.Round(Precision)
	allocated := decimal.Zero
	remainders := make([]remainder, 0, len(weights))

	for id, w := range weights {
		exact := total.Mul(w).Div(sumWeights)
		floor := exact.RoundFloor(Precision)
		shares[id] = floor
		allocated = allocated.Add(floor)
		remainders = append(remainders, remainder{id: id, frac: exact.Sub(floor)})
	}

	slices.SortFunc(remainders, func(a, b remainder) int {
		if c := b.frac.Cmp(a.frac); c != 0 {
			return c
		}
		if a.id < b.id {
			return -1
		}
		if a.id > b.id {
			return 1
		}
		return 0
	})

	// Leftover is a whole number of cents, at most one per member.
	leftover := int(target.Sub(allocated).Div(cent).IntPart())
	for _, r := range lo.Slice(remainders, 0, leftover) {
		shares[r.id] = shares[r.id].Add(cent)
	}

	return shares
}
