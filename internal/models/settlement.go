package models

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Settlement is the outcome of settling a mess over a period. It is derived
// on demand from the ledgers and never stored.
type Settlement struct {
	Period Period

	// TotalMealUnits is the sum of all members' units in the period.
	TotalMealUnits decimal.Decimal

	// TotalCost and TotalDeposits are rounded to 2 decimal places.
	TotalCost     decimal.Decimal
	TotalDeposits decimal.Decimal

	// MealRate is TotalCost / TotalMealUnits rounded to 2 places, or zero when no meals were eaten.
	MealRate decimal.Decimal

	// MessBalance is TotalDeposits - TotalCost.
	MessBalance decimal.Decimal

	// PerMember has one row for every user who appears in the period's meals or deposits.
	PerMember map[string]MemberSettlement
}

// MemberSettlement is one member's share of a settlement.
type MemberSettlement struct {
	Units    decimal.Decimal
	Deposits decimal.Decimal

	// Cost is the member's share of TotalCost, allocated by largest remainder so
	// that member costs sum exactly to TotalCost. It is not Units * MealRate rounded
	// on its own and may differ from that product by a cent.
	Cost decimal.Decimal

	// Balance is Deposits - Cost. Positive means the mess owes the member.
	Balance decimal.Decimal
}

// MemberIDs returns the settled user IDs in sorted order.
func (s Settlement) MemberIDs() []string {
	ids := make([]string, 0, len(s.PerMember))
	for id := range s.PerMember {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
