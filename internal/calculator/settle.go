package calculator

import (
	"slices"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mmynk/messbook/internal/models"
)

// Settle computes a mess settlement from slices of the three ledgers.
//
// Algorithm:
//   - Sum every member's meal units and deposits inside the period
//   - mealRate = totalCost / totalMealUnits, or 0 when nobody ate
//   - Each member's cost is their share of totalCost by units, allocated to
//     the cent so that the shares add up to the rounded totalCost exactly
//   - balance = deposits - cost; messBalance = totalDeposits - totalCost
//
// Quantities are accumulated at full precision and rounded once, on the way out.
// Entries dated outside the period are ignored. Cost shoppers do not get a row.
func Settle(period models.Period, meals []models.MealEntry, deposits []models.DepositEntry, costs []models.CostEntry) (models.Settlement, error) {
	if err := period.Validate(); err != nil {
		return models.Settlement{}, err
	}

	units := make(map[string]decimal.Decimal)
	paid := make(map[string]decimal.Decimal)

	totalUnits := decimal.Zero
	for _, m := range meals {
		if !period.Contains(m.Date) {
			continue
		}
		u := m.Units()
		units[m.UserID] = units[m.UserID].Add(u)
		totalUnits = totalUnits.Add(u)
	}

	totalDeposits := decimal.Zero
	for _, d := range deposits {
		if !period.Contains(d.Date) {
			continue
		}
		paid[d.UserID] = paid[d.UserID].Add(d.Amount)
		totalDeposits = totalDeposits.Add(d.Amount)
		if _, ok := units[d.UserID]; !ok {
			units[d.UserID] = decimal.Zero
		}
	}

	totalCost := decimal.Zero
	for _, c := range costs {
		if !period.Contains(c.Date) {
			continue
		}
		totalCost = totalCost.Add(c.Amount)
	}

	mealRate := decimal.Zero
	var shares map[string]decimal.Decimal
	if totalUnits.IsPositive() {
		mealRate = totalCost.Div(totalUnits)
		shares = Allocate(totalCost, units)
	}

	roundedCost := totalCost.Round(Precision)
	roundedDeposits := totalDeposits.Round(Precision)

	members := lo.Keys(units)
	slices.Sort(members)

	perMember := make(map[string]models.MemberSettlement, len(members))
	for _, id := range members {
		deposited := paid[id].Round(Precision)
		cost := shares[id]
		perMember[id] = models.MemberSettlement{
			Units:    units[id].Round(Precision),
			Deposits: deposited,
			Cost:     cost,
			Balance:  deposited.Sub(cost),
		}
	}

	return models.Settlement{
		Period:         period,
		TotalMealUnits: totalUnits.Round(Precision),
		TotalCost:      roundedCost,
		TotalDeposits:  roundedDeposits,
		MealRate:       mealRate.Round(Precision),
		MessBalance:    roundedDeposits.Sub(roundedCost),
		PerMember:      perMember,
	}, nil
}
