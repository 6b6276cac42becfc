package service

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mmynk/messbook/internal/calculator"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/pkg/api"
)

func formatDecimal(d decimal.Decimal) string {
	return d.StringFixed(calculator.Precision)
}

// parseDecimal reads a decimal string; empty means zero.
func parseDecimal(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &models.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a decimal number", s)}
	}
	return d, nil
}

func parseDate(field, s string) (models.Date, error) {
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, &models.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", s)}
	}
	return d, nil
}

func parsePeriod(p api.Period) (models.Period, error) {
	start, err := parseDate("start", p.Start)
	if err != nil {
		return models.Period{}, err
	}
	end, err := parseDate("end", p.End)
	if err != nil {
		return models.Period{}, err
	}
	return models.NewPeriod(start, end)
}

func toAPIMess(m *models.Mess, members []models.Member) *api.Mess {
	return &api.Mess{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		Members: lo.Map(members, func(member models.Member, _ int) api.Member {
			return api.Member{UserID: member.UserID, Role: string(member.Role), JoinedAt: member.JoinedAt}
		}),
	}
}

func toMealEntry(date models.Date, in api.MealInput) (models.MealEntry, error) {
	entry := models.MealEntry{UserID: in.UserID, Date: date}
	var err error
	if entry.Breakfast, err = parseDecimal("breakfast", in.Breakfast); err != nil {
		return entry, err
	}
	if entry.Lunch, err = parseDecimal("lunch", in.Lunch); err != nil {
		return entry, err
	}
	if entry.Dinner, err = parseDecimal("dinner", in.Dinner); err != nil {
		return entry, err
	}
	return entry, nil
}

func toAPIMeal(m models.MealEntry, _ int) api.MealEntry {
	return api.MealEntry{
		ID:        m.ID,
		UserID:    m.UserID,
		Date:      m.Date.String(),
		Breakfast: formatDecimal(m.Breakfast),
		Lunch:     formatDecimal(m.Lunch),
		Dinner:    formatDecimal(m.Dinner),
		CreatedBy: m.CreatedBy,
	}
}

func toAPIDeposit(d models.DepositEntry, _ int) api.DepositEntry {
	return api.DepositEntry{
		ID:        d.ID,
		UserID:    d.UserID,
		Date:      d.Date.String(),
		Amount:    formatDecimal(d.Amount),
		Details:   d.Details,
		CreatedBy: d.CreatedBy,
		CreatedAt: d.CreatedAt,
	}
}

func toAPICost(c models.CostEntry, _ int) api.CostEntry {
	return api.CostEntry{
		ID:        c.ID,
		ShopperID: c.ShopperID,
		Date:      c.Date.String(),
		Amount:    formatDecimal(c.Amount),
		Details:   c.Details,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}

func toAPISettlement(s models.Settlement) *api.Settlement {
	return &api.Settlement{
		Period:         api.Period{Start: s.Period.Start.String(), End: s.Period.End.String()},
		TotalMealUnits: formatDecimal(s.TotalMealUnits),
		TotalCost:      formatDecimal(s.TotalCost),
		TotalDeposits:  formatDecimal(s.TotalDeposits),
		MealRate:       formatDecimal(s.MealRate),
		MessBalance:    formatDecimal(s.MessBalance),
		PerMember: lo.MapValues(s.PerMember, func(m models.MemberSettlement, _ string) api.MemberSettlement {
			return api.MemberSettlement{
				Units:    formatDecimal(m.Units),
				Deposits: formatDecimal(m.Deposits),
				Cost:     formatDecimal(m.Cost),
				Balance:  formatDecimal(m.Balance),
			}
		}),
	}
}
