package models

import "github.com/shopspring/decimal"

// MealEntry records the meal units one member consumed on one date.
// (MessID, UserID, Date) is unique; a second write with the same key replaces the first.
type MealEntry struct {
	// ID is the storage-assigned identifier of the row.
	ID string

	MessID string `validate:"required"`
	UserID string `validate:"required"`
	Date   Date

	// Breakfast, Lunch and Dinner are non-negative unit counts; fractions like 0.5 are allowed.
	Breakfast decimal.Decimal
	Lunch     decimal.Decimal
	Dinner    decimal.Decimal

	// CreatedBy is the user who recorded the entry (may differ from UserID).
	CreatedBy string
}

// Units returns breakfast + lunch + dinner.
func (m MealEntry) Units() decimal.Decimal {
	return m.Breakfast.Add(m.Lunch).Add(m.Dinner)
}

// DepositEntry records cash a member contributed to the common pool.
type DepositEntry struct {
	ID     string
	MessID string `validate:"required"`
	UserID string `validate:"required"`
	Date   Date

	// Amount is non-negative; zero is accepted.
	Amount decimal.Decimal

	// Details is an optional free-text note.
	Details string `validate:"max=500"`

	CreatedBy string

	// CreatedAt is the Unix timestamp when the deposit was recorded.
	CreatedAt int64
}

// CostEntry records shared grocery spending. The shopper is kept for provenance
// only and has no effect on settlement.
type CostEntry struct {
	ID        string
	MessID    string `validate:"required"`
	ShopperID string `validate:"required"`
	Date      Date

	// Amount is non-negative; zero is accepted.
	Amount decimal.Decimal

	Details string `validate:"max=500"`

	CreatedBy string
	CreatedAt int64
}
