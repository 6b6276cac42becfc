package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMealEntryValidate(t *testing.T) {
	valid := MealEntry{
		MessID:    "m1",
		UserID:    "alice",
		Date:      NewDate(2024, time.March, 1),
		Breakfast: decimal.NewFromInt(1),
		Lunch:     decimal.RequireFromString("0.5"),
		Dinner:    decimal.Zero,
	}
	require.NoError(t, valid.Validate())
	require.True(t, valid.Units().Equal(decimal.RequireFromString("1.5")))

	tests := []struct {
		name      string
		mutate    func(m *MealEntry)
		wantField string
	}{
		{"missing mess", func(m *MealEntry) { m.MessID = "" }, "mess_id"},
		{"missing user", func(m *MealEntry) { m.UserID = "" }, "user_id"},
		{"missing date", func(m *MealEntry) { m.Date = Date{} }, "date"},
		{"negative lunch", func(m *MealEntry) { m.Lunch = decimal.NewFromInt(-1) }, "lunch"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			err := m.Validate()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			require.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestDepositAndCostValidate(t *testing.T) {
	day := NewDate(2024, time.March, 1)

	d := DepositEntry{MessID: "m1", UserID: "alice", Date: day, Amount: decimal.NewFromInt(300)}
	require.NoError(t, d.Validate())

	d.Amount = decimal.Zero
	require.NoError(t, d.Validate())

	d.Amount = decimal.NewFromInt(-1)
	require.ErrorIs(t, d.Validate(), ErrValidation)

	d.Amount = decimal.NewFromInt(10)
	d.Details = strings.Repeat("x", 501)
	require.ErrorIs(t, d.Validate(), ErrValidation)

	c := CostEntry{MessID: "m1", ShopperID: "bob", Date: day, Amount: decimal.NewFromInt(-5)}
	require.ErrorIs(t, c.Validate(), ErrValidation)

	c.Amount = decimal.Zero
	require.NoError(t, c.Validate())
}

func TestMessValidate(t *testing.T) {
	m := Mess{Name: "Hall 4", Code: "AB12CD", CreatedBy: "alice"}
	require.NoError(t, m.Validate())

	m.Code = "ab12cd"
	require.ErrorIs(t, m.Validate(), ErrValidation)

	m.Code = "AB12C"
	require.ErrorIs(t, m.Validate(), ErrValidation)
}

func TestErrorTaxonomy(t *testing.T) {
	require.ErrorIs(t, &NotFoundError{Kind: "mess", ID: "x"}, ErrNotFound)
	require.ErrorIs(t, &ConflictError{Resource: "meal"}, ErrConflict)
	require.ErrorIs(t, &InvalidPeriodError{}, ErrValidation)
	require.NotErrorIs(t, &NotFoundError{}, ErrValidation)

	cause := errors.New("database is locked")
	wrapped := &ConflictError{Resource: "deposit", Err: cause}
	require.ErrorIs(t, wrapped, cause)
}
