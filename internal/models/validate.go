package models

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// structError converts the first validator failure into a ValidationError.
func structError(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: snake(fe.Field()), Reason: reason(fe)}
	}
	return &ValidationError{Field: "input", Reason: err.Error()}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be set"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "len":
		return "must be exactly " + fe.Param() + " characters"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func snake(field string) string {
	var b strings.Builder
	for i, r := range field {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !strings.HasSuffix(field[:i], "I") {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

func nonNegative(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return &ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

func dateSet(d Date) error {
	if d.IsZero() {
		return &ValidationError{Field: "date", Reason: "must be set"}
	}
	return nil
}

// Validate checks a meal entry before it is written.
func (m MealEntry) Validate() error {
	if err := structError(m); err != nil {
		return err
	}
	if err := dateSet(m.Date); err != nil {
		return err
	}
	if err := nonNegative("breakfast", m.Breakfast); err != nil {
		return err
	}
	if err := nonNegative("lunch", m.Lunch); err != nil {
		return err
	}
	return nonNegative("dinner", m.Dinner)
}

// Validate checks a deposit before it is appended.
func (d DepositEntry) Validate() error {
	if err := structError(d); err != nil {
		return err
	}
	if err := dateSet(d.Date); err != nil {
		return err
	}
	return nonNegative("amount", d.Amount)
}

// Validate checks a cost before it is appended.
func (c CostEntry) Validate() error {
	if err := structError(c); err != nil {
		return err
	}
	if err := dateSet(c.Date); err != nil {
		return err
	}
	return nonNegative("amount", c.Amount)
}

// Validate checks a mess before it is created.
func (m Mess) Validate() error {
	return structError(m)
}

// Validate checks that a context names both a mess and a user.
func (mc MessContext) Validate() error {
	if err := structError(mc); err != nil {
		return err
	}
	if mc.Role != "" && !mc.Role.Valid() {
		return &ValidationError{Field: "role", Reason: "unknown role " + string(mc.Role)}
	}
	return nil
}
