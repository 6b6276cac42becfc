package ledger

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/messbook/internal/events"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

// MealLedger keeps at most one entry per (mess, user, date).
type MealLedger struct {
	base
	store storage.MealStore
}

func NewMealLedger(store storage.MealStore, members storage.MessStore, opts Options) *MealLedger {
	return &MealLedger{base: newBase(members, opts), store: store}
}

// Upsert records entry in the caller's mess, replacing any earlier entry for the
// same user and date. Writing the same entry twice leaves one entry.
// It returns the entry's unit total: breakfast + lunch + dinner.
func (l *MealLedger) Upsert(ctx context.Context, mc models.MessContext, entry models.MealEntry) (decimal.Decimal, error) {
	units, err := l.upsert(ctx, mc, entry)
	l.metrics.LedgerWrite(nameMeal, err)
	return units, err
}

func (l *MealLedger) upsert(ctx context.Context, mc models.MessContext, entry models.MealEntry) (decimal.Decimal, error) {
	if err := mc.Validate(); err != nil {
		return decimal.Zero, err
	}
	entry.MessID = mc.MessID
	entry.CreatedBy = mc.UserID
	if err := entry.Validate(); err != nil {
		return decimal.Zero, err
	}
	if err := l.checkMember(ctx, mc.MessID, entry.UserID); err != nil {
		return decimal.Zero, err
	}

	id, err := l.store.UpsertMeal(ctx, &entry)
	if err != nil {
		return decimal.Zero, err
	}

	l.log.DebugContext(ctx, "Upserted meal",
		"mess_id", entry.MessID,
		"user_id", entry.UserID,
		"date", entry.Date.String(),
		"units", entry.Units().String())
	l.publish(ctx, events.NewLedgerEvent(events.KindMealUpserted, entry.MessID, entry.UserID, id, entry.Date.String()))
	return entry.Units(), nil
}

// UpsertDay records one date's meals for several members and returns each entry's
// unit total. Every entry is validated and its member checked before anything is
// written; writes stop at the first storage failure.
func (l *MealLedger) UpsertDay(ctx context.Context, mc models.MessContext, date models.Date, entries []models.MealEntry) ([]decimal.Decimal, error) {
	if err := mc.Validate(); err != nil {
		return nil, err
	}
	batch := slices.Clone(entries)
	for i := range batch {
		batch[i].Date = date
		batch[i].MessID = mc.MessID
		batch[i].CreatedBy = mc.UserID
		if err := batch[i].Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if err := l.checkMember(ctx, mc.MessID, batch[i].UserID); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	totals := make([]decimal.Decimal, 0, len(batch))
	for _, entry := range batch {
		units, err := l.Upsert(ctx, mc, entry)
		if err != nil {
			return totals, err
		}
		totals = append(totals, units)
	}
	return totals, nil
}

// Get returns one member's entry for a date.
func (l *MealLedger) Get(ctx context.Context, mc models.MessContext, userID string, date models.Date) (*models.MealEntry, error) {
	return l.store.GetMeal(ctx, mc.MessID, userID, date)
}

// Query yields the mess's entries in the inclusive period, by date then user ID.
func (l *MealLedger) Query(ctx context.Context, messID string, period models.Period) iter.Seq2[models.MealEntry, error] {
	return checkedQuery(messID, period, func() iter.Seq2[models.MealEntry, error] {
		return l.store.ListMeals(ctx, messID, period)
	})
}

// ListMeals lets the ledger serve as the settlement engine's meal reader.
func (l *MealLedger) ListMeals(ctx context.Context, messID string, period models.Period) iter.Seq2[models.MealEntry, error] {
	return l.Query(ctx, messID, period)
}
