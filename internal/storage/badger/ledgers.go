package badger

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/mmynk/messbook/internal/models"
)

func mealPrefix(mess string) string    { return "meal:" + mess + ":" }
func depositPrefix(mess string) string { return "dep:" + mess + ":" }
func costPrefix(mess string) string    { return "cost:" + mess + ":" }

func mealKey(mess, user string, date models.Date) string {
	return mealPrefix(mess) + date.String() + ":" + user
}

// UpsertMeal writes the entry under its natural key, keeping the existing ID on replace.
func (s *BadgerStore) UpsertMeal(ctx context.Context, entry *models.MealEntry) (string, error) {
	key := mealKey(entry.MessID, entry.UserID, entry.Date)

	err := s.db.Update(func(txn *badger.Txn) error {
		var existing mealRecord
		err := getJSON(txn, key, &existing)
		switch {
		case err == nil:
			entry.ID = existing.ID
		case errors.Is(err, badger.ErrKeyNotFound):
			entry.ID = uuid.New().String()
		default:
			return err
		}
		return setJSON(txn, key, fromMeal(*entry))
	})
	if err != nil {
		return "", fmt.Errorf("failed to upsert meal: %w", mapError("meal", err))
	}
	return entry.ID, nil
}

// GetMeal returns the meal entry for one (mess, user, date) key.
func (s *BadgerStore) GetMeal(ctx context.Context, messID, userID string, date models.Date) (*models.MealEntry, error) {
	var rec mealRecord
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, mealKey(messID, userID, date), &rec)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, &models.NotFoundError{Kind: "meal", ID: fmt.Sprintf("%s/%s", userID, date)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}
	m := rec.toModel()
	return &m, nil
}

// ListMeals yields meals inside the inclusive period, by date then user ID.
func (s *BadgerStore) ListMeals(ctx context.Context, messID string, period models.Period) iter.Seq2[models.MealEntry, error] {
	return scanRange(ctx, s.db, mealPrefix(messID), period, mealRecord.toModel)
}

// appendKey builds an append-only key that sorts by date then insertion.
func (s *BadgerStore) appendKey(prefix string, date models.Date) (string, error) {
	n, err := s.seq.Next()
	if err != nil {
		return "", fmt.Errorf("failed to get next sequence: %w", err)
	}
	return fmt.Sprintf("%s%s:%019d", prefix, date, n), nil
}

// AppendDeposit records a deposit under a fresh key.
func (s *BadgerStore) AppendDeposit(ctx context.Context, entry *models.DepositEntry) (string, error) {
	key, err := s.appendKey(depositPrefix(entry.MessID), entry.Date)
	if err != nil {
		return "", err
	}
	entry.ID = uuid.New().String()
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, key, fromDeposit(*entry))
	})
	if err != nil {
		return "", fmt.Errorf("failed to append deposit: %w", mapError("deposit", err))
	}
	return entry.ID, nil
}

// ListDeposits yields deposits inside the inclusive period, by date then insertion order.
func (s *BadgerStore) ListDeposits(ctx context.Context, messID string, period models.Period) iter.Seq2[models.DepositEntry, error] {
	return scanRange(ctx, s.db, depositPrefix(messID), period, depositRecord.toModel)
}

// AppendCost records a cost under a fresh key.
func (s *BadgerStore) AppendCost(ctx context.Context, entry *models.CostEntry) (string, error) {
	key, err := s.appendKey(costPrefix(entry.MessID), entry.Date)
	if err != nil {
		return "", err
	}
	entry.ID = uuid.New().String()
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, key, fromCost(*entry))
	})
	if err != nil {
		return "", fmt.Errorf("failed to append cost: %w", mapError("cost", err))
	}
	return entry.ID, nil
}

// ListCosts yields costs inside the inclusive period, by date then insertion order.
func (s *BadgerStore) ListCosts(ctx context.Context, messID string, period models.Period) iter.Seq2[models.CostEntry, error] {
	return scanRange(ctx, s.db, costPrefix(messID), period, costRecord.toModel)
}
