// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"iter"

	"github.com/mmynk/messbook/internal/models"
)

// MessStore persists messes and their rosters.
type MessStore interface {
	// CreateMess persists a new mess. mess.ID and mess.CreatedAt are populated by the store.
	// Returns a ConflictError if the join code is already taken.
	CreateMess(ctx context.Context, mess *models.Mess) error

	// DeleteMess removes a mess together with its roster and ledgers, or returns
	// a NotFoundError.
	DeleteMess(ctx context.Context, messID string) error

	// GetMess retrieves a mess by ID, or a NotFoundError.
	GetMess(ctx context.Context, messID string) (*models.Mess, error)

	// GetMessByCode retrieves a mess by its join code, or a NotFoundError.
	GetMessByCode(ctx context.Context, code string) (*models.Mess, error)

	// AddMember adds a user to a mess. A user belongs to at most one mess;
	// adding a user who already has one returns a ConflictError.
	AddMember(ctx context.Context, member *models.Member) error

	// RemoveMember removes a user from a mess, or returns a NotFoundError.
	RemoveMember(ctx context.Context, messID, userID string) error

	// GetMembership returns the user's current membership, or a NotFoundError.
	GetMembership(ctx context.Context, userID string) (*models.Member, error)

	// ListMembers returns a mess's roster ordered by join time.
	ListMembers(ctx context.Context, messID string) ([]models.Member, error)
}

// MealStore persists meal entries. (mess, user, date) is unique.
type MealStore interface {
	// UpsertMeal inserts the entry or fully replaces the existing one with the same key,
	// atomically, and returns the stable entry ID.
	UpsertMeal(ctx context.Context, entry *models.MealEntry) (string, error)

	// GetMeal returns the entry for one key, or a NotFoundError.
	GetMeal(ctx context.Context, messID, userID string, date models.Date) (*models.MealEntry, error)

	// ListMeals yields the mess's entries inside period, by date then user ID.
	// Nothing is read until the sequence is ranged, and each range re-reads.
	ListMeals(ctx context.Context, messID string, period models.Period) iter.Seq2[models.MealEntry, error]
}

// DepositStore persists deposits. Appends are never deduplicated.
type DepositStore interface {
	AppendDeposit(ctx context.Context, entry *models.DepositEntry) (string, error)

	// ListDeposits yields the mess's deposits inside period, by date then insertion order.
	ListDeposits(ctx context.Context, messID string, period models.Period) iter.Seq2[models.DepositEntry, error]
}

// CostStore persists shared costs. Appends are never deduplicated.
type CostStore interface {
	AppendCost(ctx context.Context, entry *models.CostEntry) (string, error)

	// ListCosts yields the mess's costs inside period, by date then insertion order.
	ListCosts(ctx context.Context, messID string, period models.Period) iter.Seq2[models.CostEntry, error]
}

// Store is the full storage collaborator.
// This abstraction allows swapping storage backends (SQLite, Badger, memory)
// without changing the ledger or settlement layers.
type Store interface {
	MessStore
	MealStore
	DepositStore
	CostStore

	// Close releases any resources held by the store.
	Close() error
}

// Collect drains a sequence into a slice, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
