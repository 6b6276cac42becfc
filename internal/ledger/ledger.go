// Package ledger records meal, deposit and cost entries on behalf of a caller.
//
// Each ledger validates its input, checks that the member it refers to belongs to
// the caller's mess, writes through the storage collaborator, counts the write and
// publishes a change notification. Notification failures never fail a write.
package ledger

import (
	"context"
	"errors"
	"iter"
	"log/slog"

	"github.com/mmynk/messbook/internal/events"
	"github.com/mmynk/messbook/internal/metrics"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

// Ledger names used in metrics.
const (
	nameMeal    = "meal"
	nameDeposit = "deposit"
	nameCost    = "cost"
)

// Options carries the optional collaborators shared by the ledgers.
type Options struct {
	Publisher events.Publisher
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

type base struct {
	members   storage.MessStore
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *slog.Logger
}

func newBase(members storage.MessStore, opts Options) base {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return base{members: members, publisher: opts.Publisher, metrics: opts.Metrics, log: log}
}

// checkMember verifies userID belongs to messID.
func (b base) checkMember(ctx context.Context, messID, userID string) error {
	m, err := b.members.GetMembership(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return &models.NotFoundError{Kind: "member", ID: userID}
		}
		return err
	}
	if m.MessID != messID {
		return &models.NotFoundError{Kind: "member", ID: userID}
	}
	return nil
}

func (b base) publish(ctx context.Context, event events.LedgerEvent) {
	if b.publisher == nil {
		return
	}
	if err := b.publisher.Publish(ctx, event); err != nil {
		b.log.WarnContext(ctx, "Failed to publish ledger event",
			"kind", event.Kind,
			"mess_id", event.MessID,
			"entry_id", event.EntryID,
			"error", err)
	}
}

// checkedQuery rejects an invalid period before touching storage.
func checkedQuery[T any](messID string, period models.Period, list func() iter.Seq2[T, error]) iter.Seq2[T, error] {
	if messID == "" {
		return fail[T](&models.ValidationError{Field: "mess_id", Reason: "must be set"})
	}
	if err := period.Validate(); err != nil {
		return fail[T](err)
	}
	return list()
}

func fail[T any](err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}
