package ledger

import (
	"context"
	"iter"

	"github.com/mmynk/messbook/internal/events"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

// DepositLedger is append-only; identical deposits are distinct events.
type DepositLedger struct {
	base
	store storage.DepositStore
}

func NewDepositLedger(store storage.DepositStore, members storage.MessStore, opts Options) *DepositLedger {
	return &DepositLedger{base: newBase(members, opts), store: store}
}

// Append records a deposit made by entry.UserID in the caller's mess.
func (l *DepositLedger) Append(ctx context.Context, mc models.MessContext, entry models.DepositEntry) (string, error) {
	id, err := l.append(ctx, mc, entry)
	l.metrics.LedgerWrite(nameDeposit, err)
	return id, err
}

func (l *DepositLedger) append(ctx context.Context, mc models.MessContext, entry models.DepositEntry) (string, error) {
	if err := mc.Validate(); err != nil {
		return "", err
	}
	entry.MessID = mc.MessID
	entry.CreatedBy = mc.UserID
	if entry.UserID == "" {
		entry.UserID = mc.UserID
	}
	if err := entry.Validate(); err != nil {
		return "", err
	}
	if err := l.checkMember(ctx, mc.MessID, entry.UserID); err != nil {
		return "", err
	}

	id, err := l.store.AppendDeposit(ctx, &entry)
	if err != nil {
		return "", err
	}

	l.log.InfoContext(ctx, "Recorded deposit",
		"mess_id", entry.MessID,
		"user_id", entry.UserID,
		"amount", entry.Amount.String())
	l.publish(ctx, events.NewLedgerEvent(events.KindDepositAppended, entry.MessID, entry.UserID, id, entry.Date.String()))
	return id, nil
}

// Query yields the mess's deposits in the inclusive period, by date then insertion order.
func (l *DepositLedger) Query(ctx context.Context, messID string, period models.Period) iter.Seq2[models.DepositEntry, error] {
	return checkedQuery(messID, period, func() iter.Seq2[models.DepositEntry, error] {
		return l.store.ListDeposits(ctx, messID, period)
	})
}

// ListDeposits lets the ledger serve as the settlement engine's deposit reader.
func (l *DepositLedger) ListDeposits(ctx context.Context, messID string, period models.Period) iter.Seq2[models.DepositEntry, error] {
	return l.Query(ctx, messID, period)
}
