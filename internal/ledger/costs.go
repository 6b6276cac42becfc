package ledger

import (
	"context"
	"iter"

	"github.com/mmynk/messbook/internal/events"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

// CostLedger is append-only. The shopper is provenance only.
type CostLedger struct {
	base
	store storage.CostStore
}

func NewCostLedger(store storage.CostStore, members storage.MessStore, opts Options) *CostLedger {
	return &CostLedger{base: newBase(members, opts), store: store}
}

// Append records a shared cost. The shopper defaults to the caller.
func (l *CostLedger) Append(ctx context.Context, mc models.MessContext, entry models.CostEntry) (string, error) {
	id, err := l.append(ctx, mc, entry)
	l.metrics.LedgerWrite(nameCost, err)
	return id, err
}

func (l *CostLedger) append(ctx context.Context, mc models.MessContext, entry models.CostEntry) (string, error) {
	if err := mc.Validate(); err != nil {
		return "", err
	}
	entry.MessID = mc.MessID
	entry.CreatedBy = mc.UserID
	if entry.ShopperID == "" {
		entry.ShopperID = mc.UserID
	}
	if err := entry.Validate(); err != nil {
		return "", err
	}
	if err := l.checkMember(ctx, mc.MessID, entry.ShopperID); err != nil {
		return "", err
	}

	id, err := l.store.AppendCost(ctx, &entry)
	if err != nil {
		return "", err
	}

	l.log.InfoContext(ctx, "Recorded cost",
		"mess_id", entry.MessID,
		"shopper_id", entry.ShopperID,
		"amount", entry.Amount.String())
	l.publish(ctx, events.NewLedgerEvent(events.KindCostAppended, entry.MessID, entry.ShopperID, id, entry.Date.String()))
	return id, nil
}

// Query yields the mess's costs in the inclusive period, by date then insertion order.
func (l *CostLedger) Query(ctx context.Context, messID string, period models.Period) iter.Seq2[models.CostEntry, error] {
	return checkedQuery(messID, period, func() iter.Seq2[models.CostEntry, error] {
		return l.store.ListCosts(ctx, messID, period)
	})
}

// ListCosts lets the ledger serve as the settlement engine's cost reader.
func (l *CostLedger) ListCosts(ctx context.Context, messID string, period models.Period) iter.Seq2[models.CostEntry, error] {
	return l.Query(ctx, messID, period)
}
