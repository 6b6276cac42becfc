package sqlite

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/messbook/internal/models"
)

// AppendDeposit records a deposit. Identical deposits are kept as separate rows.
func (s *SQLiteStore) AppendDeposit(ctx context.Context, entry *models.DepositEntry) (string, error) {
	entry.ID = uuid.New().String()
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO deposits (id, mess_id, user_id, deposit_date, amount, details, created_by, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.MessID, entry.UserID, entry.Date, entry.Amount, entry.Details, entry.CreatedBy, entry.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert deposit: %w", mapError("deposit", err))
	}
	return entry.ID, nil
}

func scanDeposit(row scanner) (models.DepositEntry, error) {
	var d models.DepositEntry
	err := row.Scan(&d.ID, &d.MessID, &d.UserID, &d.Date, &d.Amount, &d.Details, &d.CreatedBy, &d.CreatedAt)
	return d, err
}

// ListDeposits yields deposits inside the inclusive period, by date then insertion order.
func (s *SQLiteStore) ListDeposits(ctx context.Context, messID string, period models.Period) iter.Seq2[models.DepositEntry, error] {
	return query(ctx, s.db, scanDeposit, `
		SELECT id, mess_id, user_id, deposit_date, amount, details, created_by, created_at
		FROM deposits
		WHERE mess_id = ? AND deposit_date BETWEEN ? AND ?
		ORDER BY deposit_date, seq`,
		messID, period.Start, period.End,
	)
}

// AppendCost records a shared cost. Identical costs are kept as separate rows.
func (s *SQLiteStore) AppendCost(ctx context.Context, entry *models.CostEntry) (string, error) {
	entry.ID = uuid.New().String()
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO costs (id, mess_id, shopper_id, cost_date, amount, details, created_by, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.MessID, entry.ShopperID, entry.Date, entry.Amount, entry.Details, entry.CreatedBy, entry.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert cost: %w", mapError("cost", err))
	}
	return entry.ID, nil
}

func scanCost(row scanner) (models.CostEntry, error) {
	var c models.CostEntry
	err := row.Scan(&c.ID, &c.MessID, &c.ShopperID, &c.Date, &c.Amount, &c.Details, &c.CreatedBy, &c.CreatedAt)
	return c, err
}

// ListCosts yields costs inside the inclusive period, by date then insertion order.
func (s *SQLiteStore) ListCosts(ctx context.Context, messID string, period models.Period) iter.Seq2[models.CostEntry, error] {
	return query(ctx, s.db, scanCost, `
		SELECT id, mess_id, shopper_id, cost_date, amount, details, created_by, created_at
		FROM costs
		WHERE mess_id = ? AND cost_date BETWEEN ? AND ?
		ORDER BY cost_date, seq`,
		messID, period.Start, period.End,
	)
}
