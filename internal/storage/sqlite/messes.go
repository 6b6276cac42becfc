package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/messbook/internal/models"
)

// CreateMess persists a new mess. A taken join code yields a ConflictError.
func (s *SQLiteStore) CreateMess(ctx context.Context, mess *models.Mess) error {
	if mess.ID == "" {
		mess.ID = uuid.New().String()
	}
	if mess.CreatedAt == 0 {
		mess.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO messes (id, name, code, created_by, created_at) VALUES (?, ?, ?, ?, ?)",
		mess.ID, mess.Name, mess.Code, mess.CreatedBy, mess.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert mess: %w", mapError("mess", err))
	}
	return nil
}

// DeleteMess removes a mess; foreign keys cascade to its members and ledgers.
func (s *SQLiteStore) DeleteMess(ctx context.Context, messID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM messes WHERE id = ?", messID)
	if err != nil {
		return fmt.Errorf("failed to delete mess: %w", mapError("mess", err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete mess: %w", err)
	}
	if n == 0 {
		return &models.NotFoundError{Kind: "mess", ID: messID}
	}
	return nil
}

func (s *SQLiteStore) getMess(ctx context.Context, column, value string) (*models.Mess, error) {
	mess := &models.Mess{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, code, created_by, created_at FROM messes WHERE "+column+" = ?",
		value,
	).Scan(&mess.ID, &mess.Name, &mess.Code, &mess.CreatedBy, &mess.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "mess", ID: value}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mess: %w", err)
	}
	return mess, nil
}

// GetMess retrieves a mess by ID.
func (s *SQLiteStore) GetMess(ctx context.Context, messID string) (*models.Mess, error) {
	return s.getMess(ctx, "id", messID)
}

// GetMessByCode retrieves a mess by join code.
func (s *SQLiteStore) GetMessByCode(ctx context.Context, code string) (*models.Mess, error) {
	return s.getMess(ctx, "code", code)
}

// AddMember adds a user to a mess. The user_id primary key rejects a second mess.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (user_id, mess_id, role, joined_at) VALUES (?, ?, ?, ?)",
		member.UserID, member.MessID, string(member.Role), member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", mapError("member", err))
	}
	return nil
}

// RemoveMember deletes a user's membership in a mess.
func (s *SQLiteStore) RemoveMember(ctx context.Context, messID, userID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM members WHERE mess_id = ? AND user_id = ?",
		messID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", mapError("member", err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return &models.NotFoundError{Kind: "member", ID: userID}
	}
	return nil
}

func scanMember(row scanner) (models.Member, error) {
	var m models.Member
	var role string
	if err := row.Scan(&m.UserID, &m.MessID, &role, &m.JoinedAt); err != nil {
		return models.Member{}, err
	}
	m.Role = models.Role(role)
	return m, nil
}

// GetMembership returns the user's current membership.
func (s *SQLiteStore) GetMembership(ctx context.Context, userID string) (*models.Member, error) {
	m, err := scanMember(s.db.QueryRowContext(ctx,
		"SELECT user_id, mess_id, role, joined_at FROM members WHERE user_id = ?",
		userID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "member", ID: userID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return &m, nil
}

// ListMembers returns the roster of a mess, ordered by join time.
func (s *SQLiteStore) ListMembers(ctx context.Context, messID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id, mess_id, role, joined_at FROM members WHERE mess_id = ? ORDER BY joined_at, user_id",
		messID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}
