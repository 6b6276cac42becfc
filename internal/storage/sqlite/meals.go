package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/mmynk/messbook/internal/models"
)

// UpsertMeal inserts or replaces the meal entry for (mess, user, date) in one
// statement. The row keeps its original ID when replaced.
func (s *SQLiteStore) UpsertMeal(ctx context.Context, entry *models.MealEntry) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO meals (id, mess_id, user_id, meal_date, breakfast, lunch, dinner, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (mess_id, user_id, meal_date) DO UPDATE SET
			breakfast = excluded.breakfast,
			lunch = excluded.lunch,
			dinner = excluded.dinner,
			created_by = excluded.created_by
		RETURNING id`,
		uuid.New().String(), entry.MessID, entry.UserID, entry.Date,
		entry.Breakfast, entry.Lunch, entry.Dinner, entry.CreatedBy,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to upsert meal: %w", mapError("meal", err))
	}

	entry.ID = id
	return id, nil
}

const mealColumns = "id, mess_id, user_id, meal_date, breakfast, lunch, dinner, created_by"

func scanMeal(row scanner) (models.MealEntry, error) {
	var m models.MealEntry
	err := row.Scan(&m.ID, &m.MessID, &m.UserID, &m.Date, &m.Breakfast, &m.Lunch, &m.Dinner, &m.CreatedBy)
	return m, err
}

// GetMeal returns the meal entry for one (mess, user, date) key.
func (s *SQLiteStore) GetMeal(ctx context.Context, messID, userID string, date models.Date) (*models.MealEntry, error) {
	m, err := scanMeal(s.db.QueryRowContext(ctx,
		"SELECT "+mealColumns+" FROM meals WHERE mess_id = ? AND user_id = ? AND meal_date = ?",
		messID, userID, date,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Kind: "meal", ID: fmt.Sprintf("%s/%s", userID, date)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}
	return &m, nil
}

// ListMeals yields meals inside the inclusive period, by date then user ID.
func (s *SQLiteStore) ListMeals(ctx context.Context, messID string, period models.Period) iter.Seq2[models.MealEntry, error] {
	return query(ctx, s.db, scanMeal,
		"SELECT "+mealColumns+" FROM meals WHERE mess_id = ? AND meal_date BETWEEN ? AND ? ORDER BY meal_date, user_id",
		messID, period.Start, period.End,
	)
}
