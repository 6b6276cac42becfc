//go:generate go run go.uber.org/mock/mockgen -source=engine.go -destination=../mocks/mock_settlement_readers.go -package=mocks
package settlement

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/messbook/internal/calculator"
	"github.com/mmynk/messbook/internal/metrics"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

type MealReader interface {
	ListMeals(ctx context.Context, messID string, period models.Period) iter.Seq2[models.MealEntry, error]
}

type DepositReader interface {
	ListDeposits(ctx context.Context, messID string, period models.Period) iter.Seq2[models.DepositEntry, error]
}

type CostReader interface {
	ListCosts(ctx context.Context, messID string, period models.Period) iter.Seq2[models.CostEntry, error]
}

// Engine turns a slice of the three ledgers into a Settlement on demand.
// Nothing is cached; every call re-reads the ledgers.
type Engine struct {
	meals    MealReader
	deposits DepositReader
	costs    CostReader
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// NewEngine creates an engine. m may be nil.
func NewEngine(meals MealReader, deposits DepositReader, costs CostReader, m *metrics.Metrics, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{meals: meals, deposits: deposits, costs: costs, metrics: m, log: log}
}

// Compute settles messID over the inclusive period.
// A period that starts after it ends fails with an InvalidPeriodError. An empty
// messID is a caller bug and fails with a ValidationError before the period is checked.
func (e *Engine) Compute(ctx context.Context, messID string, period models.Period) (result models.Settlement, err error) {
	start := time.Now()
	defer func() {
		e.metrics.Settlement(start, err)
	}()

	if messID == "" {
		return models.Settlement{}, &models.ValidationError{Field: "mess_id", Reason: "must be set"}
	}
	if err := period.Validate(); err != nil {
		return models.Settlement{}, err
	}

	// The three reads are independent; each materializes its own snapshot.
	var (
		meals    []models.MealEntry
		deposits []models.DepositEntry
		costs    []models.CostEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meals, err = storage.Collect(e.meals.ListMeals(gctx, messID, period))
		if err != nil {
			return fmt.Errorf("failed to read meals: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		deposits, err = storage.Collect(e.deposits.ListDeposits(gctx, messID, period))
		if err != nil {
			return fmt.Errorf("failed to read deposits: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		costs, err = storage.Collect(e.costs.ListCosts(gctx, messID, period))
		if err != nil {
			return fmt.Errorf("failed to read costs: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		e.log.ErrorContext(ctx, "Failed to read ledgers", "mess_id", messID, "period", period.String(), "error", err)
		return models.Settlement{}, err
	}

	result, err = calculator.Settle(period, meals, deposits, costs)
	if err != nil {
		return models.Settlement{}, err
	}

	e.log.DebugContext(ctx, "Computed settlement",
		"mess_id", messID,
		"period", period.String(),
		"members", len(result.PerMember),
		"meal_rate", result.MealRate.String(),
		"duration_ms", time.Since(start).Milliseconds())
	return result, nil
}

// MonthlySettlement settles a whole calendar month, last day included.
func (e *Engine) MonthlySettlement(ctx context.Context, messID string, year int, month time.Month) (models.Settlement, error) {
	return e.Compute(ctx, messID, models.MonthPeriod(year, month))
}
