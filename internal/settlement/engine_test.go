package settlement

import (
	"context"
	"errors"
	"iter"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/messbook/internal/metrics"
	"github.com/mmynk/messbook/internal/mocks"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
	"github.com/mmynk/messbook/internal/storage/memory"
	"github.com/mmynk/messbook/internal/storage/sqlite"
)

func seqOf[T any](items ...T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}

func failing[T any](err error) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		yield(zero, err)
	}
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEngine_Compute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mealReader := mocks.NewMockMealReader(ctrl)
	depositReader := mocks.NewMockDepositReader(ctrl)
	costReader := mocks.NewMockCostReader(ctrl)
	m := metrics.New(prometheus.NewRegistry())
	engine := NewEngine(mealReader, depositReader, costReader, m, nil)

	period := models.MonthPeriod(2024, time.March)
	day := models.NewDate(2024, time.March, 4)

	t.Run("should settle the two-member scenario", func(t *testing.T) {
		req := require.New(t)

		mealReader.EXPECT().ListMeals(gomock.Any(), "m1", period).Return(seqOf(
			models.MealEntry{MessID: "m1", UserID: "alice", Date: day, Breakfast: amount("3"), Lunch: amount("4"), Dinner: amount("3")},
			models.MealEntry{MessID: "m1", UserID: "bob", Date: day, Breakfast: amount("6"), Lunch: amount("7"), Dinner: amount("7")},
		)).Times(1)
		depositReader.EXPECT().ListDeposits(gomock.Any(), "m1", period).Return(seqOf(
			models.DepositEntry{MessID: "m1", UserID: "alice", Date: day, Amount: amount("200")},
			models.DepositEntry{MessID: "m1", UserID: "bob", Date: day, Amount: amount("300")},
		)).Times(1)
		costReader.EXPECT().ListCosts(gomock.Any(), "m1", period).Return(seqOf(
			models.CostEntry{MessID: "m1", ShopperID: "alice", Date: day, Amount: amount("300")},
		)).Times(1)

		s, err := engine.Compute(context.Background(), "m1", period)

		req.NoError(err)
		req.True(s.MealRate.Equal(amount("10")))
		req.True(s.MessBalance.Equal(amount("200")))
		req.True(s.PerMember["alice"].Cost.Equal(amount("100")))
		req.True(s.PerMember["alice"].Balance.Equal(amount("100")))
		req.True(s.PerMember["bob"].Cost.Equal(amount("200")))
		req.True(s.PerMember["bob"].Balance.Equal(amount("100")))
	})

	t.Run("should fail on an inverted period without reading", func(t *testing.T) {
		req := require.New(t)
		mealReader.EXPECT().ListMeals(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := engine.Compute(context.Background(), "m1", models.Period{Start: day.AddDays(1), End: day})

		var periodErr *models.InvalidPeriodError
		req.True(errors.As(err, &periodErr))
	})

	t.Run("should surface a ledger read failure", func(t *testing.T) {
		req := require.New(t)
		boom := errors.New("disk on fire")

		mealReader.EXPECT().ListMeals(gomock.Any(), "m1", period).Return(seqOf[models.MealEntry]())
		depositReader.EXPECT().ListDeposits(gomock.Any(), "m1", period).Return(failing[models.DepositEntry](boom))
		costReader.EXPECT().ListCosts(gomock.Any(), "m1", period).Return(seqOf[models.CostEntry]())

		_, err := engine.Compute(context.Background(), "m1", period)

		req.ErrorIs(err, boom)
	})

	require.Equal(t, 2.0, testutil.ToFloat64(m.SettlementErrors))
}

func TestEngine_MonthlySettlement(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	store := memory.New()

	// Leap-year February: the 29th belongs to the month, March 1st does not.
	entries := []models.MealEntry{
		{MessID: "m1", UserID: "alice", Date: models.NewDate(2024, time.February, 29), Lunch: amount("1")},
		{MessID: "m1", UserID: "alice", Date: models.NewDate(2024, time.March, 1), Lunch: amount("5")},
	}
	for _, e := range entries {
		_, err := store.UpsertMeal(ctx, &e)
		req.NoError(err)
	}
	_, err := store.AppendCost(ctx, &models.CostEntry{MessID: "m1", ShopperID: "alice", Date: models.NewDate(2024, time.February, 29), Amount: amount("42")})
	req.NoError(err)

	engine := NewEngine(store, store, store, nil, nil)
	s, err := engine.MonthlySettlement(ctx, "m1", 2024, time.February)

	req.NoError(err)
	req.Equal("2024-02-29", s.Period.End.String())
	req.True(s.TotalMealUnits.Equal(amount("1")))
	req.True(s.MealRate.Equal(amount("42")))
}

func TestEngine_EmptyMess(t *testing.T) {
	req := require.New(t)
	store := memory.New()
	engine := NewEngine(store, store, store, nil, nil)

	s, err := engine.Compute(context.Background(), "m1", models.MonthPeriod(2024, time.January))

	req.NoError(err)
	req.True(s.MealRate.IsZero())
	req.Empty(s.PerMember)

	_, err = engine.Compute(context.Background(), "", models.MonthPeriod(2024, time.January))
	req.ErrorIs(err, models.ErrValidation)
	var periodErr *models.InvalidPeriodError
	req.False(errors.As(err, &periodErr), "an empty mess id is not a period error")
}

// summary flattens a settlement into comparable strings.
func summary(s models.Settlement) map[string]string {
	out := map[string]string{
		"units":   s.TotalMealUnits.String(),
		"cost":    s.TotalCost.String(),
		"rate":    s.MealRate.String(),
		"balance": s.MessBalance.String(),
	}
	for _, id := range s.MemberIDs() {
		m := s.PerMember[id]
		out[id] = m.Units.String() + "/" + m.Deposits.String() + "/" + m.Cost.String() + "/" + m.Balance.String()
	}
	return out
}

func TestEngine_ConcurrentCompute(t *testing.T) {
	stores := map[string]func(t *testing.T) storage.Store{
		"memory": func(*testing.T) storage.Store { return memory.New() },
		"sqlite": func(t *testing.T) storage.Store {
			store, err := sqlite.New(filepath.Join(t.TempDir(), "settle.db"))
			require.NoError(t, err)
			t.Cleanup(func() { store.Close() })
			return store
		},
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			ctx := context.Background()
			store := open(t)

			mess := &models.Mess{Name: "Hall 4", Code: "CONC01", CreatedBy: "alice"}
			req.NoError(store.CreateMess(ctx, mess))
			day := models.NewDate(2024, time.March, 4)
			for _, e := range []models.MealEntry{
				{MessID: mess.ID, UserID: "alice", Date: day, Breakfast: amount("1"), Lunch: amount("1"), Dinner: amount("1")},
				{MessID: mess.ID, UserID: "bob", Date: day, Lunch: amount("1"), Dinner: amount("1")},
				{MessID: mess.ID, UserID: "carol", Date: day, Dinner: amount("1")},
			} {
				_, err := store.UpsertMeal(ctx, &e)
				req.NoError(err)
			}
			_, err := store.AppendCost(ctx, &models.CostEntry{MessID: mess.ID, ShopperID: "alice", Date: day, Amount: amount("100")})
			req.NoError(err)
			_, err = store.AppendDeposit(ctx, &models.DepositEntry{MessID: mess.ID, UserID: "bob", Date: day, Amount: amount("60")})
			req.NoError(err)

			engine := NewEngine(store, store, store, nil, nil)
			period := models.MonthPeriod(2024, time.March)
			want, err := engine.Compute(ctx, mess.ID, period)
			req.NoError(err)
			req.True(want.TotalCost.Equal(amount("100")))

			const callers = 8
			got := make([]models.Settlement, callers)
			g, gctx := errgroup.WithContext(ctx)
			for i := range callers {
				g.Go(func() error {
					s, err := engine.Compute(gctx, mess.ID, period)
					got[i] = s
					return err
				})
			}
			req.NoError(g.Wait())

			for _, s := range got {
				req.Equal(summary(want), summary(s))
			}
		})
	}
}
