package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mmynk/messbook/internal/events"
	"github.com/mmynk/messbook/internal/metrics"
	"github.com/mmynk/messbook/internal/mocks"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
	"github.com/mmynk/messbook/internal/storage/memory"
)

type fixture struct {
	store    *memory.Store
	mc       models.MessContext
	meals    *MealLedger
	deposits *DepositLedger
	costs    *CostLedger
	metrics  *metrics.Metrics
}

func newFixture(t *testing.T, publisher events.Publisher) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	mess := &models.Mess{Name: "Hall 4", Code: "HALL04", CreatedBy: "alice"}
	require.NoError(t, store.CreateMess(ctx, mess))
	require.NoError(t, store.AddMember(ctx, &models.Member{MessID: mess.ID, UserID: "alice", Role: models.RoleManager}))
	require.NoError(t, store.AddMember(ctx, &models.Member{MessID: mess.ID, UserID: "bob", Role: models.RoleMember}))

	other := &models.Mess{Name: "Elsewhere", Code: "OTHER1", CreatedBy: "zed"}
	require.NoError(t, store.CreateMess(ctx, other))
	require.NoError(t, store.AddMember(ctx, &models.Member{MessID: other.ID, UserID: "zed", Role: models.RoleManager}))

	m := metrics.New(prometheus.NewRegistry())
	opts := Options{Publisher: publisher, Metrics: m}
	return fixture{
		store:    store,
		mc:       models.MessContext{MessID: mess.ID, UserID: "alice", Role: models.RoleManager},
		meals:    NewMealLedger(store, store, opts),
		deposits: NewDepositLedger(store, store, opts),
		costs:    NewCostLedger(store, store, opts),
		metrics:  m,
	}
}

func units(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMealLedger_Upsert(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	day := models.NewDate(2024, time.March, 1)
	march := models.MonthPeriod(2024, time.March)

	t.Run("idempotent and replacing", func(t *testing.T) {
		req := require.New(t)
		entry := models.MealEntry{UserID: "bob", Date: day, Breakfast: units("1"), Lunch: units("1"), Dinner: units("1")}

		total, err := f.meals.Upsert(ctx, f.mc, entry)
		req.NoError(err)
		req.True(total.Equal(units("3")), "got %s", total)
		total, err = f.meals.Upsert(ctx, f.mc, entry)
		req.NoError(err)
		req.True(total.Equal(units("3")), "got %s", total)

		entry.Dinner = units("0")
		total, err = f.meals.Upsert(ctx, f.mc, entry)
		req.NoError(err)
		req.True(total.Equal(units("2")), "got %s", total)

		meals, err := storage.Collect(f.meals.Query(ctx, f.mc.MessID, march))
		req.NoError(err)
		req.Len(meals, 1)
		req.True(meals[0].Units().Equal(units("2")))
		req.Equal("alice", meals[0].CreatedBy)
	})

	t.Run("member of another mess is not found", func(t *testing.T) {
		_, err := f.meals.Upsert(ctx, f.mc, models.MealEntry{UserID: "zed", Date: day, Lunch: units("1")})
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("negative units are rejected", func(t *testing.T) {
		_, err := f.meals.Upsert(ctx, f.mc, models.MealEntry{UserID: "bob", Date: day, Lunch: units("-0.5")})
		require.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("missing context is rejected", func(t *testing.T) {
		_, err := f.meals.Upsert(ctx, models.MessContext{}, models.MealEntry{UserID: "bob", Date: day})
		require.ErrorIs(t, err, models.ErrValidation)
	})

	require.Equal(t, 3.0, testutil.ToFloat64(f.metrics.LedgerWrites.WithLabelValues("meal", metrics.ResultOK)))
	require.Equal(t, 3.0, testutil.ToFloat64(f.metrics.LedgerWrites.WithLabelValues("meal", metrics.ResultError)))
}

func TestMealLedger_UpsertDay(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newFixture(t, nil)
	day := models.NewDate(2024, time.March, 9)

	input := []models.MealEntry{
		{UserID: "alice", Lunch: units("1"), Dinner: units("1")},
		{UserID: "bob", Breakfast: units("0.5")},
	}
	totals, err := f.meals.UpsertDay(ctx, f.mc, day, input)
	req.NoError(err)
	req.Len(totals, 2)
	req.True(totals[0].Equal(units("2")), "got %s", totals[0])
	req.True(totals[1].Equal(units("0.5")), "got %s", totals[1])
	req.True(input[0].Date.IsZero(), "caller's slice is left untouched")

	got, err := f.meals.Get(ctx, f.mc, "bob", day)
	req.NoError(err)
	req.True(got.Units().Equal(units("0.5")))

	_, err = f.meals.UpsertDay(ctx, f.mc, day, []models.MealEntry{
		{UserID: "alice", Lunch: units("2")},
		{UserID: "", Lunch: units("1")},
	})
	req.ErrorIs(err, models.ErrValidation)

	got, err = f.meals.Get(ctx, f.mc, "alice", day)
	req.NoError(err)
	req.True(got.Lunch.Equal(units("1")), "a rejected batch writes nothing")

	nextDay := day.AddDays(1)
	_, err = f.meals.UpsertDay(ctx, f.mc, nextDay, []models.MealEntry{
		{UserID: "bob", Lunch: units("1")},
		{UserID: "zed", Lunch: units("1")},
	})
	req.ErrorIs(err, models.ErrNotFound)

	_, err = f.meals.Get(ctx, f.mc, "bob", nextDay)
	req.ErrorIs(err, models.ErrNotFound, "a batch naming a non-member writes nothing")
}

func TestLedger_QueryRejectsInvertedPeriod(t *testing.T) {
	f := newFixture(t, nil)
	inverted := models.Period{Start: models.NewDate(2024, time.March, 2), End: models.NewDate(2024, time.March, 1)}

	_, err := storage.Collect(f.meals.Query(context.Background(), f.mc.MessID, inverted))
	var periodErr *models.InvalidPeriodError
	require.True(t, errors.As(err, &periodErr))

	_, err = storage.Collect(f.deposits.Query(context.Background(), f.mc.MessID, inverted))
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = storage.Collect(f.costs.Query(context.Background(), "", models.MonthPeriod(2024, time.March)))
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestDepositAndCostLedgers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	day := models.NewDate(2024, time.March, 3)
	march := models.MonthPeriod(2024, time.March)

	t.Run("duplicate deposits are kept", func(t *testing.T) {
		req := require.New(t)
		deposit := models.DepositEntry{UserID: "bob", Date: day, Amount: units("100")}
		id1, err := f.deposits.Append(ctx, f.mc, deposit)
		req.NoError(err)
		id2, err := f.deposits.Append(ctx, f.mc, deposit)
		req.NoError(err)
		req.NotEqual(id1, id2)

		deposits, err := storage.Collect(f.deposits.Query(ctx, f.mc.MessID, march))
		req.NoError(err)
		req.Len(deposits, 2)
	})

	t.Run("deposit defaults to the caller", func(t *testing.T) {
		_, err := f.deposits.Append(ctx, f.mc, models.DepositEntry{Date: day, Amount: units("5")})
		require.NoError(t, err)
	})

	t.Run("zero deposit accepted", func(t *testing.T) {
		id, err := f.deposits.Append(ctx, f.mc, models.DepositEntry{UserID: "bob", Date: day, Amount: decimal.Zero})
		require.NoError(t, err)
		require.NotEmpty(t, id)
	})

	t.Run("negative deposit rejected", func(t *testing.T) {
		_, err := f.deposits.Append(ctx, f.mc, models.DepositEntry{UserID: "bob", Date: day, Amount: units("-0.01")})
		require.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("cost shopper must be a member", func(t *testing.T) {
		_, err := f.costs.Append(ctx, f.mc, models.CostEntry{ShopperID: "zed", Date: day, Amount: units("10")})
		require.ErrorIs(t, err, models.ErrNotFound)

		_, err = f.costs.Append(ctx, f.mc, models.CostEntry{Date: day, Amount: units("10"), Details: "vegetables"})
		require.NoError(t, err)

		costs, err := storage.Collect(f.costs.Query(ctx, f.mc.MessID, march))
		require.NoError(t, err)
		require.Len(t, costs, 1)
		require.Equal(t, "alice", costs[0].ShopperID)
	})

	t.Run("zero cost accepted", func(t *testing.T) {
		_, err := f.costs.Append(ctx, f.mc, models.CostEntry{Date: day, Amount: decimal.Zero, Details: "free bread"})
		require.NoError(t, err)

		_, err = f.costs.Append(ctx, f.mc, models.CostEntry{Date: day, Amount: units("-1")})
		require.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestLedger_PublishesEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	publisher := mocks.NewMockPublisher(ctrl)
	f := newFixture(t, publisher)
	ctx := context.Background()
	day := models.NewDate(2024, time.March, 5)

	t.Run("should publish a meal event with the entry id", func(t *testing.T) {
		req := require.New(t)
		var got events.LedgerEvent
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e events.LedgerEvent) error {
				got = e
				return nil
			}).Times(1)

		total, err := f.meals.Upsert(ctx, f.mc, models.MealEntry{UserID: "bob", Date: day, Lunch: units("1")})

		req.NoError(err)
		req.True(total.Equal(units("1")))
		req.Equal(events.KindMealUpserted, got.Kind)
		req.NotEmpty(got.EntryID)
		req.Equal("2024-03-05", got.Date)
	})

	t.Run("should keep the write when publishing fails", func(t *testing.T) {
		req := require.New(t)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down")).Times(1)

		id, err := f.costs.Append(ctx, f.mc, models.CostEntry{Date: day, Amount: units("12")})

		req.NoError(err)
		req.NotEmpty(id)
	})

	t.Run("should not publish rejected writes", func(t *testing.T) {
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

		_, err := f.deposits.Append(ctx, f.mc, models.DepositEntry{UserID: "bob", Date: day, Amount: units("-1")})

		require.Error(t, err)
	})
}
