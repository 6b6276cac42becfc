package badger

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
)

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	store, err := New(db, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func meal(messID, user string, date models.Date, units string) *models.MealEntry {
	return &models.MealEntry{
		MessID: messID, UserID: user, Date: date,
		Breakfast: decimal.Zero, Lunch: decimal.RequireFromString(units), Dinner: decimal.Zero,
		CreatedBy: user,
	}
}

func Test_Mess_Roster(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	ctx := context.Background()

	mess := &models.Mess{Name: "Hall 4", Code: "ABC123", CreatedBy: "alice"}
	req.NoError(store.CreateMess(ctx, mess))
	req.NotEmpty(mess.ID)

	err := store.CreateMess(ctx, &models.Mess{Name: "Copy", Code: "ABC123", CreatedBy: "bob"})
	req.ErrorIs(err, models.ErrConflict)

	byCode, err := store.GetMessByCode(ctx, "ABC123")
	req.NoError(err)
	req.Equal(mess.ID, byCode.ID)

	_, err = store.GetMess(ctx, "missing")
	req.ErrorIs(err, models.ErrNotFound)

	req.NoError(store.AddMember(ctx, &models.Member{MessID: mess.ID, UserID: "bob", Role: models.RoleMember, JoinedAt: 20}))
	req.NoError(store.AddMember(ctx, &models.Member{MessID: mess.ID, UserID: "alice", Role: models.RoleManager, JoinedAt: 10}))
	req.ErrorIs(store.AddMember(ctx, &models.Member{MessID: mess.ID, UserID: "bob", Role: models.RoleMember}), models.ErrConflict)
	req.ErrorIs(store.AddMember(ctx, &models.Member{MessID: "nope", UserID: "carol", Role: models.RoleMember}), models.ErrNotFound)

	members, err := store.ListMembers(ctx, mess.ID)
	req.NoError(err)
	req.Len(members, 2)
	req.Equal("alice", members[0].UserID)
	req.Equal(models.RoleManager, members[0].Role)

	req.ErrorIs(store.RemoveMember(ctx, "other-mess", "bob"), models.ErrNotFound)
	req.NoError(store.RemoveMember(ctx, mess.ID, "bob"))
	_, err = store.GetMembership(ctx, "bob")
	req.ErrorIs(err, models.ErrNotFound)

	members, err = store.ListMembers(ctx, mess.ID)
	req.NoError(err)
	req.Len(members, 1)
}

func Test_Delete_Mess(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	ctx := context.Background()
	march := models.MonthPeriod(2024, time.March)

	mess := &models.Mess{Name: "Hall 4", Code: "GONE01", CreatedBy: "alice"}
	req.NoError(store.CreateMess(ctx, mess))
	req.NoError(store.AddMember(ctx, &models.Member{MessID: mess.ID, UserID: "alice", Role: models.RoleManager}))
	_, err := store.UpsertMeal(ctx, meal(mess.ID, "alice", models.NewDate(2024, time.March, 1), "1"))
	req.NoError(err)
	_, err = store.AppendCost(ctx, &models.CostEntry{MessID: mess.ID, ShopperID: "alice", Date: models.NewDate(2024, time.March, 1), Amount: decimal.NewFromInt(10)})
	req.NoError(err)

	req.NoError(store.DeleteMess(ctx, mess.ID))

	_, err = store.GetMessByCode(ctx, "GONE01")
	req.ErrorIs(err, models.ErrNotFound)
	_, err = store.GetMembership(ctx, "alice")
	req.ErrorIs(err, models.ErrNotFound)
	meals, err := storage.Collect(store.ListMeals(ctx, mess.ID, march))
	req.NoError(err)
	req.Empty(meals)
	costs, err := storage.Collect(store.ListCosts(ctx, mess.ID, march))
	req.NoError(err)
	req.Empty(costs)

	req.ErrorIs(store.DeleteMess(ctx, mess.ID), models.ErrNotFound)
	req.NoError(store.CreateMess(ctx, &models.Mess{Name: "Again", Code: "GONE01", CreatedBy: "bob"}))
}

func Test_Upsert_Meal_Replaces(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	ctx := context.Background()
	day := models.NewDate(2024, time.March, 1)

	id1, err := store.UpsertMeal(ctx, meal("m1", "alice", day, "1"))
	req.NoError(err)
	id2, err := store.UpsertMeal(ctx, meal("m1", "alice", day, "1"))
	req.NoError(err)
	req.Equal(id1, id2)

	id3, err := store.UpsertMeal(ctx, meal("m1", "alice", day, "2.5"))
	req.NoError(err)
	req.Equal(id1, id3)

	got, err := store.GetMeal(ctx, "m1", "alice", day)
	req.NoError(err)
	req.True(got.Units().Equal(decimal.RequireFromString("2.5")))

	meals, err := storage.Collect(store.ListMeals(ctx, "m1", models.MonthPeriod(2024, time.March)))
	req.NoError(err)
	req.Len(meals, 1)
}

func Test_List_Meals_Range_And_Order(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	ctx := context.Background()

	for _, m := range []*models.MealEntry{
		meal("m1", "carol", models.NewDate(2024, time.February, 2), "1"),
		meal("m1", "bob", models.NewDate(2024, time.February, 2), "1"),
		meal("m1", "alice", models.NewDate(2024, time.February, 29), "1"),
		meal("m1", "alice", models.NewDate(2024, time.March, 1), "1"),
		meal("m1", "alice", models.NewDate(2024, time.January, 31), "1"),
		meal("m2", "zed", models.NewDate(2024, time.February, 10), "1"),
	} {
		_, err := store.UpsertMeal(ctx, m)
		req.NoError(err)
	}

	var got []string
	for m, err := range store.ListMeals(ctx, "m1", models.MonthPeriod(2024, time.February)) {
		req.NoError(err)
		got = append(got, m.Date.String()+"/"+m.UserID)
	}
	req.Equal([]string{"2024-02-02/bob", "2024-02-02/carol", "2024-02-29/alice"}, got)
}

func Test_Append_Keeps_Duplicates_In_Order(t *testing.T) {
	req := require.New(t)
	store := newTestStore(t)
	ctx := context.Background()
	day := models.NewDate(2024, time.March, 3)
	march := models.MonthPeriod(2024, time.March)

	for _, amount := range []string{"50", "50", "20"} {
		_, err := store.AppendDeposit(ctx, &models.DepositEntry{MessID: "m1", UserID: "alice", Date: day, Amount: decimal.RequireFromString(amount)})
		req.NoError(err)
	}
	_, err := store.AppendDeposit(ctx, &models.DepositEntry{MessID: "m1", UserID: "bob", Date: models.NewDate(2024, time.March, 1), Amount: decimal.NewFromInt(5)})
	req.NoError(err)

	deposits, err := storage.Collect(store.ListDeposits(ctx, "m1", march))
	req.NoError(err)
	req.Len(deposits, 4)
	req.Equal("bob", deposits[0].UserID)
	req.Equal("20", deposits[3].Amount.String())

	for _, amount := range []string{"7", "3"} {
		_, err := store.AppendCost(ctx, &models.CostEntry{MessID: "m1", ShopperID: "bob", Date: day, Amount: decimal.RequireFromString(amount), Details: "eggs"})
		req.NoError(err)
	}
	costs, err := storage.Collect(store.ListCosts(ctx, "m1", march))
	req.NoError(err)
	req.Len(costs, 2)
	req.Equal("7", costs[0].Amount.String())
	req.Equal("eggs", costs[1].Details)

	empty, err := storage.Collect(store.ListCosts(ctx, "m1", models.MonthPeriod(2024, time.April)))
	req.NoError(err)
	req.Empty(empty)
}
