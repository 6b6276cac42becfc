package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/messbook/internal/auth"
	"github.com/mmynk/messbook/internal/events"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage/sqlite"
)

// execute runs messctl with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMonthCommand(t *testing.T) {
	t.Setenv("MESSCTL_BACKEND", "memory")

	out, err := execute(t, "month", "2024-02", "--from-day", "1", "--to-day", "31")
	require.NoError(t, err)
	require.Equal(t, "2024-02-01 2024-02-29 (29 days)\n", out)
}

func TestMonthPeriod(t *testing.T) {
	tests := []struct {
		month        string
		from, to     int
		start, end   string
		wantErrField string
	}{
		{month: "2023-02", from: 1, to: 31, start: "2023-02-01", end: "2023-02-28"},
		{month: "2024-04", from: 10, to: 15, start: "2024-04-10", end: "2024-04-15"},
		{month: "2024-04", from: 31, to: 31, wantErrField: "from_day"},
		{month: "2024-4", from: 1, to: 31, wantErrField: "month"},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			p, err := monthPeriod(tt.month, tt.from, tt.to)
			if tt.wantErrField != "" {
				var ve *models.ValidationError
				require.ErrorAs(t, err, &ve)
				require.Equal(t, tt.wantErrField, ve.Field)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.start, p.Start.String())
			require.Equal(t, tt.end, p.End.String())
		})
	}
}

func TestReportPeriod(t *testing.T) {
	p, err := reportPeriod("", "2024-03-01", "2024-03-15")
	require.NoError(t, err)
	require.Equal(t, 15, p.Days())

	_, err = reportPeriod("", "2024-03-15", "2024-03-01")
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = reportPeriod("", "2024-03-01", "")
	require.Error(t, err)
}

func TestReportCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mess.db")
	t.Setenv("MESSCTL_BACKEND", "sqlite")
	t.Setenv("MESSCTL_DB_PATH", dbPath)
	t.Setenv("MESSCTL_COLOURS", "false")

	store, err := sqlite.New(dbPath)
	require.NoError(t, err)
	ctx := context.Background()

	mess := &models.Mess{Name: "Hall 7", Code: "ABC123", CreatedBy: "alice"}
	require.NoError(t, store.CreateMess(ctx, mess))
	day := models.NewDate(2024, time.March, 1)
	one := decimal.NewFromInt(1)
	_, err = store.UpsertMeal(ctx, &models.MealEntry{MessID: mess.ID, UserID: "alice", Date: day, Breakfast: one, Lunch: one, Dinner: one, CreatedBy: "alice"})
	require.NoError(t, err)
	_, err = store.UpsertMeal(ctx, &models.MealEntry{MessID: mess.ID, UserID: "bob", Date: day, Lunch: one, Dinner: one, CreatedBy: "alice"})
	require.NoError(t, err)
	_, err = store.AppendDeposit(ctx, &models.DepositEntry{MessID: mess.ID, UserID: "bob", Date: day, Amount: decimal.NewFromInt(20), CreatedBy: "bob"})
	require.NoError(t, err)
	_, err = store.AppendCost(ctx, &models.CostEntry{MessID: mess.ID, ShopperID: "alice", Date: day, Amount: decimal.NewFromInt(100), CreatedBy: "alice"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err := execute(t, "report", "--mess", mess.ID, "--month", "2024-03")
	require.NoError(t, err)
	require.Contains(t, out, "Settlement 2024-03-01..2024-03-31")
	require.Contains(t, out, "Meal rate: 20.00 per unit")

	lines := strings.Split(out, "\n")
	row := func(member string) string {
		for _, l := range lines {
			if strings.Contains(l, member) {
				return l
			}
		}
		return ""
	}
	require.Contains(t, row("alice"), "-60.00")
	require.Contains(t, row("bob"), "-20.00")
}

func TestRenderSettlementPlain(t *testing.T) {
	s := models.Settlement{
		Period:    models.MonthPeriod(2024, time.March),
		MealRate:  decimal.NewFromInt(10),
		PerMember: map[string]models.MemberSettlement{"alice": {Balance: decimal.NewFromInt(-5)}},
	}

	var plain bytes.Buffer
	renderSettlement(&plain, s, false)
	require.NotContains(t, plain.String(), "\x1b[")
	require.Contains(t, plain.String(), "-5.00")
}

func TestTokenCommand(t *testing.T) {
	secret := "messctl-test-secret-0123"
	t.Setenv("MESSCTL_JWT_SECRET", secret)

	out, err := execute(t, "token", "--user", "alice")
	require.NoError(t, err)

	claims, err := auth.NewJWTManager(secret, time.Hour).Validate(strings.TrimSpace(out))
	require.NoError(t, err)
	require.Equal(t, "alice", claims.UserID)
}

func TestPrintEvent(t *testing.T) {
	var out bytes.Buffer
	e := events.LedgerEvent{
		Kind:    events.KindDepositAppended,
		MessID:  "m1",
		UserID:  "bob",
		EntryID: "d1",
		Date:    "2024-03-01",
		At:      time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}
	printEvent(&out, e, false)
	require.Equal(t, "09:30:00 deposit_appended mess=m1 user=bob date=2024-03-01 entry=d1\n", out.String())
}
