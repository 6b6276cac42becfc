package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/mmynk/messbook/internal/ledger"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/storage"
	"github.com/mmynk/messbook/pkg/api"
	"github.com/mmynk/messbook/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService.
type LedgerService struct {
	apiconnect.UnimplementedLedgerServiceHandler
	meals    *ledger.MealLedger
	deposits *ledger.DepositLedger
	costs    *ledger.CostLedger
	logger   *slog.Logger
}

// NewLedgerService creates a LedgerService over the three ledgers.
func NewLedgerService(meals *ledger.MealLedger, deposits *ledger.DepositLedger, costs *ledger.CostLedger, logger *slog.Logger) *LedgerService {
	return &LedgerService{meals: meals, deposits: deposits, costs: costs, logger: logger}
}

// UpsertMeals records one date's meal counts for one or more members.
func (s *LedgerService) UpsertMeals(ctx context.Context, req *connect.Request[api.UpsertMealsRequest]) (*connect.Response[api.UpsertMealsResponse], error) {
	mc, err := messContext(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("UpsertMeals request received", "mess_id", mc.MessID, "date", req.Msg.Date, "entries", len(req.Msg.Entries))

	date, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, toConnectError(err)
	}
	entries := make([]models.MealEntry, 0, len(req.Msg.Entries))
	for _, in := range req.Msg.Entries {
		entry, err := toMealEntry(date, in)
		if err != nil {
			return nil, toConnectError(err)
		}
		entries = append(entries, entry)
	}

	totals, err := s.meals.UpsertDay(ctx, mc, date, entries)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.UpsertMealsResponse{
		Units: lo.Map(totals, func(d decimal.Decimal, _ int) string { return formatDecimal(d) }),
	}), nil
}

// AppendDeposit records a member's contribution to the pool.
func (s *LedgerService) AppendDeposit(ctx context.Context, req *connect.Request[api.AppendDepositRequest]) (*connect.Response[api.AppendDepositResponse], error) {
	mc, err := messContext(ctx)
	if err != nil {
		return nil, err
	}

	date, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, toConnectError(err)
	}
	amount, err := parseDecimal("amount", req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}

	id, err := s.deposits.Append(ctx, mc, models.DepositEntry{
		UserID:  req.Msg.UserID,
		Date:    date,
		Amount:  amount,
		Details: req.Msg.Details,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AppendDepositResponse{ID: id}), nil
}

// AppendCost records shared grocery spending.
func (s *LedgerService) AppendCost(ctx context.Context, req *connect.Request[api.AppendCostRequest]) (*connect.Response[api.AppendCostResponse], error) {
	mc, err := messContext(ctx)
	if err != nil {
		return nil, err
	}

	date, err := parseDate("date", req.Msg.Date)
	if err != nil {
		return nil, toConnectError(err)
	}
	amount, err := parseDecimal("amount", req.Msg.Amount)
	if err != nil {
		return nil, toConnectError(err)
	}

	id, err := s.costs.Append(ctx, mc, models.CostEntry{
		ShopperID: req.Msg.ShopperID,
		Date:      date,
		Amount:    amount,
		Details:   req.Msg.Details,
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AppendCostResponse{ID: id}), nil
}

// ListMeals returns the caller's mess meals in the period.
func (s *LedgerService) ListMeals(ctx context.Context, req *connect.Request[api.ListMealsRequest]) (*connect.Response[api.ListMealsResponse], error) {
	mc, period, err := listScope(ctx, req.Msg.Period)
	if err != nil {
		return nil, err
	}
	entries, err := storage.Collect(s.meals.Query(ctx, mc.MessID, period))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListMealsResponse{Entries: lo.Map(entries, toAPIMeal)}), nil
}

// ListDeposits returns the caller's mess deposits in the period.
func (s *LedgerService) ListDeposits(ctx context.Context, req *connect.Request[api.ListDepositsRequest]) (*connect.Response[api.ListDepositsResponse], error) {
	mc, period, err := listScope(ctx, req.Msg.Period)
	if err != nil {
		return nil, err
	}
	entries, err := storage.Collect(s.deposits.Query(ctx, mc.MessID, period))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListDepositsResponse{Entries: lo.Map(entries, toAPIDeposit)}), nil
}

// ListCosts returns the caller's mess costs in the period.
func (s *LedgerService) ListCosts(ctx context.Context, req *connect.Request[api.ListCostsRequest]) (*connect.Response[api.ListCostsResponse], error) {
	mc, period, err := listScope(ctx, req.Msg.Period)
	if err != nil {
		return nil, err
	}
	entries, err := storage.Collect(s.costs.Query(ctx, mc.MessID, period))
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListCostsResponse{Entries: lo.Map(entries, toAPICost)}), nil
}

func listScope(ctx context.Context, p api.Period) (models.MessContext, models.Period, error) {
	mc, err := messContext(ctx)
	if err != nil {
		return mc, models.Period{}, err
	}
	period, err := parsePeriod(p)
	if err != nil {
		return mc, models.Period{}, toConnectError(err)
	}
	return mc, period, nil
}
