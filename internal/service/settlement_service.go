package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/settlement"
	"github.com/mmynk/messbook/pkg/api"
	"github.com/mmynk/messbook/pkg/api/apiconnect"
)

// SettlementService implements the Connect SettlementService.
type SettlementService struct {
	apiconnect.UnimplementedSettlementServiceHandler
	engine *settlement.Engine
	logger *slog.Logger
}

// NewSettlementService creates a SettlementService over the engine.
func NewSettlementService(engine *settlement.Engine, logger *slog.Logger) *SettlementService {
	return &SettlementService{engine: engine, logger: logger}
}

// ComputeSettlement settles the caller's mess over an inclusive date range.
func (s *SettlementService) ComputeSettlement(ctx context.Context, req *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error) {
	mc, err := messContext(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("ComputeSettlement request received", "mess_id", mc.MessID, "start", req.Msg.Start, "end", req.Msg.End)

	period, err := parsePeriod(api.Period{Start: req.Msg.Start, End: req.Msg.End})
	if err != nil {
		return nil, toConnectError(err)
	}
	result, err := s.engine.Compute(ctx, mc.MessID, period)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ComputeSettlementResponse{Settlement: toAPISettlement(result)}), nil
}

// GetMonthlySettlement settles the caller's mess over a whole calendar month.
func (s *SettlementService) GetMonthlySettlement(ctx context.Context, req *connect.Request[api.GetMonthlySettlementRequest]) (*connect.Response[api.GetMonthlySettlementResponse], error) {
	mc, err := messContext(ctx)
	if err != nil {
		return nil, err
	}

	month, err := models.ParseMonth(req.Msg.Month)
	if err != nil {
		return nil, toConnectError(err)
	}
	result, err := s.engine.MonthlySettlement(ctx, mc.MessID, month.Start.Year(), month.Start.Month())
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetMonthlySettlementResponse{Settlement: toAPISettlement(result)}), nil
}
