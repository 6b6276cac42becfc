package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/messbook/pkg/api"
)

type SettlementServiceClient interface {
	ComputeSettlement(context.Context, *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error)
	GetMonthlySettlement(context.Context, *connect.Request[api.GetMonthlySettlementRequest]) (*connect.Response[api.GetMonthlySettlementResponse], error)
}

// NewSettlementServiceClient builds a client for the SettlementService at baseURL.
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &settlementServiceClient{
		computeSettlement:    connect.NewClient[api.ComputeSettlementRequest, api.ComputeSettlementResponse](httpClient, baseURL+SettlementServiceComputeSettlementProcedure, opts...),
		getMonthlySettlement: connect.NewClient[api.GetMonthlySettlementRequest, api.GetMonthlySettlementResponse](httpClient, baseURL+SettlementServiceGetMonthlySettlementProcedure, opts...),
	}
}

type settlementServiceClient struct {
	computeSettlement    *connect.Client[api.ComputeSettlementRequest, api.ComputeSettlementResponse]
	getMonthlySettlement *connect.Client[api.GetMonthlySettlementRequest, api.GetMonthlySettlementResponse]
}

func (c *settlementServiceClient) ComputeSettlement(ctx context.Context, req *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error) {
	return c.computeSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetMonthlySettlement(ctx context.Context, req *connect.Request[api.GetMonthlySettlementRequest]) (*connect.Response[api.GetMonthlySettlementResponse], error) {
	return c.getMonthlySettlement.CallUnary(ctx, req)
}

type SettlementServiceHandler interface {
	ComputeSettlement(context.Context, *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error)
	GetMonthlySettlement(context.Context, *connect.Request[api.GetMonthlySettlementRequest]) (*connect.Response[api.GetMonthlySettlementResponse], error)
}

// NewSettlementServiceHandler returns the mount path and handler for svc.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + SettlementServiceName + "/", route(map[string]http.Handler{
		SettlementServiceComputeSettlementProcedure:    connect.NewUnaryHandler(SettlementServiceComputeSettlementProcedure, svc.ComputeSettlement, opts...),
		SettlementServiceGetMonthlySettlementProcedure: connect.NewUnaryHandler(SettlementServiceGetMonthlySettlementProcedure, svc.GetMonthlySettlement, opts...),
	})
}

// UnimplementedSettlementServiceHandler answers every procedure with CodeUnimplemented.
type UnimplementedSettlementServiceHandler struct{}

func (UnimplementedSettlementServiceHandler) ComputeSettlement(context.Context, *connect.Request[api.ComputeSettlementRequest]) (*connect.Response[api.ComputeSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messbook.v1.SettlementService.ComputeSettlement is not implemented"))
}

func (UnimplementedSettlementServiceHandler) GetMonthlySettlement(context.Context, *connect.Request[api.GetMonthlySettlementRequest]) (*connect.Response[api.GetMonthlySettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messbook.v1.SettlementService.GetMonthlySettlement is not implemented"))
}
