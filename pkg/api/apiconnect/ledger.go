package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/messbook/pkg/api"
)

type LedgerServiceClient interface {
	UpsertMeals(context.Context, *connect.Request[api.UpsertMealsRequest]) (*connect.Response[api.UpsertMealsResponse], error)
	AppendDeposit(context.Context, *connect.Request[api.AppendDepositRequest]) (*connect.Response[api.AppendDepositResponse], error)
	AppendCost(context.Context, *connect.Request[api.AppendCostRequest]) (*connect.Response[api.AppendCostResponse], error)
	ListMeals(context.Context, *connect.Request[api.ListMealsRequest]) (*connect.Response[api.ListMealsResponse], error)
	ListDeposits(context.Context, *connect.Request[api.ListDepositsRequest]) (*connect.Response[api.ListDepositsResponse], error)
	ListCosts(context.Context, *connect.Request[api.ListCostsRequest]) (*connect.Response[api.ListCostsResponse], error)
}

// NewLedgerServiceClient builds a client for the LedgerService at baseURL.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ledgerServiceClient{
		upsertMeals:   connect.NewClient[api.UpsertMealsRequest, api.UpsertMealsResponse](httpClient, baseURL+LedgerServiceUpsertMealsProcedure, opts...),
		appendDeposit: connect.NewClient[api.AppendDepositRequest, api.AppendDepositResponse](httpClient, baseURL+LedgerServiceAppendDepositProcedure, opts...),
		appendCost:    connect.NewClient[api.AppendCostRequest, api.AppendCostResponse](httpClient, baseURL+LedgerServiceAppendCostProcedure, opts...),
		listMeals:     connect.NewClient[api.ListMealsRequest, api.ListMealsResponse](httpClient, baseURL+LedgerServiceListMealsProcedure, opts...),
		listDeposits:  connect.NewClient[api.ListDepositsRequest, api.ListDepositsResponse](httpClient, baseURL+LedgerServiceListDepositsProcedure, opts...),
		listCosts:     connect.NewClient[api.ListCostsRequest, api.ListCostsResponse](httpClient, baseURL+LedgerServiceListCostsProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	upsertMeals   *connect.Client[api.UpsertMealsRequest, api.UpsertMealsResponse]
	appendDeposit *connect.Client[api.AppendDepositRequest, api.AppendDepositResponse]
	appendCost    *connect.Client[api.AppendCostRequest, api.AppendCostResponse]
	listMeals     *connect.Client[api.ListMealsRequest, api.ListMealsResponse]
	listDeposits  *connect.Client[api.ListDepositsRequest, api.ListDepositsResponse]
	listCosts     *connect.Client[api.ListCostsRequest, api.ListCostsResponse]
}

func (c *ledgerServiceClient) UpsertMeals(ctx context.Context, req *connect.Request[api.UpsertMealsRequest]) (*connect.Response[api.UpsertMealsResponse], error) {
	return c.upsertMeals.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AppendDeposit(ctx context.Context, req *connect.Request[api.AppendDepositRequest]) (*connect.Response[api.AppendDepositResponse], error) {
	return c.appendDeposit.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AppendCost(ctx context.Context, req *connect.Request[api.AppendCostRequest]) (*connect.Response[api.AppendCostResponse], error) {
	return c.appendCost.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListMeals(ctx context.Context, req *connect.Request[api.ListMealsRequest]) (*connect.Response[api.ListMealsResponse], error) {
	return c.listMeals.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListDeposits(ctx context.Context, req *connect.Request[api.ListDepositsRequest]) (*connect.Response[api.ListDepositsResponse], error) {
	return c.listDeposits.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListCosts(ctx context.Context, req *connect.Request[api.ListCostsRequest]) (*connect.Response[api.ListCostsResponse], error) {
	return c.listCosts.CallUnary(ctx, req)
}

type LedgerServiceHandler interface {
	UpsertMeals(context.Context, *connect.Request[api.UpsertMealsRequest]) (*connect.Response[api.UpsertMealsResponse], error)
	AppendDeposit(context.Context, *connect.Request[api.AppendDepositRequest]) (*connect.Response[api.AppendDepositResponse], error)
	AppendCost(context.Context, *connect.Request[api.AppendCostRequest]) (*connect.Response[api.AppendCostResponse], error)
	ListMeals(context.Context, *connect.Request[api.ListMealsRequest]) (*connect.Response[api.ListMealsResponse], error)
	ListDeposits(context.Context, *connect.Request[api.ListDepositsRequest]) (*connect.Response[api.ListDepositsResponse], error)
	ListCosts(context.Context, *connect.Request[api.ListCostsRequest]) (*connect.Response[api.ListCostsResponse], error)
}

// NewLedgerServiceHandler returns the mount path and handler for svc.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + LedgerServiceName + "/", route(map[string]http.Handler{
		LedgerServiceUpsertMealsProcedure:   connect.NewUnaryHandler(LedgerServiceUpsertMealsProcedure, svc.UpsertMeals, opts...),
		LedgerServiceAppendDepositProcedure: connect.NewUnaryHandler(LedgerServiceAppendDepositProcedure, svc.AppendDeposit, opts...),
		LedgerServiceAppendCostProcedure:    connect.NewUnaryHandler(LedgerServiceAppendCostProcedure, svc.AppendCost, opts...),
		LedgerServiceListMealsProcedure:     connect.NewUnaryHandler(LedgerServiceListMealsProcedure, svc.ListMeals, opts...),
		LedgerServiceListDepositsProcedure:  connect.NewUnaryHandler(LedgerServiceListDepositsProcedure, svc.ListDeposits, opts...),
		LedgerServiceListCostsProcedure:     connect.NewUnaryHandler(LedgerServiceListCostsProcedure, svc.ListCosts, opts...),
	})
}

// UnimplementedLedgerServiceHandler answers every procedure with CodeUnimplemented.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) UpsertMeals(context.Context, *connect.Request[api.UpsertMealsRequest]) (*connect.Response[api.UpsertMealsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messbook.v1.LedgerService.UpsertMeals is not implemented"))
}

func (UnimplementedLedgerServiceHandler) AppendDeposit(context.Context, *connect.Request[api.AppendDepositRequest]) (*connect.Response[api.AppendDepositResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messbook.v1.LedgerService.AppendDeposit is not implemented"))
}

func (UnimplementedLedgerServiceHandler) AppendCost(context.Context, *connect.Request[api.AppendCostRequest]) (*connect.Response[api.AppendCostResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messbook.v1.LedgerService.AppendCost is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListMeals(context.Context, *connect.Request[api.ListMealsRequest]) (*connect.Response[api.ListMealsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messbook.v1.LedgerService.ListMeals is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListDeposits(context.Context, *connect.Request[api.ListDepositsRequest]) (*connect.Response[api.ListDepositsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messbook.v1.LedgerService.ListDeposits is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListCosts(context.Context, *connect.Request[api.ListCostsRequest]) (*connect.Response[api.ListCostsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("messbook.v1.LedgerService.ListCosts is not implemented"))
}
