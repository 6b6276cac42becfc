// Package apiconnect wires the messbook.v1 services onto Connect handlers and clients.
// Messages are the plain structs of package api, carried by api.JSONCodec.
package apiconnect

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/messbook/pkg/api"
)

const (
	MessServiceName       = "messbook.v1.MessService"
	LedgerServiceName     = "messbook.v1.LedgerService"
	SettlementServiceName = "messbook.v1.SettlementService"
)

// Procedure paths.
const (
	MessServiceCreateMessProcedure     = "/messbook.v1.MessService/CreateMess"
	MessServiceJoinMessProcedure       = "/messbook.v1.MessService/JoinMess"
	MessServiceGetCurrentMessProcedure = "/messbook.v1.MessService/GetCurrentMess"
	MessServiceRemoveMemberProcedure   = "/messbook.v1.MessService/RemoveMember"

	LedgerServiceUpsertMealsProcedure   = "/messbook.v1.LedgerService/UpsertMeals"
	LedgerServiceAppendDepositProcedure = "/messbook.v1.LedgerService/AppendDeposit"
	LedgerServiceAppendCostProcedure    = "/messbook.v1.LedgerService/AppendCost"
	LedgerServiceListMealsProcedure     = "/messbook.v1.LedgerService/ListMeals"
	LedgerServiceListDepositsProcedure  = "/messbook.v1.LedgerService/ListDeposits"
	LedgerServiceListCostsProcedure     = "/messbook.v1.LedgerService/ListCosts"

	SettlementServiceComputeSettlementProcedure    = "/messbook.v1.SettlementService/ComputeSettlement"
	SettlementServiceGetMonthlySettlementProcedure = "/messbook.v1.SettlementService/GetMonthlySettlement"
)

// handlerOptions puts the JSON codec first so callers can still add interceptors.
func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

// route dispatches on the full procedure path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
