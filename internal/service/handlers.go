package service

import (
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	// AuthServiceName is the fully-qualified name of the AuthService.
	AuthServiceName = "budgetbook.v1.AuthService"
	// LedgerServiceName is the fully-qualified name of the LedgerService.
	LedgerServiceName = "budgetbook.v1.LedgerService"
)

// Procedure paths, in the form /<service>/<method>.
const (
	AuthServiceLoginProcedure = "/" + AuthServiceName + "/Login"

	LedgerServiceAddTransactionProcedure    = "/" + LedgerServiceName + "/AddTransaction"
	LedgerServiceUpdateTransactionProcedure = "/" + LedgerServiceName + "/UpdateTransaction"
	LedgerServiceDeleteTransactionProcedure = "/" + LedgerServiceName + "/DeleteTransaction"
	LedgerServiceListTransactionsProcedure  = "/" + LedgerServiceName + "/ListTransactions"
	LedgerServiceUpsertBudgetProcedure      = "/" + LedgerServiceName + "/UpsertBudget"
	LedgerServiceListBudgetsProcedure       = "/" + LedgerServiceName + "/ListBudgets"
	LedgerServiceGetBudgetProcedure         = "/" + LedgerServiceName + "/GetBudget"
	LedgerServiceGetMonthTotalsProcedure    = "/" + LedgerServiceName + "/GetMonthTotals"
	LedgerServiceGetPerformanceProcedure    = "/" + LedgerServiceName + "/GetPerformance"
	LedgerServiceGetDashboardProcedure      = "/" + LedgerServiceName + "/GetDashboard"
	LedgerServiceGetYearOverviewProcedure   = "/" + LedgerServiceName + "/GetYearOverview"
)

// routes dispatches on the full procedure path.
type routes map[string]http.Handler

func (r routes) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r[req.URL.Path]; ok {
		h.ServeHTTP(w, req)
		return
	}
	http.NotFound(w, req)
}

func servicePath(name string) string {
	return "/" + strings.TrimPrefix(name, "/") + "/"
}

// NewAuthServiceHandler builds an HTTP handler for svc. It returns the path on
// which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	return servicePath(AuthServiceName), routes{
		AuthServiceLoginProcedure: connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
	}
}

// NewLedgerServiceHandler builds an HTTP handler for svc. Callers are expected
// to pass middleware.RequireAuth among the interceptors.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	return servicePath(LedgerServiceName), routes{
		LedgerServiceAddTransactionProcedure:    connect.NewUnaryHandler(LedgerServiceAddTransactionProcedure, svc.AddTransaction, opts...),
		LedgerServiceUpdateTransactionProcedure: connect.NewUnaryHandler(LedgerServiceUpdateTransactionProcedure, svc.UpdateTransaction, opts...),
		LedgerServiceDeleteTransactionProcedure: connect.NewUnaryHandler(LedgerServiceDeleteTransactionProcedure, svc.DeleteTransaction, opts...),
		LedgerServiceListTransactionsProcedure:  connect.NewUnaryHandler(LedgerServiceListTransactionsProcedure, svc.ListTransactions, opts...),
		LedgerServiceUpsertBudgetProcedure:      connect.NewUnaryHandler(LedgerServiceUpsertBudgetProcedure, svc.UpsertBudget, opts...),
		LedgerServiceListBudgetsProcedure:       connect.NewUnaryHandler(LedgerServiceListBudgetsProcedure, svc.ListBudgets, opts...),
		LedgerServiceGetBudgetProcedure:         connect.NewUnaryHandler(LedgerServiceGetBudgetProcedure, svc.GetBudget, opts...),
		LedgerServiceGetMonthTotalsProcedure:    connect.NewUnaryHandler(LedgerServiceGetMonthTotalsProcedure, svc.GetMonthTotals, opts...),
		LedgerServiceGetPerformanceProcedure:    connect.NewUnaryHandler(LedgerServiceGetPerformanceProcedure, svc.GetPerformance, opts...),
		LedgerServiceGetDashboardProcedure:      connect.NewUnaryHandler(LedgerServiceGetDashboardProcedure, svc.GetDashboard, opts...),
		LedgerServiceGetYearOverviewProcedure:   connect.NewUnaryHandler(LedgerServiceGetYearOverviewProcedure, svc.GetYearOverview, opts...),
	}
}
