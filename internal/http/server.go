// Package http exposes the tracker over a local JSON API plus CSV download
// endpoints. It is presentation glue: every business rule lives below it.
package http

import (
	"net/http"
	"time"

	"kuripot/internal/budget"
	applog "kuripot/internal/log"
	"kuripot/internal/services"
	"kuripot/internal/store"
)

// Server wires the stores, the period manager and the trip service behind
// an http.Server.
type Server struct {
	*http.Server

	expenses *store.ExpenseStore
	trips    *store.TripStore
	timeLogs *store.TimeLogStore
	budgets  *budget.Manager
	tripSvc  *services.TripService

	defaultDiscount int
	logger          *applog.Logger
}

func NewServer(
	addr string,
	expenses *store.ExpenseStore,
	trips *store.TripStore,
	timeLogs *store.TimeLogStore,
	budgets *budget.Manager,
	tripSvc *services.TripService,
	defaultDiscount int,
	logger *applog.Logger,
) *Server {
	s := &Server{
		expenses:        expenses,
		trips:           trips,
		timeLogs:        timeLogs,
		budgets:         budgets,
		tripSvc:         tripSvc,
		defaultDiscount: defaultDiscount,
		logger:          logger.WithComponent(applog.ComponentHTTP),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/fare", s.handleFareQuote)
	mux.HandleFunc("GET /api/fare/table", s.handleFareTable)
	mux.HandleFunc("GET /api/fare/stations", s.handleStations)

	mux.HandleFunc("GET /api/trips", s.handleListTrips)
	mux.HandleFunc("POST /api/trips", s.handleSaveTrip)
	mux.HandleFunc("PUT /api/trips/{id}", s.handleUpdateTrip)
	mux.HandleFunc("DELETE /api/trips/{id}", s.handleDeleteTrip)

	mux.HandleFunc("GET /api/timelogs", s.handleListTimeLogs)
	mux.HandleFunc("POST /api/timelogs/in", s.handleTimeIn)
	mux.HandleFunc("POST /api/timelogs/out", s.handleTimeOut)
	mux.HandleFunc("PUT /api/timelogs/{id}", s.handleUpdateTimeLog)
	mux.HandleFunc("DELETE /api/timelogs/{id}", s.handleDeleteTimeLog)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("POST /api/budgets", s.handleCreateBudget)
	mux.HandleFunc("GET /api/budgets/archived", s.handleListArchivedBudgets)
	mux.HandleFunc("POST /api/budgets/{id}/archive", s.handleArchiveBudget)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)
	mux.HandleFunc("GET /api/budgets/{id}/summary", s.handleBudgetSummary)

	mux.HandleFunc("GET /api/quarterly-budgets", s.handleListQuarterlyBudgets)
	mux.HandleFunc("POST /api/quarterly-budgets", s.handleCreateQuarterlyBudget)
	mux.HandleFunc("DELETE /api/quarterly-budgets/{id}", s.handleDeleteQuarterlyBudget)
	mux.HandleFunc("GET /api/quarters/{year}/{quarter}/summary", s.handleQuarterSummary)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("PUT /api/dashboard/monthly-budget", s.handleSetMonthlyBudget)
	mux.HandleFunc("GET /api/dashboard/config", s.handleGetBudgetConfig)
	mux.HandleFunc("PUT /api/dashboard/config", s.handleSetBudgetConfig)

	mux.HandleFunc("GET /api/export/expenses.csv", s.handleExportExpenses)
	mux.HandleFunc("GET /api/export/trips.csv", s.handleExportTrips)
	mux.HandleFunc("GET /api/export/timelogs.csv", s.handleExportTimeLogs)
	mux.HandleFunc("GET /api/export/budgets/{id}/report.csv", s.handleExportBudgetReport)
	mux.HandleFunc("GET /api/export/quarters/{year}/{quarter}/report.csv", s.handleExportQuarterReport)

	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.Server = &http.Server{
		Addr:           addr,
		Handler:        s.withRequestLog(mux),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// withRequestLog logs method, path, status and latency for every request.
func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.InfoContext(r.Context(), "request",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatusCode, rec.status,
			applog.FieldDuration, time.Since(start).Milliseconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
