package http

import (
	"fmt"
	"net/http"
	"time"

	applog "kuripot/internal/log"

	"kuripot/internal/core"
	"kuripot/internal/export"
)

func csvHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

func (s *Server) handleExportExpenses(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	csvHeaders(w, fmt.Sprintf("expenses_%s.csv", time.Now().Format("2006-01-02")))
	if err := export.WriteExpensesCSV(w, s.expenses.FilterByDateRange(start, end)); err != nil {
		s.logger.ErrorContext(r.Context(), "Expense export failed", applog.FieldError, err)
	}
}

func (s *Server) handleExportTrips(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	csvHeaders(w, fmt.Sprintf("trips_%s.csv", time.Now().Format("2006-01-02")))
	if err := export.WriteTripsCSV(w, s.trips.FilterByDateRange(start, end)); err != nil {
		s.logger.ErrorContext(r.Context(), "Trip export failed", applog.FieldError, err)
	}
}

func (s *Server) handleExportTimeLogs(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	csvHeaders(w, fmt.Sprintf("time_logs_%s.csv", time.Now().Format("2006-01-02")))
	if err := export.WriteTimeLogsCSV(w, s.timeLogs.FilterByDateRange(start, end)); err != nil {
		s.logger.ErrorContext(r.Context(), "Time log export failed", applog.FieldError, err)
	}
}

func (s *Server) handleExportQuarterReport(w http.ResponseWriter, r *http.Request) {
	quarter, year, err := parseQuarterPath(r)
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := s.budgets.LoadQuarterSummary(quarter, year)
	if err != nil {
		writeError(w, err)
		return
	}

	var target *core.QuarterlyBudget
	for _, b := range s.budgets.QuarterlyBudgets() {
		if b.Quarter == quarter && b.Year == year {
			budget := b
			target = &budget
		}
	}

	csvHeaders(w, fmt.Sprintf("quarterly_report_%s_%d.csv", quarter, year))
	if err := export.WriteQuarterReportCSV(w, summary, target); err != nil {
		s.logger.ErrorContext(r.Context(), "Quarter report export failed", applog.FieldError, err)
	}
}

func (s *Server) handleExportBudgetReport(w http.ResponseWriter, r *http.Request) {
	reference, err := parseReference(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := s.budgets.LoadSummary(r.PathValue("id"), reference)
	if err != nil {
		writeError(w, err)
		return
	}
	expenses := s.expenses.FilterByDateRange(summary.Period.StartDate, summary.Period.EndDate)

	csvHeaders(w, fmt.Sprintf("budget_report_%s.csv", summary.Period.ID))
	if err := export.WriteBudgetReportCSV(w, summary, expenses); err != nil {
		s.logger.ErrorContext(r.Context(), "Budget report export failed", applog.FieldError, err)
	}
}
