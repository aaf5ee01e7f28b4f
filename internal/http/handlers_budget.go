package http

import (
	"net/http"

	"kuripot/internal/core"
)

type budgetRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Amount       string `json:"amount"`
	StartDate    string `json:"startDate"`
	DurationDays int    `json:"duration"`
}

func (s *Server) handleListBudgets(w http.ResponseWriter, _ *http.Request) {
	periods := s.budgets.Active()
	if periods == nil {
		periods = []core.BudgetPeriod{}
	}
	writeJSON(w, http.StatusOK, periods)
}

func (s *Server) handleListArchivedBudgets(w http.ResponseWriter, _ *http.Request) {
	periods := s.budgets.Archived()
	if periods == nil {
		periods = []core.BudgetPeriod{}
	}
	writeJSON(w, http.StatusOK, periods)
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	start, err := core.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}

	period, err := s.budgets.Create(r.Context(), req.Name, req.Description, amount, start, req.DurationDays)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, period)
}

func (s *Server) handleArchiveBudget(w http.ResponseWriter, r *http.Request) {
	period, err := s.budgets.Archive(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, period)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.budgets.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBudgetSummary(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, toSummaryJSON(summary))
}

type dashboardJSON struct {
	MonthlyBudget   moneyJSON            `json:"monthlyBudget"`
	TotalSpent      moneyJSON            `json:"totalSpent"`
	Remaining       moneyJSON            `json:"remaining"`
	DiscountSavings moneyJSON            `json:"discountSavings"`
	ByCategory      []categoryAmountJSON `json:"byCategory"`
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.budgets.BuildDashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	out := dashboardJSON{
		MonthlyBudget:   toMoneyJSON(d.MonthlyBudget),
		TotalSpent:      toMoneyJSON(d.TotalSpent),
		Remaining:       toMoneyJSON(d.Remaining),
		DiscountSavings: toMoneyJSON(d.DiscountSavings),
		ByCategory:      []categoryAmountJSON{},
	}
	for _, c := range core.Categories() {
		amt, ok := d.ByCategory[c]
		if !ok {
			continue
		}
		out.ByCategory = append(out.ByCategory, categoryAmountJSON{
			Category: c,
			Name:     c.Display(),
			Amount:   toMoneyJSON(amt),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type monthlyBudgetRequest struct {
	Amount string `json:"amount"`
}

func (s *Server) handleSetMonthlyBudget(w http.ResponseWriter, r *http.Request) {
	var req monthlyBudgetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.budgets.SetMonthlyBudget(r.Context(), amount); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMoneyJSON(amount))
}

func (s *Server) handleGetBudgetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, ok, err := s.budgets.BudgetConfig(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, core.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleSetBudgetConfig(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	start, err := core.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, err)
		return
	}

	cfg := core.BudgetPeriod{
		Name:         req.Name,
		Description:  req.Description,
		Amount:       amount,
		StartDate:    start,
		EndDate:      start.AddDays(req.DurationDays),
		DurationDays: req.DurationDays,
		Status:       core.StatusActive,
	}
	if err := s.budgets.SetBudgetConfig(r.Context(), cfg); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}
