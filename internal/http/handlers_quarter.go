package http

import (
	"fmt"
	"net/http"
	"strconv"

	"kuripot/internal/core"
)

type quarterlyBudgetRequest struct {
	Name    string `json:"name"`
	Quarter string `json:"quarter"`
	Year    int    `json:"year"`
	Amount  string `json:"amount"`
}

func (s *Server) handleListQuarterlyBudgets(w http.ResponseWriter, _ *http.Request) {
	budgets := s.budgets.QuarterlyBudgets()
	if budgets == nil {
		budgets = []core.QuarterlyBudget{}
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (s *Server) handleCreateQuarterlyBudget(w http.ResponseWriter, r *http.Request) {
	var req quarterlyBudgetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	quarter, err := core.ParseQuarter(req.Quarter)
	if err != nil {
		writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	b, err := s.budgets.CreateQuarterlyBudget(r.Context(), req.Name, quarter, req.Year, amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleDeleteQuarterlyBudget(w http.ResponseWriter, r *http.Request) {
	if err := s.budgets.DeleteQuarterlyBudget(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseQuarterPath reads the {year} and {quarter} path segments.
func parseQuarterPath(r *http.Request) (core.Quarter, int, error) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil || year < 1 {
		return "", 0, fmt.Errorf("%w: year %q", errBadRequest, r.PathValue("year"))
	}
	quarter, err := core.ParseQuarter(r.PathValue("quarter"))
	if err != nil {
		return "", 0, err
	}
	return quarter, year, nil
}

type monthAmountJSON struct {
	Month  string    `json:"month"`
	Amount moneyJSON `json:"amount"`
	Count  int       `json:"count"`
}

type quarterSummaryJSON struct {
	Quarter          core.Quarter         `json:"quarter"`
	Year             int                  `json:"year"`
	StartDate        string               `json:"startDate"`
	EndDate          string               `json:"endDate"`
	TotalSpent       moneyJSON            `json:"totalSpent"`
	TransportCost    moneyJSON            `json:"transportCost"`
	TransportSavings moneyJSON            `json:"transportSavings"`
	ExpenseCount     int                  `json:"expenseCount"`
	TripCount        int                  `json:"tripCount"`
	TimeWorked       string               `json:"timeWorked"`
	ByCategory       []categoryAmountJSON `json:"byCategory"`
	ByMonth          []monthAmountJSON    `json:"byMonth"`
}

func toQuarterSummaryJSON(s core.QuarterSummary) quarterSummaryJSON {
	out := quarterSummaryJSON{
		Quarter:          s.Quarter,
		Year:             s.Year,
		StartDate:        s.StartDate.String(),
		EndDate:          s.EndDate.String(),
		TotalSpent:       toMoneyJSON(s.TotalSpent),
		TransportCost:    toMoneyJSON(s.TransportCost),
		TransportSavings: toMoneyJSON(s.TransportSavings),
		ExpenseCount:     s.ExpenseCount,
		TripCount:        s.TripCount,
		TimeWorked:       s.TimeWorked,
		ByCategory:       []categoryAmountJSON{},
		ByMonth:          []monthAmountJSON{},
	}
	for _, ca := range s.CategoriesWithData() {
		out.ByCategory = append(out.ByCategory, categoryAmountJSON{
			Category: ca.Category,
			Name:     ca.Category.Display(),
			Amount:   toMoneyJSON(ca.Amount),
		})
	}
	for _, key := range s.Months() {
		month := s.ByMonth[key]
		out.ByMonth = append(out.ByMonth, monthAmountJSON{
			Month:  key,
			Amount: toMoneyJSON(month.Total),
			Count:  month.Count,
		})
	}
	return out
}

func (s *Server) handleQuarterSummary(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, toQuarterSummaryJSON(summary))
}
