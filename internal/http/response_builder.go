package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"kuripot/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps domain errors onto HTTP statuses: missing records are 404,
// validation failures are 400, everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errBadRequest), isValidationError(err):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidAmount,
		core.ErrInvalidDate,
		core.ErrInvalidDuration,
		core.ErrInvalidDiscount,
		core.ErrInvalidTime,
		core.ErrInvalidTripCount,
		core.ErrInvalidQuarter,
		core.ErrInvalidRecord,
		core.ErrEmptyName,
		core.ErrEmptyDescription,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// moneyJSON renders an amount both ways: integer cents for arithmetic-safe
// clients and a formatted decimal string for display.
type moneyJSON struct {
	Cents   int64  `json:"cents"`
	Display string `json:"display"`
}

func toMoneyJSON(m core.Money) moneyJSON {
	return moneyJSON{Cents: m.Cents, Display: m.String()}
}

type summaryJSON struct {
	Period           core.BudgetPeriod    `json:"period"`
	TotalSpent       moneyJSON            `json:"totalSpent"`
	Remaining        moneyJSON            `json:"remaining"`
	TransportCost    moneyJSON            `json:"transportCost"`
	TransportSavings moneyJSON            `json:"transportSavings"`
	DaysElapsed      int                  `json:"daysElapsed"`
	DaysLeft         int                  `json:"daysLeft"`
	AverageDaily     moneyJSON            `json:"averageDailySpend"`
	ExpenseCount     int                  `json:"expenseCount"`
	TripCount        int                  `json:"tripCount"`
	TimeWorked       string               `json:"timeWorked"`
	ByCategory       []categoryAmountJSON `json:"byCategory"`
	ByDay            []dayAmountJSON      `json:"byDay"`
}

type categoryAmountJSON struct {
	Category core.Category `json:"category"`
	Name     string        `json:"name"`
	Amount   moneyJSON     `json:"amount"`
}

type dayAmountJSON struct {
	Date   string    `json:"date"`
	Amount moneyJSON `json:"amount"`
}

func toSummaryJSON(s core.BudgetSummary) summaryJSON {
	out := summaryJSON{
		Period:           s.Period,
		TotalSpent:       toMoneyJSON(s.TotalSpent),
		Remaining:        toMoneyJSON(s.Remaining),
		TransportCost:    toMoneyJSON(s.TransportCost),
		TransportSavings: toMoneyJSON(s.TransportSavings),
		DaysElapsed:      s.DaysElapsed,
		DaysLeft:         s.DaysLeft,
		AverageDaily:     toMoneyJSON(s.AverageDaily),
		ExpenseCount:     s.ExpenseCount,
		TripCount:        s.TripCount,
		TimeWorked:       s.TimeWorked,
		ByCategory:       []categoryAmountJSON{},
		ByDay:            []dayAmountJSON{},
	}
	for _, ca := range s.CategoriesWithData() {
		out.ByCategory = append(out.ByCategory, categoryAmountJSON{
			Category: ca.Category,
			Name:     ca.Category.Display(),
			Amount:   toMoneyJSON(ca.Amount),
		})
	}
	for _, da := range s.Days() {
		out.ByDay = append(out.ByDay, dayAmountJSON{
			Date:   da.Date.String(),
			Amount: toMoneyJSON(da.Amount),
		})
	}
	return out
}
