package http

import (
	"net/http"

	"kuripot/internal/core"
	"kuripot/internal/store"
)

type expenseRequest struct {
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	start, end, err := parseDateRange(query)
	if err != nil {
		writeError(w, err)
		return
	}

	records := s.expenses.FilterByDateRange(start, end)
	if raw := query.Get("category"); raw != "" {
		category := core.ParseCategory(raw)
		filtered := records[:0]
		for _, rec := range records {
			if rec.Category == category {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}
	if records == nil {
		records = []core.ExpenseRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, err)
		return
	}

	rec, err := s.expenses.Add(r.Context(), core.ExpenseRecord{
		Category:    core.ParseCategory(req.Category),
		Amount:      amount,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

type expensePatchRequest struct {
	Category    *string `json:"category"`
	Amount      *string `json:"amount"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expensePatchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	var patch store.ExpensePatch
	if req.Category != nil {
		c := core.ParseCategory(*req.Category)
		patch.Category = &c
	}
	if req.Amount != nil {
		amount, err := parseAmount(*req.Amount)
		if err != nil {
			writeError(w, err)
			return
		}
		patch.Amount = &amount
	}
	if req.Date != nil {
		date, err := core.ParseDate(*req.Date)
		if err != nil {
			writeError(w, err)
			return
		}
		patch.Date = &date
	}
	patch.Description = req.Description

	rec, err := s.expenses.Update(r.Context(), r.PathValue("id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.expenses.Remove(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
