package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"kuripot/internal/core"
	"kuripot/internal/kv"
)

// ExpenseStore is the owner of all expense records.
type ExpenseStore struct {
	mu    sync.Mutex
	kv    kv.Store
	items []core.ExpenseRecord
}

// ExpensePatch carries the fields an update may change. Nil fields are
// left as they are.
type ExpensePatch struct {
	Category    *core.Category
	Amount      *core.Money
	Description *string
	Date        *core.Date
}

func NewExpenseStore(ctx context.Context, s kv.Store) (*ExpenseStore, error) {
	items, err := loadSlice[core.ExpenseRecord](ctx, s, kv.KeyExpenses)
	if err != nil {
		return nil, err
	}
	return &ExpenseStore{kv: s, items: items}, nil
}

// Add validates the record, assigns a fresh id and persists. The input id
// field is ignored.
func (s *ExpenseStore) Add(ctx context.Context, rec core.ExpenseRecord) (core.ExpenseRecord, error) {
	rec.ID = newID()
	rec.Category = core.ParseCategory(string(rec.Category))
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, rec)
	if err := saveSlice(ctx, s.kv, kv.KeyExpenses, s.items); err != nil {
		s.items = s.items[:len(s.items)-1]
		return core.ExpenseRecord{}, err
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", rec.ID,
		"category", rec.Category,
		"amount_cents", rec.Amount.Cents,
		"date", rec.Date.String())
	return rec, nil
}

func (s *ExpenseStore) Update(ctx context.Context, id string, patch ExpensePatch) (core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.ExpenseRecord{}, fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
	}

	updated := s.items[i]
	if patch.Category != nil {
		updated.Category = core.ParseCategory(string(*patch.Category))
	}
	if patch.Amount != nil {
		updated.Amount = *patch.Amount
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Date != nil {
		updated.Date = *patch.Date
	}
	if err := updated.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}

	prev := s.items[i]
	s.items[i] = updated
	if err := saveSlice(ctx, s.kv, kv.KeyExpenses, s.items); err != nil {
		s.items[i] = prev
		return core.ExpenseRecord{}, err
	}
	return updated, nil
}

func (s *ExpenseStore) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("expense %s: %w", id, core.ErrNotFound)
	}

	removed := s.items[i]
	s.items = append(s.items[:i], s.items[i+1:]...)
	if err := saveSlice(ctx, s.kv, kv.KeyExpenses, s.items); err != nil {
		s.items = append(s.items[:i], append([]core.ExpenseRecord{removed}, s.items[i:]...)...)
		return err
	}
	return nil
}

// All returns the records in insertion order.
func (s *ExpenseStore) All() []core.ExpenseRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.ExpenseRecord(nil), s.items...)
}

// FilterByDateRange returns records dated in [start, end] inclusive.
func (s *ExpenseStore) FilterByDateRange(start, end core.Date) []core.ExpenseRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.ExpenseRecord
	for _, rec := range s.items {
		if rec.Date.Within(start, end) {
			out = append(out, rec)
		}
	}
	return out
}

func (s *ExpenseStore) FilterByCategory(c core.Category) []core.ExpenseRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.ExpenseRecord
	for _, rec := range s.items {
		if rec.Category == c {
			out = append(out, rec)
		}
	}
	return out
}

func (s *ExpenseStore) indexOf(id string) int {
	for i, rec := range s.items {
		if rec.ID == id {
			return i
		}
	}
	return -1
}
