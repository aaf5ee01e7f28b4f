package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"kuripot/internal/core"
	"kuripot/internal/kv"
	"kuripot/internal/kv/memory"
	"kuripot/internal/store"
)

// keyFailKV fails writes to one key, letting everything else through.
type keyFailKV struct {
	*memory.Store
	failKey string
}

func (f *keyFailKV) Put(ctx context.Context, key string, value []byte) error {
	if key == f.failKey {
		return fmt.Errorf("write %s: connection lost", key)
	}
	return f.Store.Put(ctx, key, value)
}

func newService(t *testing.T, backend kv.Store) (*TripService, *store.TripStore, *store.ExpenseStore) {
	t.Helper()
	ctx := context.Background()
	trips, err := store.NewTripStore(ctx, backend)
	if err != nil {
		t.Fatalf("NewTripStore: %v", err)
	}
	expenses, err := store.NewExpenseStore(ctx, backend)
	if err != nil {
		t.Fatalf("NewExpenseStore: %v", err)
	}
	return NewTripService(trips, expenses), trips, expenses
}

func TestSaveTripMirrorsExpense(t *testing.T) {
	svc, trips, expenses := newService(t, memory.New())
	ctx := context.Background()
	day := core.NewDate(2025, 12, 6)

	trip, expense, err := svc.SaveTrip(ctx, day, "Baclaran", "EDSA", 2, 50)
	if err != nil {
		t.Fatalf("SaveTrip: %v", err)
	}

	if trip.TotalCost.Cents != 1772 {
		t.Fatalf("trip total: expected 1772, got %d", trip.TotalCost.Cents)
	}
	if expense.Category != core.CategoryTransport {
		t.Fatalf("expense category: %q", expense.Category)
	}
	if expense.Amount.Cents != trip.TotalCost.Cents {
		t.Fatalf("expense amount %d != trip total %d", expense.Amount.Cents, trip.TotalCost.Cents)
	}
	if expense.Description != "LRT: Baclaran to EDSA (2 trips)" {
		t.Fatalf("expense description: %q", expense.Description)
	}
	if !expense.Date.Equal(day.Time) {
		t.Fatalf("expense date: %s", expense.Date)
	}

	if got := len(trips.All()); got != 1 {
		t.Fatalf("expected 1 trip, got %d", got)
	}
	if got := len(expenses.All()); got != 1 {
		t.Fatalf("expected 1 expense, got %d", got)
	}
}

func TestSaveTripRejectsBadInput(t *testing.T) {
	svc, _, _ := newService(t, memory.New())
	ctx := context.Background()
	day := core.NewDate(2025, 12, 6)

	if _, _, err := svc.SaveTrip(ctx, day, "Baclaran", "EDSA", 0, 50); !errors.Is(err, core.ErrInvalidTripCount) {
		t.Fatalf("expected ErrInvalidTripCount, got %v", err)
	}
	if _, _, err := svc.SaveTrip(ctx, day, "Baclaran", "EDSA", 1, 150); !errors.Is(err, core.ErrInvalidDiscount) {
		t.Fatalf("expected ErrInvalidDiscount, got %v", err)
	}
	if _, _, err := svc.SaveTrip(ctx, core.Date{}, "Baclaran", "EDSA", 1, 50); !errors.Is(err, core.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestSaveTripRollsBackOnExpenseFailure(t *testing.T) {
	backend := &keyFailKV{Store: memory.New(), failKey: kv.KeyExpenses}
	svc, trips, expenses := newService(t, backend)
	ctx := context.Background()

	_, _, err := svc.SaveTrip(ctx, core.NewDate(2025, 12, 6), "Baclaran", "EDSA", 1, 50)
	if err == nil {
		t.Fatal("expected error when expense write fails")
	}
	if got := len(trips.All()); got != 0 {
		t.Fatalf("trip must be rolled back, got %d records", got)
	}
	if got := len(expenses.All()); got != 0 {
		t.Fatalf("no expense must remain, got %d records", got)
	}
}
