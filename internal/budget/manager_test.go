package budget

import (
	"context"
	"errors"
	"testing"
	"time"

	"kuripot/internal/core"
	"kuripot/internal/kv"
	"kuripot/internal/kv/memory"
	"kuripot/internal/store"
)

func newManager(t *testing.T) (*Manager, kv.Store) {
	t.Helper()
	ctx := context.Background()
	backend := memory.New()

	expenses, err := store.NewExpenseStore(ctx, backend)
	if err != nil {
		t.Fatalf("NewExpenseStore: %v", err)
	}
	trips, err := store.NewTripStore(ctx, backend)
	if err != nil {
		t.Fatalf("NewTripStore: %v", err)
	}
	timeLogs, err := store.NewTimeLogStore(ctx, backend)
	if err != nil {
		t.Fatalf("NewTimeLogStore: %v", err)
	}
	m, err := NewManager(ctx, backend, expenses, trips, timeLogs)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, backend
}

func TestManagerSeedsDefaultPeriod(t *testing.T) {
	m, _ := newManager(t)

	active := m.Active()
	if len(active) != 1 {
		t.Fatalf("expected 1 seeded period, got %d", len(active))
	}
	seed := active[0]
	if seed.Name != "1st Cut Off Budget" {
		t.Fatalf("seed name: %q", seed.Name)
	}
	if seed.Amount.Cents != 150000 {
		t.Fatalf("seed amount: %d", seed.Amount.Cents)
	}
	if seed.DurationDays != 10 {
		t.Fatalf("seed duration: %d", seed.DurationDays)
	}
	if !seed.EndDate.Equal(seed.StartDate.AddDays(10).Time) {
		t.Fatalf("seed end date mismatch: %s vs %s", seed.EndDate, seed.StartDate)
	}
}

func TestManagerCreate(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	period, err := m.Create(ctx, "December Budget", "Holiday spending",
		core.Money{Cents: 500000}, core.NewDate(2025, 12, 1), 15)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if period.ID == "" {
		t.Fatal("Create must assign an id")
	}
	if !period.EndDate.Equal(core.NewDate(2025, 12, 16).Time) {
		t.Fatalf("end date: got %s", period.EndDate)
	}
	if period.Status != core.StatusActive {
		t.Fatalf("status: %q", period.Status)
	}

	if _, err := m.Create(ctx, "", "x", core.Money{Cents: 100}, core.NewDate(2025, 12, 1), 5); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestManagerArchive(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	period, err := m.Create(ctx, "December Budget", "Holiday spending",
		core.Money{Cents: 500000}, core.NewDate(2025, 12, 1), 15)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	archived, err := m.Archive(ctx, period.ID)
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if archived.Status != core.StatusArchived {
		t.Fatalf("status: %q", archived.Status)
	}
	if archived.ArchivedAt.IsZero() {
		t.Fatal("archive must stamp ArchivedAt")
	}

	// Archiving again fails: the period is no longer in the active list.
	if _, err := m.Archive(ctx, period.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("second archive: expected ErrNotFound, got %v", err)
	}

	// Still retrievable for reporting.
	got, err := m.Get(period.ID)
	if err != nil {
		t.Fatalf("Get archived: %v", err)
	}
	if got.Status != core.StatusArchived {
		t.Fatalf("archived period status: %q", got.Status)
	}
}

func TestManagerDelete(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	period, err := m.Create(ctx, "Scratch", "To be removed",
		core.Money{Cents: 10000}, core.NewDate(2025, 12, 1), 5)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := m.Delete(ctx, period.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := m.Get(period.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("deleted period still found: %v", err)
	}

	// Archived periods cannot be deleted.
	other, err := m.Create(ctx, "Keeper", "Archived history",
		core.Money{Cents: 10000}, core.NewDate(2025, 12, 1), 5)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := m.Archive(ctx, other.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if err := m.Delete(ctx, other.ID); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("delete of archived period: expected ErrNotFound, got %v", err)
	}
}

func TestManagerPersistsAcrossReload(t *testing.T) {
	m, backend := newManager(t)
	ctx := context.Background()

	period, err := m.Create(ctx, "December Budget", "Holiday spending",
		core.Money{Cents: 500000}, core.NewDate(2025, 12, 1), 15)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := m.Archive(ctx, period.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	expenses, _ := store.NewExpenseStore(ctx, backend)
	trips, _ := store.NewTripStore(ctx, backend)
	timeLogs, _ := store.NewTimeLogStore(ctx, backend)
	reloaded, err := NewManager(ctx, backend, expenses, trips, timeLogs)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	if got := len(reloaded.Archived()); got != 1 {
		t.Fatalf("expected 1 archived period after reload, got %d", got)
	}
	// The seeded default survives; no reseeding happened.
	if got := len(reloaded.Active()); got != 1 {
		t.Fatalf("expected 1 active period after reload, got %d", got)
	}
}

func TestManagerLoadSummary(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	period, err := m.Create(ctx, "December Budget", "Holiday spending",
		core.Money{Cents: 150000}, core.NewDate(2025, 12, 5), 10)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := m.expenses.Add(ctx, core.ExpenseRecord{
		Category: core.CategoryFood,
		Amount:   core.Money{Cents: 32000},
		Date:     core.NewDate(2025, 12, 6),
	}); err != nil {
		t.Fatalf("Add expense: %v", err)
	}

	s, err := m.LoadSummary(period.ID, time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("LoadSummary: %v", err)
	}
	if s.TotalSpent.Cents != 32000 || s.Remaining.Cents != 118000 {
		t.Fatalf("summary totals: spent %d, remaining %d", s.TotalSpent.Cents, s.Remaining.Cents)
	}

	if _, err := m.LoadSummary("missing", time.Now()); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMonthlyBudgetRoundTrip(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	if _, ok, err := m.MonthlyBudget(ctx); err != nil || ok {
		t.Fatalf("unset monthly budget: ok=%v err=%v", ok, err)
	}

	if err := m.SetMonthlyBudget(ctx, core.Money{Cents: 300000}); err != nil {
		t.Fatalf("SetMonthlyBudget: %v", err)
	}
	got, ok, err := m.MonthlyBudget(ctx)
	if err != nil || !ok {
		t.Fatalf("MonthlyBudget: ok=%v err=%v", ok, err)
	}
	if got.Cents != 300000 {
		t.Fatalf("expected 300000, got %d", got.Cents)
	}

	if err := m.SetMonthlyBudget(ctx, core.Money{}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestBudgetConfigRoundTrip(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	if _, ok, err := m.BudgetConfig(ctx); err != nil || ok {
		t.Fatalf("unset config: ok=%v err=%v", ok, err)
	}

	start := core.NewDate(2025, 12, 5)
	cfg := core.BudgetPeriod{
		Name:         "Simple Mode",
		Description:  "Single period config",
		Amount:       core.Money{Cents: 150000},
		StartDate:    start,
		EndDate:      start.AddDays(10),
		DurationDays: 10,
		Status:       core.StatusActive,
	}
	if err := m.SetBudgetConfig(ctx, cfg); err != nil {
		t.Fatalf("SetBudgetConfig: %v", err)
	}
	got, ok, err := m.BudgetConfig(ctx)
	if err != nil || !ok {
		t.Fatalf("BudgetConfig: ok=%v err=%v", ok, err)
	}
	if got.Name != cfg.Name || got.Amount.Cents != cfg.Amount.Cents || got.DurationDays != 10 {
		t.Fatalf("config mismatch: %+v", got)
	}
}

func TestBuildDashboard(t *testing.T) {
	m, _ := newManager(t)
	ctx := context.Background()

	if err := m.SetMonthlyBudget(ctx, core.Money{Cents: 300000}); err != nil {
		t.Fatalf("SetMonthlyBudget: %v", err)
	}
	if _, err := m.expenses.Add(ctx, core.ExpenseRecord{
		Category: core.CategoryFood,
		Amount:   core.Money{Cents: 32000},
		Date:     core.NewDate(2025, 12, 6),
	}); err != nil {
		t.Fatalf("Add expense: %v", err)
	}
	if _, err := m.expenses.Add(ctx, core.ExpenseRecord{
		Category: core.CategoryCoffee,
		Amount:   core.Money{Cents: 15000},
		Date:     core.NewDate(2025, 11, 1), // old record still counts
	}); err != nil {
		t.Fatalf("Add expense: %v", err)
	}

	d, err := m.BuildDashboard(ctx)
	if err != nil {
		t.Fatalf("BuildDashboard: %v", err)
	}
	if d.TotalSpent.Cents != 47000 {
		t.Fatalf("total spent: %d", d.TotalSpent.Cents)
	}
	if d.Remaining.Cents != 253000 {
		t.Fatalf("remaining: %d", d.Remaining.Cents)
	}
	if d.ByCategory[core.CategoryFood].Cents != 32000 {
		t.Fatalf("by category: %+v", d.ByCategory)
	}
}
