package budget

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"kuripot/internal/core"
	"kuripot/internal/kv"
	"kuripot/internal/store"
)

// Default quarterly target created on first run: three months of the
// default period amount, placed on the quarter of first run.
const defaultQuarterAmountCents = 3 * defaultPeriodAmountCents

// BuildQuarterSummary aggregates one calendar quarter across the record
// snapshots. Records are filtered to the quarter's inclusive window; the
// per-month breakdown keys months as "YYYY-MM".
func BuildQuarterSummary(
	quarter core.Quarter,
	year int,
	expenses []core.ExpenseRecord,
	trips []core.TripRecord,
	timeLogs []core.TimeLogRecord,
) (core.QuarterSummary, error) {
	start, end, err := quarter.Dates(year)
	if err != nil {
		return core.QuarterSummary{}, err
	}

	s := core.QuarterSummary{
		Quarter:    quarter,
		Year:       year,
		StartDate:  start,
		EndDate:    end,
		ByCategory: make(map[core.Category]core.Money),
		ByMonth:    make(map[string]core.MonthTotal),
	}

	for _, e := range expenses {
		if !e.Date.Within(start, end) {
			continue
		}
		s.ExpenseCount++
		s.TotalSpent = s.TotalSpent.Add(e.Amount)
		s.ByCategory[e.Category] = s.ByCategory[e.Category].Add(e.Amount)

		key := e.Date.Format("2006-01")
		month := s.ByMonth[key]
		month.Total = month.Total.Add(e.Amount)
		month.Count++
		s.ByMonth[key] = month
	}

	for _, t := range trips {
		if !t.Date.Within(start, end) {
			continue
		}
		s.TripCount++
		s.TransportCost = s.TransportCost.Add(t.TotalCost)
		s.TransportSavings = s.TransportSavings.Add(t.TotalSavings)
	}

	var inRangeLogs []core.TimeLogRecord
	for _, l := range timeLogs {
		if l.Date.Within(start, end) {
			inRangeLogs = append(inRangeLogs, l)
		}
	}
	s.TimeWorked = store.TotalWorked(inRangeLogs)

	return s, nil
}

// CreateQuarterlyBudget validates and persists a quarterly spending target.
// The date window is always derived from the quarter and year.
func (m *Manager) CreateQuarterlyBudget(ctx context.Context, name string, quarter core.Quarter, year int, amount core.Money) (core.QuarterlyBudget, error) {
	start, end, err := quarter.Dates(year)
	if err != nil {
		return core.QuarterlyBudget{}, err
	}
	b := core.QuarterlyBudget{
		ID:        uuid.NewString(),
		Name:      name,
		Quarter:   quarter,
		Year:      year,
		Amount:    amount,
		StartDate: start,
		EndDate:   end,
		CreatedAt: time.Now(),
	}
	if err := b.Validate(); err != nil {
		return core.QuarterlyBudget{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.quarterly = append(m.quarterly, b)
	if err := m.saveQuarterly(ctx); err != nil {
		m.quarterly = m.quarterly[:len(m.quarterly)-1]
		return core.QuarterlyBudget{}, err
	}

	slog.InfoContext(ctx, "Quarterly budget created",
		"id", b.ID, "quarter", string(b.Quarter), "year", b.Year, "amount_cents", b.Amount.Cents)
	return b, nil
}

// QuarterlyBudgets returns the quarterly targets in creation order.
func (m *Manager) QuarterlyBudgets() []core.QuarterlyBudget {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.QuarterlyBudget(nil), m.quarterly...)
}

// DeleteQuarterlyBudget permanently removes a quarterly target.
func (m *Manager) DeleteQuarterlyBudget(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := -1
	for j, b := range m.quarterly {
		if b.ID == id {
			i = j
			break
		}
	}
	if i < 0 {
		return fmt.Errorf("quarterly budget %s: %w", id, core.ErrNotFound)
	}

	prev := m.quarterly
	m.quarterly = append(append([]core.QuarterlyBudget(nil), m.quarterly[:i]...), m.quarterly[i+1:]...)
	if err := m.saveQuarterly(ctx); err != nil {
		m.quarterly = prev
		return err
	}
	return nil
}

// LoadQuarterSummary aggregates the quarter against the current record
// snapshots.
func (m *Manager) LoadQuarterSummary(quarter core.Quarter, year int) (core.QuarterSummary, error) {
	return BuildQuarterSummary(quarter, year, m.expenses.All(), m.trips.All(), m.timeLogs.All())
}

func (m *Manager) seedDefaultQuarter(ctx context.Context) error {
	quarter, year := core.QuarterOf(time.Now())
	start, end, err := quarter.Dates(year)
	if err != nil {
		return err
	}
	seed := core.QuarterlyBudget{
		ID:        uuid.NewString(),
		Name:      fmt.Sprintf("%s %d Budget", quarter, year),
		Quarter:   quarter,
		Year:      year,
		Amount:    core.Money{Cents: defaultQuarterAmountCents},
		StartDate: start,
		EndDate:   end,
		CreatedAt: time.Now(),
	}
	m.quarterly = append(m.quarterly, seed)
	if err := m.saveQuarterly(ctx); err != nil {
		m.quarterly = nil
		return err
	}
	slog.InfoContext(ctx, "Seeded default quarterly budget",
		"id", seed.ID, "quarter", string(seed.Quarter), "year", seed.Year)
	return nil
}

func (m *Manager) saveQuarterly(ctx context.Context) error {
	if m.quarterly == nil {
		m.quarterly = []core.QuarterlyBudget{}
	}
	raw, err := json.Marshal(m.quarterly)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kv.KeyQuarterlyBudget, err)
	}
	if err := m.kv.Put(ctx, kv.KeyQuarterlyBudget, raw); err != nil {
		return fmt.Errorf("save %s: %w", kv.KeyQuarterlyBudget, err)
	}
	return nil
}

func loadQuarterly(ctx context.Context, s kv.Store) ([]core.QuarterlyBudget, error) {
	raw, ok, err := s.Get(ctx, kv.KeyQuarterlyBudget)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", kv.KeyQuarterlyBudget, err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var budgets []core.QuarterlyBudget
	if err := json.Unmarshal(raw, &budgets); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kv.KeyQuarterlyBudget, err)
	}
	return budgets, nil
}
