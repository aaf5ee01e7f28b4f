package budget

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"kuripot/internal/core"
	"kuripot/internal/kv"
)

// Legacy simple mode: a single monthly amount plus one period-like config
// blob, predating named periods. Both survive as persisted keys and feed
// the whole-history dashboard.

// Dashboard is the simple-mode overview across all recorded expenses,
// unfiltered by period.
type Dashboard struct {
	MonthlyBudget   core.Money
	TotalSpent      core.Money
	Remaining       core.Money
	DiscountSavings core.Money
	ByCategory      map[core.Category]core.Money
}

// MonthlyBudget reads the simple-mode budget amount. ok is false when it
// was never configured.
func (m *Manager) MonthlyBudget(ctx context.Context) (core.Money, bool, error) {
	raw, ok, err := m.kv.Get(ctx, kv.KeyMonthlyBudget)
	if err != nil || !ok {
		return core.Money{}, false, err
	}
	cents, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return core.Money{}, false, fmt.Errorf("decode %s: %w", kv.KeyMonthlyBudget, err)
	}
	return core.Money{Cents: cents}, true, nil
}

func (m *Manager) SetMonthlyBudget(ctx context.Context, amount core.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	return m.kv.Put(ctx, kv.KeyMonthlyBudget, []byte(strconv.FormatInt(amount.Cents, 10)))
}

// BudgetConfig reads the simple-mode period configuration.
func (m *Manager) BudgetConfig(ctx context.Context) (core.BudgetPeriod, bool, error) {
	raw, ok, err := m.kv.Get(ctx, kv.KeyBudgetConfig)
	if err != nil || !ok {
		return core.BudgetPeriod{}, false, err
	}
	var cfg core.BudgetPeriod
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return core.BudgetPeriod{}, false, fmt.Errorf("decode %s: %w", kv.KeyBudgetConfig, err)
	}
	return cfg, true, nil
}

func (m *Manager) SetBudgetConfig(ctx context.Context, cfg core.BudgetPeriod) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", kv.KeyBudgetConfig, err)
	}
	return m.kv.Put(ctx, kv.KeyBudgetConfig, raw)
}

// BuildDashboard computes the simple-mode overview from every recorded
// expense and trip, regardless of date.
func (m *Manager) BuildDashboard(ctx context.Context) (Dashboard, error) {
	monthly, _, err := m.MonthlyBudget(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		MonthlyBudget: monthly,
		ByCategory:    make(map[core.Category]core.Money),
	}
	for _, e := range m.expenses.All() {
		d.TotalSpent = d.TotalSpent.Add(e.Amount)
		d.ByCategory[e.Category] = d.ByCategory[e.Category].Add(e.Amount)
	}
	d.Remaining = monthly.Sub(d.TotalSpent)
	d.DiscountSavings = m.trips.TotalSavings()
	return d, nil
}
