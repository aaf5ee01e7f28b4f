package budget

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"kuripot/internal/core"
	"kuripot/internal/kv"
	"kuripot/internal/store"
)

// Default period created on first run when no active period exists.
const (
	defaultPeriodName        = "1st Cut Off Budget"
	defaultPeriodDescription = "Budget for 1st cut off period"
	defaultPeriodAmountCents = 150000
	defaultPeriodDays        = 10
)

// Manager owns the budget period lifecycle: the active list and the
// append-only archive, both persisted independently. Archived periods are
// history; they are never re-activated but remain loadable for reporting.
type Manager struct {
	mu       sync.Mutex
	kv       kv.Store
	expenses *store.ExpenseStore
	trips    *store.TripStore
	timeLogs *store.TimeLogStore

	active    []core.BudgetPeriod
	archived  []core.BudgetPeriod
	quarterly []core.QuarterlyBudget
}

func NewManager(ctx context.Context, s kv.Store, expenses *store.ExpenseStore, trips *store.TripStore, timeLogs *store.TimeLogStore) (*Manager, error) {
	m := &Manager{kv: s, expenses: expenses, trips: trips, timeLogs: timeLogs}

	var err error
	if m.active, err = loadPeriods(ctx, s, kv.KeyNamedBudgets); err != nil {
		return nil, err
	}
	if m.archived, err = loadPeriods(ctx, s, kv.KeyArchivedBudgets); err != nil {
		return nil, err
	}
	if m.quarterly, err = loadQuarterly(ctx, s); err != nil {
		return nil, err
	}

	if len(m.active) == 0 {
		if err := m.seedDefault(ctx); err != nil {
			return nil, err
		}
	}
	if len(m.quarterly) == 0 {
		if err := m.seedDefaultQuarter(ctx); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Manager) seedDefault(ctx context.Context) error {
	now := time.Now()
	start := core.DateOf(now)
	seed := core.BudgetPeriod{
		ID:           uuid.NewString(),
		Name:         defaultPeriodName,
		Description:  defaultPeriodDescription,
		Amount:       core.Money{Cents: defaultPeriodAmountCents},
		StartDate:    start,
		EndDate:      start.AddDays(defaultPeriodDays),
		DurationDays: defaultPeriodDays,
		Status:       core.StatusActive,
		CreatedAt:    now,
	}
	m.active = append(m.active, seed)
	if err := m.saveActive(ctx); err != nil {
		m.active = nil
		return err
	}
	slog.InfoContext(ctx, "Seeded default budget period",
		"id", seed.ID, "start", seed.StartDate.String(), "days", seed.DurationDays)
	return nil
}

// Create validates and persists a new active period. The end date is always
// derived as start plus duration.
func (m *Manager) Create(ctx context.Context, name, description string, amount core.Money, start core.Date, durationDays int) (core.BudgetPeriod, error) {
	period := core.BudgetPeriod{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  description,
		Amount:       amount,
		StartDate:    start,
		EndDate:      start.AddDays(durationDays),
		DurationDays: durationDays,
		Status:       core.StatusActive,
		CreatedAt:    time.Now(),
	}
	if err := period.Validate(); err != nil {
		return core.BudgetPeriod{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = append(m.active, period)
	if err := m.saveActive(ctx); err != nil {
		m.active = m.active[:len(m.active)-1]
		return core.BudgetPeriod{}, err
	}

	slog.InfoContext(ctx, "Budget period created",
		"id", period.ID,
		"name", period.Name,
		"amount_cents", period.Amount.Cents,
		"start", period.StartDate.String(),
		"days", period.DurationDays)
	return period, nil
}

// Archive moves an active period to the archive list. Archiving an id that
// is not in the active list fails with ErrNotFound, including a second
// archive of the same period.
func (m *Manager) Archive(ctx context.Context, id string) (core.BudgetPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := indexOf(m.active, id)
	if i < 0 {
		return core.BudgetPeriod{}, fmt.Errorf("budget period %s: %w", id, core.ErrNotFound)
	}

	period := m.active[i]
	period.Status = core.StatusArchived
	period.ArchivedAt = time.Now()

	prevActive := m.active
	prevArchived := m.archived
	m.active = append(append([]core.BudgetPeriod(nil), m.active[:i]...), m.active[i+1:]...)
	m.archived = append(m.archived, period)

	if err := m.saveActive(ctx); err != nil {
		m.active, m.archived = prevActive, prevArchived
		return core.BudgetPeriod{}, err
	}
	if err := m.saveArchived(ctx); err != nil {
		m.active, m.archived = prevActive, prevArchived
		if saveErr := m.saveActive(ctx); saveErr != nil {
			slog.ErrorContext(ctx, "Failed to restore active periods after archive rollback", "error", saveErr)
		}
		return core.BudgetPeriod{}, err
	}

	slog.InfoContext(ctx, "Budget period archived", "id", period.ID, "name", period.Name)
	return period, nil
}

// Delete permanently removes an active period without archiving it.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := indexOf(m.active, id)
	if i < 0 {
		return fmt.Errorf("budget period %s: %w", id, core.ErrNotFound)
	}

	removed := m.active[i]
	prev := m.active
	m.active = append(append([]core.BudgetPeriod(nil), m.active[:i]...), m.active[i+1:]...)
	if err := m.saveActive(ctx); err != nil {
		m.active = prev
		return err
	}

	slog.InfoContext(ctx, "Budget period deleted", "id", removed.ID, "name", removed.Name)
	return nil
}

// Get finds a period by id in the active list, then the archive.
func (m *Manager) Get(id string) (core.BudgetPeriod, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := indexOf(m.active, id); i >= 0 {
		return m.active[i], nil
	}
	if i := indexOf(m.archived, id); i >= 0 {
		return m.archived[i], nil
	}
	return core.BudgetPeriod{}, fmt.Errorf("budget period %s: %w", id, core.ErrNotFound)
}

// Active returns the active periods in creation order.
func (m *Manager) Active() []core.BudgetPeriod {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.BudgetPeriod(nil), m.active...)
}

// Archived returns the archived periods in archival order.
func (m *Manager) Archived() []core.BudgetPeriod {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]core.BudgetPeriod(nil), m.archived...)
}

// LoadSummary builds the summary for a period against the current record
// snapshots. Archived periods remain loadable for historical reporting.
func (m *Manager) LoadSummary(id string, reference time.Time) (core.BudgetSummary, error) {
	period, err := m.Get(id)
	if err != nil {
		return core.BudgetSummary{}, err
	}
	return BuildSummary(period, m.expenses.All(), m.trips.All(), m.timeLogs.All(), reference), nil
}

func (m *Manager) saveActive(ctx context.Context) error {
	return savePeriods(ctx, m.kv, kv.KeyNamedBudgets, m.active)
}

func (m *Manager) saveArchived(ctx context.Context) error {
	return savePeriods(ctx, m.kv, kv.KeyArchivedBudgets, m.archived)
}

func indexOf(periods []core.BudgetPeriod, id string) int {
	for i, p := range periods {
		if p.ID == id {
			return i
		}
	}
	return -1
}
