package budget

import (
	"reflect"
	"testing"
	"time"

	"kuripot/internal/core"
)

func testPeriod() core.BudgetPeriod {
	start := core.NewDate(2025, 12, 5)
	return core.BudgetPeriod{
		ID:           "p1",
		Name:         "1st Cut Off Budget",
		Description:  "Budget for 1st cut off period",
		Amount:       core.Money{Cents: 150000},
		StartDate:    start,
		EndDate:      start.AddDays(10),
		DurationDays: 10,
		Status:       core.StatusActive,
	}
}

func TestBuildSummaryBasics(t *testing.T) {
	period := testPeriod()
	expenses := []core.ExpenseRecord{
		{ID: "e1", Category: core.CategoryFood, Amount: core.Money{Cents: 32000}, Date: core.NewDate(2025, 12, 6)},
	}
	reference := time.Date(2025, 12, 7, 0, 0, 0, 0, time.UTC)

	s := BuildSummary(period, expenses, nil, nil, reference)

	if s.TotalSpent.Cents != 32000 {
		t.Fatalf("total spent: expected 32000, got %d", s.TotalSpent.Cents)
	}
	if s.Remaining.Cents != 118000 {
		t.Fatalf("remaining: expected 118000, got %d", s.Remaining.Cents)
	}
	if s.Remaining.String() != "1180.00" {
		t.Fatalf("remaining display: got %q", s.Remaining.String())
	}
	if s.ExpenseCount != 1 {
		t.Fatalf("expense count: got %d", s.ExpenseCount)
	}
	if s.DaysElapsed != 2 {
		t.Fatalf("days elapsed: expected 2, got %d", s.DaysElapsed)
	}
	if s.DaysLeft != 8 {
		t.Fatalf("days left: expected 8, got %d", s.DaysLeft)
	}
	if s.AverageDaily.Cents != 16000 {
		t.Fatalf("average daily: expected 16000, got %d", s.AverageDaily.Cents)
	}
	if s.ByCategory[core.CategoryFood].Cents != 32000 {
		t.Fatalf("by category: %+v", s.ByCategory)
	}
	if s.ByDay["2025-12-06"].Cents != 32000 {
		t.Fatalf("by day: %+v", s.ByDay)
	}
}

func TestBuildSummaryRangeBoundaries(t *testing.T) {
	period := testPeriod()
	expenses := []core.ExpenseRecord{
		{ID: "before", Amount: core.Money{Cents: 100}, Category: core.CategoryFood, Date: core.NewDate(2025, 12, 4)},
		{ID: "start", Amount: core.Money{Cents: 200}, Category: core.CategoryFood, Date: core.NewDate(2025, 12, 5)},
		{ID: "end", Amount: core.Money{Cents: 400}, Category: core.CategoryFood, Date: core.NewDate(2025, 12, 15)},
		{ID: "after", Amount: core.Money{Cents: 800}, Category: core.CategoryFood, Date: core.NewDate(2025, 12, 16)},
	}

	s := BuildSummary(period, expenses, nil, nil, period.EndDate.Time)
	if s.TotalSpent.Cents != 600 {
		t.Fatalf("inclusive bounds: expected 600, got %d", s.TotalSpent.Cents)
	}
	if s.ExpenseCount != 2 {
		t.Fatalf("expected 2 records in range, got %d", s.ExpenseCount)
	}
}

func TestBuildSummaryTripsAndTimeLogs(t *testing.T) {
	period := testPeriod()
	trips := []core.TripRecord{
		{ID: "t1", Date: core.NewDate(2025, 12, 6), TripCount: 2,
			TotalCost: core.Money{Cents: 1772}, TotalSavings: core.Money{Cents: 1772}},
		{ID: "t2", Date: core.NewDate(2025, 12, 20), TripCount: 1,
			TotalCost: core.Money{Cents: 886}, TotalSavings: core.Money{Cents: 886}},
	}
	timeLogs := []core.TimeLogRecord{
		{ID: "l1", Date: core.NewDate(2025, 12, 8), TimeIn: "08:00", TimeOut: "17:30"},
		{ID: "l2", Date: core.NewDate(2025, 12, 20), TimeIn: "08:00", TimeOut: "17:00"},
	}

	s := BuildSummary(period, nil, trips, timeLogs, period.EndDate.Time)
	if s.TripCount != 1 {
		t.Fatalf("out-of-range trip counted: %d", s.TripCount)
	}
	if s.TransportCost.Cents != 1772 || s.TransportSavings.Cents != 1772 {
		t.Fatalf("transport totals: %d / %d", s.TransportCost.Cents, s.TransportSavings.Cents)
	}
	if s.TimeWorked != "9h 30m" {
		t.Fatalf("time worked: expected 9h 30m, got %q", s.TimeWorked)
	}
}

func TestBuildSummaryOverspendGoesNegative(t *testing.T) {
	period := testPeriod()
	expenses := []core.ExpenseRecord{
		{ID: "e1", Category: core.CategoryOther, Amount: core.Money{Cents: 200000}, Date: core.NewDate(2025, 12, 6)},
	}

	s := BuildSummary(period, expenses, nil, nil, period.EndDate.Time)
	if s.Remaining.Cents != -50000 {
		t.Fatalf("overspend: expected -50000, got %d", s.Remaining.Cents)
	}
}

func TestBuildSummaryDayFloors(t *testing.T) {
	period := testPeriod()

	// Reference at the start instant: elapsed floors at 1.
	s := BuildSummary(period, nil, nil, nil, period.StartDate.Time)
	if s.DaysElapsed != 1 {
		t.Fatalf("elapsed at start: expected 1, got %d", s.DaysElapsed)
	}
	if s.DaysLeft != 10 {
		t.Fatalf("left at start: expected 10, got %d", s.DaysLeft)
	}

	// Reference past the end: days left floors at 0.
	s = BuildSummary(period, nil, nil, nil, period.EndDate.AddDays(5).Time)
	if s.DaysLeft != 0 {
		t.Fatalf("left after end: expected 0, got %d", s.DaysLeft)
	}
}

func TestBuildSummaryIsDeterministic(t *testing.T) {
	period := testPeriod()
	expenses := []core.ExpenseRecord{
		{ID: "e1", Category: core.CategoryFood, Amount: core.Money{Cents: 32000}, Date: core.NewDate(2025, 12, 6)},
		{ID: "e2", Category: core.CategoryCoffee, Amount: core.Money{Cents: 15000}, Date: core.NewDate(2025, 12, 7)},
	}
	reference := time.Date(2025, 12, 10, 12, 0, 0, 0, time.UTC)

	first := BuildSummary(period, expenses, nil, nil, reference)
	second := BuildSummary(period, expenses, nil, nil, reference)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must produce identical summaries")
	}
}
