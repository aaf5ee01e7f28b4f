// Package budget binds user-defined spending periods to the records falling
// inside their date windows and derives summary statistics from them.
package budget

import (
	"time"

	"kuripot/internal/core"
	"kuripot/internal/store"
)

// BuildSummary derives the full summary for a period from record snapshots.
// It is a pure function of its inputs: the reference instant is supplied by
// the caller, never read from the wall clock, so identical inputs always
// produce identical output.
//
// Records are filtered to [period.StartDate, period.EndDate] inclusive on
// both ends. Remaining may be negative; overspend is a displayable state.
func BuildSummary(
	period core.BudgetPeriod,
	expenses []core.ExpenseRecord,
	trips []core.TripRecord,
	timeLogs []core.TimeLogRecord,
	reference time.Time,
) core.BudgetSummary {
	s := core.BudgetSummary{
		Period:     period,
		ByCategory: make(map[core.Category]core.Money),
		ByDay:      make(map[string]core.Money),
	}

	var inRangeLogs []core.TimeLogRecord

	for _, e := range expenses {
		if !e.Date.Within(period.StartDate, period.EndDate) {
			continue
		}
		s.ExpenseCount++
		s.TotalSpent = s.TotalSpent.Add(e.Amount)
		s.ByCategory[e.Category] = s.ByCategory[e.Category].Add(e.Amount)
		s.ByDay[e.Date.String()] = s.ByDay[e.Date.String()].Add(e.Amount)
	}

	for _, t := range trips {
		if !t.Date.Within(period.StartDate, period.EndDate) {
			continue
		}
		s.TripCount++
		s.TransportCost = s.TransportCost.Add(t.TotalCost)
		s.TransportSavings = s.TransportSavings.Add(t.TotalSavings)
	}

	for _, l := range timeLogs {
		if l.Date.Within(period.StartDate, period.EndDate) {
			inRangeLogs = append(inRangeLogs, l)
		}
	}
	s.TimeWorked = store.TotalWorked(inRangeLogs)

	s.Remaining = period.Amount.Sub(s.TotalSpent)

	// Elapsed days floor at 1 so a period starting today still has a defined
	// daily pace.
	s.DaysElapsed = ceilDays(reference.Sub(period.StartDate.Time))
	if s.DaysElapsed < 1 {
		s.DaysElapsed = 1
	}
	s.DaysLeft = ceilDays(period.EndDate.Time.Sub(reference))
	if s.DaysLeft < 0 {
		s.DaysLeft = 0
	}
	s.AverageDaily = divideRound(s.TotalSpent, s.DaysElapsed)

	return s
}

// ceilDays rounds a duration up to whole days. Negative durations round
// toward zero, which is the ceiling for them as well.
func ceilDays(d time.Duration) int {
	seconds := int64(d / time.Second)
	days := seconds / 86400
	if seconds%86400 > 0 {
		days++
	}
	return int(days)
}

// divideRound divides an amount by a day count with half-up rounding.
func divideRound(m core.Money, days int) core.Money {
	if days == 0 {
		return core.Money{}
	}
	n := int64(days)
	cents := m.Cents / n
	if (m.Cents%n)*2 >= n {
		cents++
	}
	return core.Money{Cents: cents}
}
