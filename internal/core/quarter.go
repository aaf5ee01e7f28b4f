package core

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Quarter names a calendar quarter, Q1 through Q4.
type Quarter string

const (
	Q1 Quarter = "Q1"
	Q2 Quarter = "Q2"
	Q3 Quarter = "Q3"
	Q4 Quarter = "Q4"
)

// ParseQuarter maps a raw string onto the quarter set.
func ParseQuarter(s string) (Quarter, error) {
	q := Quarter(strings.ToUpper(strings.TrimSpace(s)))
	switch q {
	case Q1, Q2, Q3, Q4:
		return q, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidQuarter, s)
}

func (q Quarter) Validate() error {
	_, err := ParseQuarter(string(q))
	return err
}

// Dates returns the inclusive calendar window of the quarter in a year:
// Q1 Jan 1 to Mar 31, Q2 Apr 1 to Jun 30, Q3 Jul 1 to Sep 30, Q4 Oct 1 to
// Dec 31.
func (q Quarter) Dates(year int) (Date, Date, error) {
	switch q {
	case Q1:
		return NewDate(year, 1, 1), NewDate(year, 3, 31), nil
	case Q2:
		return NewDate(year, 4, 1), NewDate(year, 6, 30), nil
	case Q3:
		return NewDate(year, 7, 1), NewDate(year, 9, 30), nil
	case Q4:
		return NewDate(year, 10, 1), NewDate(year, 12, 31), nil
	}
	return Date{}, Date{}, fmt.Errorf("%w: %q", ErrInvalidQuarter, q)
}

// QuarterOf returns the quarter an instant falls in.
func QuarterOf(t time.Time) (Quarter, int) {
	switch {
	case t.Month() <= time.March:
		return Q1, t.Year()
	case t.Month() <= time.June:
		return Q2, t.Year()
	case t.Month() <= time.September:
		return Q3, t.Year()
	default:
		return Q4, t.Year()
	}
}

// MonthTotal is one month's slice of a quarter aggregation.
type MonthTotal struct {
	Total Money
	Count int
}

// QuarterSummary is the derived view of one calendar quarter across all
// record kinds, with a per-month breakdown. Like BudgetSummary it is
// recomputed on demand and never persisted.
type QuarterSummary struct {
	Quarter          Quarter
	Year             int
	StartDate        Date
	EndDate          Date
	TotalSpent       Money
	ByCategory       map[Category]Money
	ByMonth          map[string]MonthTotal // keyed by "YYYY-MM"
	TransportCost    Money
	TransportSavings Money
	ExpenseCount     int
	TripCount        int
	TimeWorked       string
}

// CategoriesWithData returns the categories that have at least one expense,
// ordered by descending amount.
func (s QuarterSummary) CategoriesWithData() []CategoryAmount {
	return BudgetSummary{ByCategory: s.ByCategory}.CategoriesWithData()
}

// Months returns the month keys with spending, in chronological order.
func (s QuarterSummary) Months() []string {
	out := make([]string, 0, len(s.ByMonth))
	for key := range s.ByMonth {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
