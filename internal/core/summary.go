package core

import "sort"

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// DayAmount represents an amount aggregated by calendar date.
type DayAmount struct {
	Date   Date
	Amount Money
}

// BudgetSummary is the derived view of a budget period bound to the records
// falling inside its date range. It is recomputed on demand and never
// persisted; any record mutation invalidates it.
type BudgetSummary struct {
	Period           BudgetPeriod
	TotalSpent       Money
	ByCategory       map[Category]Money
	ByDay            map[string]Money // keyed by ISO date
	TransportCost    Money
	TransportSavings Money
	Remaining        Money
	DaysElapsed      int
	DaysLeft         int
	AverageDaily     Money
	ExpenseCount     int
	TripCount        int
	TimeWorked       string // total "Hh Mm" over completed time logs
}

// CategoriesWithData returns the categories that have at least one expense,
// ordered by descending amount. Categories with zero total are never present.
func (s BudgetSummary) CategoriesWithData() []CategoryAmount {
	out := make([]CategoryAmount, 0, len(s.ByCategory))
	for c, amt := range s.ByCategory {
		out = append(out, CategoryAmount{Category: c, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Days returns the dates that have at least one expense, in chronological
// order. Days without spending are absent.
func (s BudgetSummary) Days() []DayAmount {
	out := make([]DayAmount, 0, len(s.ByDay))
	for iso, amt := range s.ByDay {
		d, err := ParseDate(iso)
		if err != nil {
			continue
		}
		out = append(out, DayAmount{Date: d, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Time.Before(out[j].Date.Time)
	})
	return out
}
