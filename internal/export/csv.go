// Package export renders records and reports as CSV. The column layouts are
// output contracts consumed by spreadsheets; there is no import path back.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"kuripot/internal/core"
)

// WriteExpensesCSV writes expense records with the Date,Category,
// Description,Amount layout.
func WriteExpensesCSV(w io.Writer, expenses []core.ExpenseRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Category", "Description", "Amount"}); err != nil {
		return fmt.Errorf("write expense header: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			e.Date.String(),
			e.Category.Display(),
			e.Description,
			e.Amount.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write expense row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTripsCSV writes trip records with the full fare breakdown layout.
func WriteTripsCSV(w io.Writer, trips []core.TripRecord) error {
	cw := csv.NewWriter(w)
	header := []string{
		"Date", "Day", "From Station", "To Station", "Stations Traveled",
		"Trips", "Regular Fare", "Discount %", "Discounted Fare", "Total Cost", "Savings",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write trip header: %w", err)
	}
	for _, t := range trips {
		row := []string{
			t.Date.String(),
			t.Date.Weekday().String(),
			t.OriginStation,
			t.DestStation,
			fmt.Sprintf("%d", t.StationsTraveled),
			fmt.Sprintf("%d", t.TripCount),
			t.BaseFare.String(),
			fmt.Sprintf("%d", t.DiscountPercent),
			t.DiscountedFare.String(),
			t.TotalCost.String(),
			t.TotalSavings.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write trip row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTimeLogsCSV writes work time logs. The Edit History column carries
// the record's audit trail JSON-encoded, or is left empty for records that
// were never corrected.
func WriteTimeLogsCSV(w io.Writer, logs []core.TimeLogRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Time In", "Time Out", "Duration", "Edit History"}); err != nil {
		return fmt.Errorf("write time log header: %w", err)
	}
	for _, l := range logs {
		history := ""
		if len(l.EditHistory) > 0 {
			raw, err := json.Marshal(l.EditHistory)
			if err != nil {
				return fmt.Errorf("encode edit history: %w", err)
			}
			history = string(raw)
		}
		row := []string{l.Date.String(), l.TimeIn, l.TimeOut, l.Duration, history}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write time log row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBudgetReportCSV writes the printable period report: a header block,
// a SUMMARY section and the expense transactions for the period. The
// expenses argument must already be filtered to the period's date range.
func WriteBudgetReportCSV(w io.Writer, s core.BudgetSummary, expenses []core.ExpenseRecord) error {
	period := s.Period

	if _, err := fmt.Fprintf(w, "Budget Report\nBudget Name: %s\nDescription: %s\nPeriod: %s to %s\n\n",
		period.Name, period.Description, period.StartDate.String(), period.EndDate.String()); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	cw := csv.NewWriter(w)
	summaryRows := [][]string{
		{"SUMMARY"},
		{"Metric", "Amount", "Details"},
		{"Budget Amount", period.Amount.String(), ""},
		{"Total Expenses", s.TotalSpent.String(), fmt.Sprintf("%d transactions", s.ExpenseCount)},
		{"Remaining Budget", s.Remaining.String(), remainingPercent(s)},
		{"Transport Cost", s.TransportCost.String(), fmt.Sprintf("%d trips", s.TripCount)},
		{"Discount Savings", s.TransportSavings.String(), "From discounts"},
		{},
		{"EXPENSE TRANSACTIONS"},
		{"Date", "Category", "Description", "Amount"},
	}
	for _, row := range summaryRows {
		if len(row) == 0 {
			cw.Flush()
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			continue
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	for _, e := range expenses {
		row := []string{e.Date.String(), e.Category.Display(), e.Description, e.Amount.String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write transaction row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteQuarterReportCSV writes the printable quarter report: a header
// block, a SUMMARY section, the per-category breakdown and the per-month
// breakdown. The budget pointer is nil when no target was set for the
// quarter; the budget rows are omitted in that case.
func WriteQuarterReportCSV(w io.Writer, s core.QuarterSummary, budget *core.QuarterlyBudget) error {
	if _, err := fmt.Fprintf(w, "Quarterly Report\nQuarter: %s %d\nPeriod: %s to %s\n\n",
		s.Quarter, s.Year, s.StartDate.String(), s.EndDate.String()); err != nil {
		return fmt.Errorf("write report header: %w", err)
	}

	cw := csv.NewWriter(w)
	summaryRows := [][]string{
		{"SUMMARY"},
		{"Metric", "Amount", "Details"},
	}
	if budget != nil {
		remaining := core.Money{Cents: budget.Amount.Cents - s.TotalSpent.Cents}
		summaryRows = append(summaryRows,
			[]string{"Budget Amount", budget.Amount.String(), budget.Name},
			[]string{"Remaining Budget", remaining.String(), percentOfBudget(remaining, budget.Amount)},
		)
	}
	summaryRows = append(summaryRows,
		[]string{"Total Expenses", s.TotalSpent.String(), fmt.Sprintf("%d transactions", s.ExpenseCount)},
		[]string{"Transport Cost", s.TransportCost.String(), fmt.Sprintf("%d trips", s.TripCount)},
		[]string{"Discount Savings", s.TransportSavings.String(), "From discounts"},
		[]string{"Time Worked", s.TimeWorked, ""},
		nil,
		[]string{"CATEGORY BREAKDOWN"},
		[]string{"Category", "Amount", "Percentage"},
	)
	for _, row := range summaryRows {
		if len(row) == 0 {
			cw.Flush()
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			continue
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	for _, ca := range s.CategoriesWithData() {
		row := []string{ca.Category.Display(), ca.Amount.String(), percentOfBudget(ca.Amount, s.TotalSpent)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write category row: %w", err)
		}
	}

	cw.Flush()
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	monthRows := [][]string{
		{"MONTHLY BREAKDOWN"},
		{"Month", "Amount", "Transactions"},
	}
	for _, key := range s.Months() {
		month := s.ByMonth[key]
		monthRows = append(monthRows, []string{key, month.Total.String(), fmt.Sprintf("%d", month.Count)})
	}
	for _, row := range monthRows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write month row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func percentOfBudget(part, whole core.Money) string {
	if whole.Cents == 0 {
		return ""
	}
	pct := float64(part.Cents) / float64(whole.Cents) * 100
	return fmt.Sprintf("%.1f%%", pct)
}

func remainingPercent(s core.BudgetSummary) string {
	if s.Period.Amount.Cents == 0 {
		return ""
	}
	pct := float64(s.Remaining.Cents) / float64(s.Period.Amount.Cents) * 100
	return fmt.Sprintf("%.1f%%", pct)
}
