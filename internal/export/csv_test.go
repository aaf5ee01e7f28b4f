package export

import (
	"strings"
	"testing"

	"kuripot/internal/core"
)

func TestWriteExpensesCSV(t *testing.T) {
	var sb strings.Builder
	expenses := []core.ExpenseRecord{
		{Date: core.NewDate(2025, 12, 6), Category: core.CategoryFood, Description: "Lunch", Amount: core.Money{Cents: 32000}},
	}
	if err := WriteExpensesCSV(&sb, expenses); err != nil {
		t.Fatalf("WriteExpensesCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if lines[0] != "Date,Category,Description,Amount" {
		t.Fatalf("header: %q", lines[0])
	}
	if lines[1] != "2025-12-06,Food,Lunch,320.00" {
		t.Fatalf("row: %q", lines[1])
	}
}

func TestWriteTripsCSV(t *testing.T) {
	var sb strings.Builder
	trips := []core.TripRecord{
		{
			Date:             core.NewDate(2025, 12, 6), // a Saturday
			OriginStation:    "Baclaran",
			DestStation:      "EDSA",
			StationsTraveled: 1,
			TripCount:        2,
			BaseFare:         core.Money{Cents: 1772},
			DiscountPercent:  50,
			DiscountedFare:   core.Money{Cents: 886},
			TotalCost:        core.Money{Cents: 1772},
			TotalSavings:     core.Money{Cents: 1772},
		},
	}
	if err := WriteTripsCSV(&sb, trips); err != nil {
		t.Fatalf("WriteTripsCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	wantHeader := "Date,Day,From Station,To Station,Stations Traveled,Trips,Regular Fare,Discount %,Discounted Fare,Total Cost,Savings"
	if lines[0] != wantHeader {
		t.Fatalf("header: %q", lines[0])
	}
	if lines[1] != "2025-12-06,Saturday,Baclaran,EDSA,1,2,17.72,50,8.86,17.72,17.72" {
		t.Fatalf("row: %q", lines[1])
	}
}

func TestWriteTimeLogsCSV(t *testing.T) {
	var sb strings.Builder
	logs := []core.TimeLogRecord{
		{Date: core.NewDate(2025, 12, 8), TimeIn: "08:00", TimeOut: "17:30", Duration: "9h 30m"},
	}
	if err := WriteTimeLogsCSV(&sb, logs); err != nil {
		t.Fatalf("WriteTimeLogsCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if lines[0] != "Date,Time In,Time Out,Duration,Edit History" {
		t.Fatalf("header: %q", lines[0])
	}
	if lines[1] != "2025-12-08,08:00,17:30,9h 30m," {
		t.Fatalf("row: %q", lines[1])
	}
}

func TestWriteTimeLogsCSVEditHistory(t *testing.T) {
	var sb strings.Builder
	logs := []core.TimeLogRecord{
		{
			Date: core.NewDate(2025, 12, 8), TimeIn: "08:30", TimeOut: "17:30", Duration: "9h 0m",
			EditHistory: []core.TimeLogEdit{
				{Field: "timeIn", OldValue: "08:00", NewValue: "08:30", Reason: "forgot to clock in"},
			},
		},
	}
	if err := WriteTimeLogsCSV(&sb, logs); err != nil {
		t.Fatalf("WriteTimeLogsCSV: %v", err)
	}

	out := sb.String()
	// The history cell is JSON, so the csv writer quotes it and doubles
	// the inner quotes.
	for _, want := range []string{
		`""field"":""timeIn""`,
		`""oldValue"":""08:00""`,
		`""newValue"":""08:30""`,
		`""reason"":""forgot to clock in""`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("history cell missing %s:\n%s", want, out)
		}
	}
}

func TestWriteBudgetReportCSV(t *testing.T) {
	start := core.NewDate(2025, 12, 5)
	s := core.BudgetSummary{
		Period: core.BudgetPeriod{
			Name:         "1st Cut Off Budget",
			Description:  "Budget for 1st cut off period",
			Amount:       core.Money{Cents: 150000},
			StartDate:    start,
			EndDate:      start.AddDays(10),
			DurationDays: 10,
		},
		TotalSpent:   core.Money{Cents: 32000},
		Remaining:    core.Money{Cents: 118000},
		ExpenseCount: 1,
	}
	expenses := []core.ExpenseRecord{
		{Date: core.NewDate(2025, 12, 6), Category: core.CategoryFood, Description: "Lunch", Amount: core.Money{Cents: 32000}},
	}

	var sb strings.Builder
	if err := WriteBudgetReportCSV(&sb, s, expenses); err != nil {
		t.Fatalf("WriteBudgetReportCSV: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"Budget Report",
		"Budget Name: 1st Cut Off Budget",
		"Period: 2025-12-05 to 2025-12-15",
		"SUMMARY",
		"Budget Amount,1500.00,",
		"Total Expenses,320.00,1 transactions",
		"Remaining Budget,1180.00,78.7%",
		"EXPENSE TRANSACTIONS",
		"2025-12-06,Food,Lunch,320.00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteQuarterReportCSV(t *testing.T) {
	start := core.NewDate(2025, 10, 1)
	end := core.NewDate(2025, 12, 31)
	s := core.QuarterSummary{
		Quarter:    core.Q4,
		Year:       2025,
		StartDate:  start,
		EndDate:    end,
		TotalSpent: core.Money{Cents: 100000},
		ByCategory: map[core.Category]core.Money{
			core.CategoryFood:   {Cents: 75000},
			core.CategoryCoffee: {Cents: 25000},
		},
		ByMonth: map[string]core.MonthTotal{
			"2025-10": {Total: core.Money{Cents: 60000}, Count: 2},
			"2025-11": {Total: core.Money{Cents: 40000}, Count: 1},
		},
		ExpenseCount: 3,
		TripCount:    2,
		TimeWorked:   "16h 0m",
	}
	budget := &core.QuarterlyBudget{
		Name:   "Q4 2025 Budget",
		Amount: core.Money{Cents: 450000},
	}

	var sb strings.Builder
	if err := WriteQuarterReportCSV(&sb, s, budget); err != nil {
		t.Fatalf("WriteQuarterReportCSV: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"Quarterly Report",
		"Quarter: Q4 2025",
		"Period: 2025-10-01 to 2025-12-31",
		"SUMMARY",
		"Budget Amount,4500.00,Q4 2025 Budget",
		"Remaining Budget,3500.00,77.8%",
		"Total Expenses,1000.00,3 transactions",
		"CATEGORY BREAKDOWN",
		"Food,750.00,75.0%",
		"Coffee,250.00,25.0%",
		"MONTHLY BREAKDOWN",
		"2025-10,600.00,2",
		"2025-11,400.00,1",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("report missing %q:\n%s", want, out)
		}
	}
	// Month rows come out chronologically.
	if strings.Index(out, "2025-10,600.00") > strings.Index(out, "2025-11,400.00") {
		t.Fatalf("months out of order:\n%s", out)
	}

	// Without a budget the target rows are omitted.
	sb.Reset()
	if err := WriteQuarterReportCSV(&sb, s, nil); err != nil {
		t.Fatalf("WriteQuarterReportCSV: %v", err)
	}
	if strings.Contains(sb.String(), "Budget Amount") {
		t.Fatalf("budget rows must be omitted without a target:\n%s", sb.String())
	}
}
