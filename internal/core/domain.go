package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	CategoryTransport     Category = "transport"
	CategoryFood          Category = "food"
	CategoryCoffee        Category = "coffee"
	CategoryGroceries     Category = "groceries"
	CategoryEntertainment Category = "entertainment"
	CategoryOther         Category = "other"
)

const (
	StatusActive   PeriodStatus = "active"
	StatusArchived PeriodStatus = "archived"
)

type (
	Category string

	PeriodStatus string

	// Date is a calendar date with no time component, normalized to UTC midnight.
	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	ExpenseRecord struct {
		ID          string   `json:"id"`
		Category    Category `json:"category"`
		Amount      Money    `json:"amount"`
		Description string   `json:"description,omitempty"`
		Date        Date     `json:"date"`
	}

	TripRecord struct {
		ID               string `json:"id"`
		Date             Date   `json:"date"`
		OriginStation    string `json:"originStation"`
		DestStation      string `json:"destinationStation"`
		StationsTraveled int    `json:"stationsTraveled"`
		TripCount        int    `json:"tripCount"`
		BaseFare         Money  `json:"baseFare"`
		DiscountPercent  int    `json:"discountPercent"`
		DiscountedFare   Money  `json:"discountedFare"`
		TotalCost        Money  `json:"totalCost"`
		TotalSavings     Money  `json:"totalSavings"`
	}

	TimeLogRecord struct {
		ID          string        `json:"id"`
		Date        Date          `json:"date"`
		TimeIn      string        `json:"timeIn,omitempty"`
		TimeOut     string        `json:"timeOut,omitempty"`
		Duration    string        `json:"duration,omitempty"`
		EditHistory []TimeLogEdit `json:"editHistory,omitempty"`
	}

	// TimeLogEdit is one entry in a time log's audit trail, recorded on
	// every clock correction.
	TimeLogEdit struct {
		Timestamp time.Time `json:"timestamp"`
		Field     string    `json:"field"`
		OldValue  string    `json:"oldValue"`
		NewValue  string    `json:"newValue"`
		Reason    string    `json:"reason,omitempty"`
	}

	BudgetPeriod struct {
		ID           string       `json:"id"`
		Name         string       `json:"name"`
		Description  string       `json:"description"`
		Amount       Money        `json:"amount"`
		StartDate    Date         `json:"startDate"`
		EndDate      Date         `json:"endDate"`
		DurationDays int          `json:"duration"`
		Status       PeriodStatus `json:"status"`
		CreatedAt    time.Time    `json:"createdAt"`
		ArchivedAt   time.Time    `json:"archivedAt"`
	}

	// QuarterlyBudget is a calendar-quarter spending target. Unlike
	// BudgetPeriod its window is derived from the quarter, never entered.
	QuarterlyBudget struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Quarter   Quarter   `json:"quarter"`
		Year      int       `json:"year"`
		Amount    Money     `json:"amount"`
		StartDate Date      `json:"startDate"`
		EndDate   Date      `json:"endDate"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDuration  = errors.New("invalid duration")
	ErrInvalidDiscount  = errors.New("discount percent out of range")
	ErrInvalidTime      = errors.New("invalid time, expected HH:MM")
	ErrInvalidTripCount = errors.New("invalid trip count")
	ErrInvalidQuarter   = errors.New("invalid quarter")
	ErrInvalidRecord    = errors.New("invalid record")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyDescription = errors.New("empty description")
)

var allCategories = []Category{
	CategoryTransport,
	CategoryFood,
	CategoryCoffee,
	CategoryGroceries,
	CategoryEntertainment,
	CategoryOther,
}

// Categories returns the closed set of expense categories in display order.
func Categories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory maps a raw string onto the closed category set.
// Unrecognized values fall back to CategoryOther rather than failing, so
// records with stale labels stay readable.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range allCategories {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

// Display returns the human-readable category name used in reports.
func (c Category) Display() string {
	switch c {
	case CategoryTransport:
		return "Transportation"
	case CategoryFood:
		return "Food"
	case CategoryCoffee:
		return "Coffee"
	case CategoryGroceries:
		return "Groceries"
	case CategoryEntertainment:
		return "Entertainment"
	default:
		return "Other"
	}
}

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO date string (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// DateOf truncates an instant to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// Within reports whether d falls in [start, end], inclusive on both ends.
func (d Date) Within(start, end Date) bool {
	return !d.Time.Before(start.Time) && !d.Time.After(end.Time)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e ExpenseRecord) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(e.Description) > 200 {
		return fmt.Errorf("%w: description too long (max 200 characters)", ErrInvalidRecord)
	}
	// Description is optional. Category is closed by ParseCategory, so only
	// a value that bypassed parsing can be rejected here.
	if e.Category != ParseCategory(string(e.Category)) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidRecord, e.Category)
	}
	return nil
}

func (t TripRecord) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.TripCount < 1 {
		return ErrInvalidTripCount
	}
	if t.DiscountPercent < 0 || t.DiscountPercent > 100 {
		return ErrInvalidDiscount
	}
	if t.StationsTraveled < 0 {
		return fmt.Errorf("%w: negative stations traveled", ErrInvalidRecord)
	}
	if t.TotalCost.Cents != t.DiscountedFare.Cents*int64(t.TripCount) {
		return fmt.Errorf("%w: total cost does not match discounted fare times trips", ErrInvalidRecord)
	}
	if t.TotalSavings.Cents != (t.BaseFare.Cents-t.DiscountedFare.Cents)*int64(t.TripCount) {
		return fmt.Errorf("%w: total savings does not match fare difference times trips", ErrInvalidRecord)
	}
	return nil
}

func (p BudgetPeriod) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.Description) == "" {
		return ErrEmptyDescription
	}
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if err := p.StartDate.Validate(); err != nil {
		return err
	}
	if p.DurationDays < 1 {
		return ErrInvalidDuration
	}
	if !p.EndDate.Equal(p.StartDate.AddDays(p.DurationDays).Time) {
		return fmt.Errorf("%w: end date does not match start date plus duration", ErrInvalidRecord)
	}
	return nil
}

func (q QuarterlyBudget) Validate() error {
	if strings.TrimSpace(q.Name) == "" {
		return ErrEmptyName
	}
	if err := q.Quarter.Validate(); err != nil {
		return err
	}
	if q.Year < 1 {
		return fmt.Errorf("%w: year %d", ErrInvalidQuarter, q.Year)
	}
	if err := q.Amount.Validate(); err != nil {
		return err
	}
	start, end, err := q.Quarter.Dates(q.Year)
	if err != nil {
		return err
	}
	if !q.StartDate.Equal(start.Time) || !q.EndDate.Equal(end.Time) {
		return fmt.Errorf("%w: window does not match %s %d", ErrInvalidRecord, q.Quarter, q.Year)
	}
	return nil
}
