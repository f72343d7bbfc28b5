package transaction

import (
	"errors"
	"fmt"
	"time"
)

// Kind tells expenses and incomes apart. It is carried explicitly on every
// record rather than re-derived from which table a row came from.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

const (
	// DateLayout is the day-first wire format for calendar dates. It is the
	// external contract and must never be reinterpreted as month-first.
	DateLayout = "02/01/2006"
	// TimeLayout is the wire format for the time-of-day component.
	TimeLayout = "15:04:05"

	// storedDateLayout is how dates are kept in the database. Lexicographic
	// order equals chronological order, which keeps SQL ORDER BY honest.
	storedDateLayout = "2006-01-02"
)

var (
	ErrMalformedDate = errors.New("malformed date")
	ErrMalformedTime = errors.New("malformed time")
)

// Transaction is a single expense or income record. Date holds the calendar
// day at midnight UTC; TimeOfDay keeps the HH:MM:SS component separately, as
// the records are keyed and sorted by (date, time) as a compound.
type Transaction struct {
	ID        int
	OwnerID   int
	Amount    Money
	Date      time.Time
	TimeOfDay string
	Category  string
	Kind      Kind
}

// ParseDate parses a day-first DD/MM/YYYY date into a calendar date value.
// Dates are parsed once at the boundary; everything downstream works on the
// structured value.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return d, nil
}

// FormatDate renders a calendar date back into the DD/MM/YYYY wire format.
func FormatDate(d time.Time) string {
	return d.Format(DateLayout)
}

// ValidTimeOfDay reports whether s is a well-formed HH:MM:SS string.
func ValidTimeOfDay(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

func parseStoredDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(storedDateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return d, nil
}

func formatStoredDate(d time.Time) string {
	return d.Format(storedDateLayout)
}

// Validate checks the write-boundary invariants of a transaction record.
func (t Transaction) Validate() error {
	if t.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return fmt.Errorf("%w: empty date", ErrMalformedDate)
	}
	if !ValidTimeOfDay(t.TimeOfDay) {
		return fmt.Errorf("%w: %q", ErrMalformedTime, t.TimeOfDay)
	}
	if t.Category == "" {
		return errors.New("empty category")
	}
	if t.Kind != KindExpense && t.Kind != KindIncome {
		return fmt.Errorf("unknown transaction kind %q", t.Kind)
	}
	return nil
}

// MoreRecentThan orders transactions by (date, time-of-day), most recent
// first. TimeOfDay is compared lexicographically, which matches chronological
// order for HH:MM:SS strings.
func (t Transaction) MoreRecentThan(other Transaction) bool {
	if !t.Date.Equal(other.Date) {
		return t.Date.After(other.Date)
	}
	return t.TimeOfDay > other.TimeOfDay
}
