package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/trackwise/trackwise/pkg/transaction"
)

// Period is the aggregation granularity. AllTime is only meaningful for the
// category breakdown; the totals endpoint accepts the other three.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodAllTime Period = "all-time"
)

var ErrInvalidPeriod = errors.New("invalid period")

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ParsePeriod validates a period keyword. Unrecognized values are a hard
// input error, not a silent empty result.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAllTime:
		return Period(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
}

// DayKey buckets a date by calendar day, rendered in the DD/MM/YYYY wire
// format.
func DayKey(date time.Time) string {
	return transaction.FormatDate(date)
}

// WeekKey buckets a date by its ISO-8601 week number.
func WeekKey(date time.Time) string {
	_, week := date.ISOWeek()
	return fmt.Sprintf("Week %d", week)
}

// MonthKey buckets a date by calendar month, as a full English month name.
func MonthKey(date time.Time) string {
	return monthNames[int(date.Month())-1]
}

// bucketKeyFunc maps a period to its bucketing function. AllTime has no
// bucket key: everything lands in one pot.
func bucketKeyFunc(period Period) (func(time.Time) string, error) {
	switch period {
	case PeriodDaily:
		return DayKey, nil
	case PeriodWeekly:
		return WeekKey, nil
	case PeriodMonthly:
		return MonthKey, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
}

// inWindow reports whether date falls inside the period window anchored at
// today: the same calendar day, the same ISO week of the same ISO year, or
// the same month of the same year. AllTime matches everything.
func inWindow(period Period, today, date time.Time) bool {
	switch period {
	case PeriodDaily:
		ty, tm, td := today.Date()
		y, m, d := date.Date()
		return ty == y && tm == m && td == d
	case PeriodWeekly:
		todayYear, todayWeek := today.ISOWeek()
		year, week := date.ISOWeek()
		return todayYear == year && todayWeek == week
	case PeriodMonthly:
		return today.Year() == date.Year() && today.Month() == date.Month()
	case PeriodAllTime:
		return true
	}
	return false
}
