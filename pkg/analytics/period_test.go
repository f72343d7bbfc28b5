package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Period
		wantErr bool
	}{
		{name: "daily", input: "daily", want: PeriodDaily},
		{name: "weekly", input: "weekly", want: PeriodWeekly},
		{name: "monthly", input: "monthly", want: PeriodMonthly},
		{name: "all-time", input: "all-time", want: PeriodAllTime},
		{name: "unknown keyword is a hard error", input: "yearly", wantErr: true},
		{name: "empty is a hard error", input: "", wantErr: true},
		{name: "case matters", input: "Daily", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPeriod)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDayKey(t *testing.T) {
	date := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "01/06/2024", DayKey(date))
}

func TestWeekKey(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "mid-year week",
			date: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			want: "Week 22",
		},
		{
			name: "Jan 1 2021 belongs to ISO week 53 of 2020",
			date: time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC),
			want: "Week 53",
		},
		{
			name: "Dec 31 2019 belongs to ISO week 1 of 2020",
			date: time.Date(2019, time.December, 31, 0, 0, 0, 0, time.UTC),
			want: "Week 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekKey(tt.date))
		})
	}
}

// Bucketing any date of a full year into a week key and reading the number
// back must reproduce ISOWeek, including the Dec 31 / Jan 1 boundaries.
func TestWeekKey_RoundTripsFullYear(t *testing.T) {
	start := time.Date(2019, time.December, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, time.January, 3, 0, 0, 0, 0, time.UTC)

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		key := WeekKey(date)
		numberPart := strings.TrimPrefix(key, "Week ")
		week, err := strconv.Atoi(numberPart)
		assert.NoError(t, err, "key %q on %s", key, date)

		_, isoWeek := date.ISOWeek()
		assert.Equal(t, isoWeek, week, "date %s", date.Format("2006-01-02"))
		assert.GreaterOrEqual(t, week, 1)
		assert.LessOrEqual(t, week, 53)
	}
}

func TestMonthKey(t *testing.T) {
	names := []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	for month := 1; month <= 12; month++ {
		t.Run(fmt.Sprintf("month %d", month), func(t *testing.T) {
			date := time.Date(2024, time.Month(month), 15, 0, 0, 0, 0, time.UTC)
			assert.Equal(t, names[month-1], MonthKey(date))
		})
	}
}

func Test_inWindow(t *testing.T) {
	today := time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC) // Wednesday, ISO week 23

	tests := []struct {
		name   string
		period Period
		date   time.Time
		want   bool
	}{
		{
			name:   "daily matches the exact day",
			period: PeriodDaily,
			date:   time.Date(2024, time.June, 5, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "daily rejects the day before",
			period: PeriodDaily,
			date:   time.Date(2024, time.June, 4, 0, 0, 0, 0, time.UTC),
			want:   false,
		},
		{
			name:   "weekly matches Monday of the same ISO week",
			period: PeriodWeekly,
			date:   time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "weekly matches Sunday of the same ISO week",
			period: PeriodWeekly,
			date:   time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "weekly rejects the previous week",
			period: PeriodWeekly,
			date:   time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC),
			want:   false,
		},
		{
			name:   "weekly rejects the same week number a year earlier",
			period: PeriodWeekly,
			date:   time.Date(2023, time.June, 7, 0, 0, 0, 0, time.UTC),
			want:   false,
		},
		{
			name:   "monthly matches another day of the month",
			period: PeriodMonthly,
			date:   time.Date(2024, time.June, 28, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
		{
			name:   "monthly rejects the same month a year earlier",
			period: PeriodMonthly,
			date:   time.Date(2023, time.June, 5, 0, 0, 0, 0, time.UTC),
			want:   false,
		},
		{
			name:   "all-time matches everything",
			period: PeriodAllTime,
			date:   time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC),
			want:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inWindow(tt.period, today, tt.date))
		})
	}
}
