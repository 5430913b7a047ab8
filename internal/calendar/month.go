package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/Nassty/cal2/pkg/dateutil"
)

// ErrInvalidDate reports a month/year pair that cannot be represented
var ErrInvalidDate = errors.New("invalid date")

// Month is one calendar month of a specific year
type Month struct {
	month int
	year  int
	first time.Time
	last  time.Time
}

// New builds the Month for the given 1-based month and year
func New(month, year int) (Month, error) {
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w: month %d out of range", ErrInvalidDate, month)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	if first.Year() != year || first.Month() != time.Month(month) {
		return Month{}, fmt.Errorf("%w: year %d not representable", ErrInvalidDate, year)
	}

	return Month{
		month: month,
		year:  year,
		first: first,
		last:  first.AddDate(0, 1, -1),
	}, nil
}

// Year returns the year
func (m Month) Year() int {
	return m.year
}

// Month returns the 1-based month number
func (m Month) Month() int {
	return m.month
}

// FirstDay returns the first day of the month
func (m Month) FirstDay() time.Time {
	return m.first
}

// LastDay returns the last day of the month
func (m Month) LastDay() time.Time {
	return m.last
}

// Date returns the given day of the month as a time.Time
func (m Month) Date(day int) time.Time {
	return time.Date(m.year, time.Month(m.month), day, 0, 0, 0, 0, time.UTC)
}

// Name returns the English month name with the year, e.g. "January 1970"
func (m Month) Name() string {
	return fmt.Sprintf("%s %d", m.first.Month(), m.year)
}

// Next returns the month immediately after m
func (m Month) Next() Month {
	month := m.month%12 + 1
	year := m.year
	if month == 1 {
		year++
	}
	next, _ := New(month, year)
	return next
}

// Prev returns the month immediately before m
func (m Month) Prev() Month {
	month := m.month - 1
	year := m.year
	if month == 0 {
		month = 12
		year--
	}
	prev, _ := New(month, year)
	return prev
}

// Weeks lays the month out Monday-first, one slice per week. Leading zero
// cells mark the blanks before the first day.
func (m Month) Weeks() [][]int {
	offset := dateutil.MondayIndex(m.first)

	var weeks [][]int
	week := make([]int, 0, 7)
	for i := 0; i < offset; i++ {
		week = append(week, 0)
	}

	for day := 1; day <= m.last.Day(); day++ {
		week = append(week, day)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]int, 0, 7)
		}
	}
	if len(week) > 0 {
		weeks = append(weeks, week)
	}

	return weeks
}
