package dateutil

import "time"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// MondayIndex returns the 0-based position of the date's weekday in a
// Monday-first week (Monday = 0, Sunday = 6)
func MondayIndex(date time.Time) int {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday = 7
	}
	return weekday - 1
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// IsSameDay returns true if two dates are on the same day
func IsSameDay(date1, date2 time.Time) bool {
	return date1.Year() == date2.Year() &&
		date1.Month() == date2.Month() &&
		date1.Day() == date2.Day()
}
