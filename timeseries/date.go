package timeseries

import (
	"fmt"
	"time"
)

// Date represents a civil date as the number of days since 1970-01-01.
//
// Water-quality records are daily at finest resolution, so a compact day
// count is both the storage representation and the join key: two
// observations belong together exactly when their Date values are equal.
// The zero value is 1970-01-01.
type Date int32

const dateLayout = "2006-01-02"

// NewDate creates a Date from a calendar year, month and day.
//
// Parameters:
//   - year: Calendar year (e.g. 2003)
//   - month: Calendar month
//   - day: Day of month (1-31)
//
// Example:
//
//	d := timeseries.NewDate(2003, time.October, 1)
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

	return Date(t.Unix() / 86400)
}

// DateOf truncates t to its UTC calendar date.
func DateOf(t time.Time) Date {
	u := t.UTC()

	return NewDate(u.Year(), u.Month(), u.Day())
}

// ParseDate parses a date in ISO-8601 form (2006-01-02).
//
// Returns:
//   - Date: Parsed date
//   - error: Parse error from the time package if the string is malformed
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", s, err)
	}

	return DateOf(t), nil
}

// Time returns the date as a time.Time at UTC midnight.
func (d Date) Time() time.Time {
	return time.Unix(int64(d)*86400, 0).UTC()
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time().Year()
}

// Month returns the calendar month.
func (d Date) Month() time.Month {
	return d.Time().Month()
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time().Day()
}

// AddDays returns the date n days later (earlier when n is negative).
func (d Date) AddDays(n int) Date {
	return d + Date(n)
}

// Sub returns the number of days from other to d.
func (d Date) Sub(other Date) int {
	return int(d - other)
}

// String returns the date in ISO-8601 form (2006-01-02).
func (d Date) String() string {
	return d.Time().Format(dateLayout)
}

// DecimalYear returns the date as a decimal year, placing each day at its
// midpoint: year + (dayOfYear - 0.5) / daysInYear.
//
// Decimal time is the regression clock for trend and seasonal terms. The
// midpoint convention keeps the fractional part strictly inside (0, 1), and
// the fractional part of one full cycle spans exactly one period of the
// annual harmonics.
//
// Example:
//
//	timeseries.NewDate(2003, time.January, 1).DecimalYear() // 2003.0013698...
func (d Date) DecimalYear() float64 {
	t := d.Time()
	year := t.Year()
	days := 365.0
	if isLeapYear(year) {
		days = 366.0
	}

	return float64(year) + (float64(t.YearDay())-0.5)/days
}

// WaterYear returns the USGS water year the date falls in: water year N runs
// from October 1 of year N-1 through September 30 of year N.
func (d Date) WaterYear() int {
	t := d.Time()
	if t.Month() >= time.October {
		return t.Year() + 1
	}

	return t.Year()
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
