package utils

import "time"

// AddMonths adds calendar months, clamping the day to the target month
// length (for example Jan 31 + 1 month = Feb 28/29)
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	m := int(month) + months
	y := year + (m-1)/12
	m = (m-1)%12 + 1
	if m < 1 {
		m += 12
		y--
	}

	lastDay := daysInMonth(y, time.Month(m))
	if day > lastDay {
		day = lastDay
	}
	return time.Date(y, time.Month(m), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FormatLongDate renders a date as "January 2, 2006"
func FormatLongDate(t time.Time) string {
	return t.Format("January 2, 2006")
}
