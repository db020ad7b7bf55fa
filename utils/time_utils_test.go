package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAddMonths(t *testing.T) {
	day := func(s string) time.Time {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("bad test date %q: %v", s, err)
		}
		return parsed
	}

	assert.Equal(t, day("2026-07-15"), AddMonths(day("2026-01-15"), 6))
	assert.Equal(t, day("2027-02-20"), AddMonths(day("2026-08-20"), 6))

	// August 31 plus six months lands in February, which has no 31st
	assert.Equal(t, day("2027-02-28"), AddMonths(day("2026-08-31"), 6))

	// Leap year February keeps the 29th
	assert.Equal(t, day("2028-02-29"), AddMonths(day("2027-08-31"), 6))

	// Negative offsets clamp the same way
	assert.Equal(t, day("2026-02-28"), AddMonths(day("2026-08-30"), -6))
}

func TestFormatLongDate(t *testing.T) {
	date := time.Date(2026, time.August, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "August 2, 2026", FormatLongDate(date))
}
