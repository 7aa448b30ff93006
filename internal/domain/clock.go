package domain

import (
	"fmt"
	"strings"
	"time"
)

const MinutesPerDay = 24 * 60

const clockLayout = "15:04"

// ParseClock parses an HH:MM time of day and returns minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, ErrInvalidTimeFormat)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as HH:MM, wrapping past midnight.
func FormatClock(minutes int) string {
	m := ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
