// Package timeparse resolves date and time strings into zoned values and
// parses flat elapsed durations.
package timeparse

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jparise/dt/internal/dterr"
)

var durationUnits = map[string]time.Duration{
	"ns": time.Nanosecond,
	"us": time.Microsecond,
	"µs": time.Microsecond,
	"ms": time.Millisecond,
	"s":  time.Second,
	"m":  time.Minute,
	"h":  time.Hour,
	"d":  24 * time.Hour,
	"w":  7 * 24 * time.Hour,
	// Aliases
	"sec":   time.Second,
	"secs":  time.Second,
	"min":   time.Minute,
	"mins":  time.Minute,
	"hr":    time.Hour,
	"hrs":   time.Hour,
	"day":   24 * time.Hour,
	"days":  24 * time.Hour,
	"week":  7 * 24 * time.Hour,
	"weeks": 7 * 24 * time.Hour,
}

// ParseDuration parses a flat elapsed duration: an optionally signed
// integer followed by one unit. Days and weeks are exactly 24 and 168 hours.
// Examples: "90m", "-2h", "1500ms", "3weeks".
func ParseDuration(s string) (time.Duration, error) {
	input := s
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalidDuration(input, "", "empty duration")
	}

	// Find where the unit starts (first non-digit after an optional sign)
	start := 0
	if s[0] == '+' || s[0] == '-' {
		start = 1
	}
	i := start
	for i < len(s) && (s[i] >= '0' && s[i] <= '9') {
		i++
	}

	if i == start {
		return 0, invalidDuration(input, s[start:], "missing number")
	}
	if i == len(s) {
		return 0, invalidDuration(input, s, "missing unit")
	}

	// Parse the number
	num, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return 0, invalidDuration(input, s[:i], "number out of range")
	}

	// Parse the unit
	unitStr := strings.TrimSpace(s[i:])
	unit, ok := durationUnits[strings.ToLower(unitStr)]
	if !ok {
		return 0, invalidDuration(input, unitStr, "unknown unit")
	}

	// Check for overflow: num * unit must fit in time.Duration (int64)
	if num > math.MaxInt64/int64(unit) || num < math.MinInt64/int64(unit) {
		return 0, dterr.OverflowLimit(strconv.Quote(input), "the int64 nanosecond range of about 292 years")
	}

	return time.Duration(num) * unit, nil
}

func invalidDuration(input, offending, reason string) error {
	err := dterr.Span(input, offending, reason)
	err.Help = "use a signed count and one of ns, us, ms, s, m, h, d, w, e.g. 90m or -2h"
	return err
}
