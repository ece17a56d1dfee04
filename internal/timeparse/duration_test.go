package timeparse

import (
	"testing"
	"time"

	"github.com/jparise/dt/internal/dterr"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		// Basic time units
		{"seconds", "10s", 10 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"hours", "2h", 2 * time.Hour, false},
		{"minute alias", "90min", 90 * time.Minute, false},
		{"hour alias", "3hrs", 3 * time.Hour, false},

		// Sub-second units
		{"milliseconds", "1500ms", 1500 * time.Millisecond, false},
		{"microseconds", "250us", 250 * time.Microsecond, false},
		{"micro sign", "250µs", 250 * time.Microsecond, false},
		{"nanoseconds", "7ns", 7, false},

		// Days
		{"days short", "1d", 24 * time.Hour, false},
		{"days plural", "2days", 48 * time.Hour, false},
		{"day singular", "1day", 24 * time.Hour, false},

		// Weeks
		{"weeks short", "1w", 7 * 24 * time.Hour, false},
		{"weeks plural", "2weeks", 2 * 7 * 24 * time.Hour, false},
		{"week singular", "1week", 7 * 24 * time.Hour, false},

		// Signs
		{"negative", "-10s", -10 * time.Second, false},
		{"explicit plus", "+2h", 2 * time.Hour, false},
		{"negative days", "-1d", -24 * time.Hour, false},

		// With whitespace
		{"with spaces", " 10h ", 10 * time.Hour, false},
		{"space before unit", "10 h", 10 * time.Hour, false},
		{"uppercase unit", "10H", 10 * time.Hour, false},

		// Error cases
		{"empty string", "", 0, true},
		{"no unit", "123", 0, true},
		{"invalid unit", "10x", 0, true},
		{"no number", "s", 0, true},
		{"sign only", "-", 0, true},
		{"sign without number", "-h", 0, true},
		{"invalid format", "abc", 0, true},
		{"combined units not supported", "1h30m", 0, true},
		{"fractional not supported", "1.5h", 0, true},
		{"overflow", "9999999999999w", 0, true},
		{"negative overflow", "-9999999999999w", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDurationErrorKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  dterr.Kind
	}{
		{"empty string", "", dterr.InvalidSpan},
		{"blank string", "   ", dterr.InvalidSpan},
		{"unknown unit", "1x", dterr.InvalidSpan},
		{"missing number", "h", dterr.InvalidSpan},
		{"missing unit", "123", dterr.InvalidSpan},
		{"number out of range", "99999999999999999999s", dterr.InvalidSpan},
		{"overflow", "9999999999999w", dterr.DateOverflow},
		{"negative overflow", "-9999999999999w", dterr.DateOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDuration(tt.input)
			if !dterr.IsKind(err, tt.kind) {
				t.Errorf("ParseDuration(%q) error = %v, want kind %s", tt.input, err, tt.kind)
			}
		})
	}
}
