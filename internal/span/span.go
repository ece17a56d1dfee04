// Package span implements calendar-aware spans: a signed amount of years,
// months, weeks, days, and clock units that is only given a fixed length when
// applied to a date.
package span

import (
	"strconv"
	"strings"

	"github.com/jparise/dt/internal/units"
	"github.com/jparise/dt/internal/zoned"
)

// Span holds one signed count per unit. Spans built by this package have the
// same sign on every non-zero component.
type Span struct {
	Years        int64
	Months       int64
	Weeks        int64
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	Milliseconds int64
	Microseconds int64
	Nanoseconds  int64
}

func (s *Span) field(u units.Unit) *int64 {
	switch u {
	case units.Year:
		return &s.Years
	case units.Month:
		return &s.Months
	case units.Week:
		return &s.Weeks
	case units.Day:
		return &s.Days
	case units.Hour:
		return &s.Hours
	case units.Minute:
		return &s.Minutes
	case units.Second:
		return &s.Seconds
	case units.Millisecond:
		return &s.Milliseconds
	case units.Microsecond:
		return &s.Microseconds
	default:
		return &s.Nanoseconds
	}
}

// Get returns the component for u.
func (s Span) Get(u units.Unit) int64 {
	return *s.field(u)
}

// With returns a copy of s with the component for u set to n.
func (s Span) With(u units.Unit, n int64) Span {
	*s.field(u) = n
	return s
}

// Of returns a span of n units.
func Of(n int64, u units.Unit) Span {
	return Span{}.With(u, n)
}

// Sign returns -1, 0, or 1.
func (s Span) Sign() int {
	for _, u := range units.All {
		switch n := s.Get(u); {
		case n < 0:
			return -1
		case n > 0:
			return 1
		}
	}
	return 0
}

// IsZero reports whether every component is zero.
func (s Span) IsZero() bool {
	return s.Sign() == 0
}

// Negate flips the sign of every component.
func (s Span) Negate() Span {
	for _, u := range units.All {
		s = s.With(u, -s.Get(u))
	}
	return s
}

// Abs returns s with every component made non-negative.
func (s Span) Abs() Span {
	if s.Sign() < 0 {
		return s.Negate()
	}
	return s
}

// Largest returns the coarsest unit with a non-zero component, or
// Nanosecond for a zero span.
func (s Span) Largest() units.Unit {
	for _, u := range units.All {
		if s.Get(u) != 0 {
			return u
		}
	}
	return units.Nanosecond
}

// String returns the ISO 8601 duration form with lowercase designators, for
// example P5y2m27dT21h37m30.3673221s. Sub-second components are folded into
// a fractional seconds value. The zero span is PT0s.
func (s Span) String() string {
	if s.IsZero() {
		return "PT0s"
	}

	var b []byte
	if s.Sign() < 0 {
		b = append(b, '-')
	}
	a := s.Abs()
	b = append(b, 'P')
	b = appendDesignator(b, a.Years, 'y')
	b = appendDesignator(b, a.Months, 'm')
	b = appendDesignator(b, a.Weeks, 'w')
	b = appendDesignator(b, a.Days, 'd')

	secs, frac := a.seconds()
	if a.Hours != 0 || a.Minutes != 0 || secs != 0 || frac != 0 {
		b = append(b, 'T')
		b = appendDesignator(b, a.Hours, 'h')
		b = appendDesignator(b, a.Minutes, 'm')
		if secs != 0 || frac != 0 {
			b = strconv.AppendInt(b, secs, 10)
			b = zoned.AppendFraction(b, int(frac))
			b = append(b, 's')
		}
	}
	return string(b)
}

// seconds folds the sub-second components of a non-negative span into whole
// seconds and a nanosecond fraction.
func (s Span) seconds() (secs, frac int64) {
	secs = s.Seconds + s.Milliseconds/1e3 + s.Microseconds/1e6 + s.Nanoseconds/1e9
	frac = s.Milliseconds%1e3*1e6 + s.Microseconds%1e6*1e3 + s.Nanoseconds%1e9
	secs += frac / 1e9
	frac %= 1e9
	return secs, frac
}

func appendDesignator(b []byte, n int64, d byte) []byte {
	if n == 0 {
		return b
	}
	b = strconv.AppendInt(b, n, 10)
	return append(b, d)
}

// Human renders s as space separated <n><abbrev> tokens from the largest unit
// down, such as "5yrs 2mths 3wks 6days". Zero components are omitted. When
// the span has more than six days and no weeks, the days are repacked into
// weeks and remaining days. A zero span renders as a zero count of smallest.
func (s Span) Human(smallest units.Unit) string {
	neg := s.Sign() < 0
	a := s.Abs()
	if a.Weeks == 0 && a.Days > 6 {
		a.Weeks, a.Days = a.Days/7, a.Days%7
	}

	var tokens []string
	for _, u := range units.All {
		n := a.Get(u)
		if n == 0 {
			continue
		}
		tok := strconv.FormatInt(n, 10) + u.Abbrev()
		if neg {
			tok = "-" + tok
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 {
		return "0" + smallest.Abbrev()
	}
	return strings.Join(tokens, " ")
}

// HumanAs renders only the component for u, without any folding, such as
// "45982hrs".
func (s Span) HumanAs(u units.Unit) string {
	return strconv.FormatInt(s.Get(u), 10) + u.Abbrev()
}
