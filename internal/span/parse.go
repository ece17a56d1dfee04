package span

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jparise/dt/internal/dterr"
	"github.com/jparise/dt/internal/units"
)

// unitAmount matches the short "<n><unit name>" form, e.g. "10days" or "-1hr".
var unitAmount = regexp.MustCompile(`^([+-]?\d+)\s*([\p{L}_]+)$`)

// Parse parses a span written as an ISO 8601 style duration:
//
//	[+-]P[nY][nM][nW][nD][T[nH][nM][n[.f]S]]
//
// Designators are case-insensitive and the leading P may be omitted, so "1d",
// "T1h", and "-1d" mean P1D, PT1H, and -P1D. Only the last time component may
// carry a fraction. When that grammar fails, Parse also accepts a count
// followed by any unit name from the registry, like "10days" or "3wks".
func Parse(input string) (Span, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return Span{}, dterr.Span(input, "", "empty span")
	}

	sp, err := parseISO(input, insertDesignator(s))
	if err == nil {
		return sp, nil
	}
	if sp, ok := parseUnitAmount(s); ok {
		return sp, nil
	}
	return Span{}, err
}

// insertDesignator adds the P that users tend to leave out. A sign stays in
// front of it. Signed input of two characters or fewer is left alone.
func insertDesignator(s string) string {
	switch s[0] {
	case '+', '-':
		if len(s) <= 2 || s[1] == 'P' || s[1] == 'p' {
			return s
		}
		return s[:1] + "P" + s[1:]
	case 'P', 'p':
		return s
	}
	return "P" + s
}

type component struct {
	unit units.Unit
	time bool
}

var designators = map[byte]component{
	'y': {units.Year, false},
	'm': {units.Month, false},
	'w': {units.Week, false},
	'd': {units.Day, false},
}

var timeDesignators = map[byte]component{
	'h': {units.Hour, true},
	'm': {units.Minute, true},
	's': {units.Second, true},
}

func parseISO(input, s string) (Span, error) {
	i := 0
	neg := false
	if s[i] == '+' || s[i] == '-' {
		neg = s[i] == '-'
		i++
	}
	if i >= len(s) || (s[i] != 'P' && s[i] != 'p') {
		return Span{}, dterr.Span(input, s[i:], "expected the P designator")
	}
	i++
	if i == len(s) {
		return Span{}, dterr.Span(input, s, "no units after P")
	}

	var (
		sp       Span
		inTime   bool
		last     = units.Year + 1
		fraction bool
		seen     bool
	)
	for i < len(s) {
		if s[i] == 'T' || s[i] == 't' {
			if inTime {
				return Span{}, dterr.Span(input, s[i:], "repeated T designator")
			}
			inTime = true
			i++
			if i == len(s) {
				return Span{}, dterr.Span(input, s, "no units after T")
			}
			continue
		}

		start := i
		for i < len(s) && isDigit(s[i]) {
			i++
		}
		if i == start {
			return Span{}, dterr.Span(input, s[start:], "expected a number")
		}
		digits := s[start:i]

		var frac string
		if i < len(s) && (s[i] == '.' || s[i] == ',') {
			j := i + 1
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			if j == i+1 {
				return Span{}, dterr.Span(input, s[start:], "expected digits after the decimal point")
			}
			frac = s[i+1 : j]
			i = j
		}

		if i == len(s) {
			return Span{}, dterr.Span(input, s[start:], "missing unit designator")
		}
		table := designators
		if inTime {
			table = timeDesignators
		}
		c, ok := table[lower(s[i])]
		i++
		if !ok {
			return Span{}, dterr.Span(input, s[start:i], fmt.Sprintf("unknown unit designator %q", s[i-1]))
		}
		if fraction {
			return Span{}, dterr.Span(input, s[start:i], "only the last component may have a fraction")
		}
		if c.unit >= last {
			return Span{}, dterr.Span(input, s[start:i], "units must appear at most once, largest first")
		}
		last = c.unit

		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return Span{}, dterr.Span(input, s[start:i], "number out of range")
		}
		sp = sp.With(c.unit, n)

		if frac != "" {
			if !c.time {
				return Span{}, dterr.Span(input, s[start:i], "fractions are only allowed on hours, minutes, and seconds")
			}
			if len(frac) > 9 {
				return Span{}, dterr.Span(input, s[start:i], "fractions are limited to nine digits")
			}
			sp = addFraction(sp, c.unit, frac)
			fraction = true
		}
		seen = true
	}
	if !seen {
		return Span{}, dterr.Span(input, s, "no units")
	}
	if neg {
		sp = sp.Negate()
	}
	return sp, nil
}

// addFraction spreads a fraction of one u over the finer components.
func addFraction(sp Span, u units.Unit, frac string) Span {
	for len(frac) < 9 {
		frac += "0"
	}
	billionths, _ := strconv.ParseInt(frac, 10, 64)
	nanos := billionths * (u.Nanos() / 1e9)
	for _, f := range []units.Unit{units.Minute, units.Second, units.Millisecond, units.Microsecond, units.Nanosecond} {
		if f >= u {
			continue
		}
		size := f.Nanos()
		sp = sp.With(f, sp.Get(f)+nanos/size)
		nanos %= size
	}
	return sp
}

func parseUnitAmount(s string) (Span, bool) {
	m := unitAmount.FindStringSubmatch(s)
	if m == nil {
		return Span{}, false
	}
	u, err := units.Lookup(m[2])
	if err != nil {
		return Span{}, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n == math.MinInt64 {
		return Span{}, false
	}
	return Of(n, u), true
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func lower(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}
