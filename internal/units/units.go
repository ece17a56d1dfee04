// Package units maps textual unit names and abbreviations to canonical
// span units and extractable calendar parts.
package units

import (
	"strings"

	"github.com/jparise/dt/internal/dterr"
)

// Unit is a span unit. Units are ordered from finest to coarsest, so
// Nanosecond < Second < Year.
type Unit int8

const (
	Nanosecond Unit = iota
	Microsecond
	Millisecond
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

// All lists every span unit from coarsest to finest.
var All = []Unit{Year, Month, Week, Day, Hour, Minute, Second, Millisecond, Microsecond, Nanosecond}

var unitInfo = [...]struct {
	name   string
	abbrev string
	nanos  int64
}{
	Nanosecond:  {"nanosecond", "ns", 1},
	Microsecond: {"microsecond", "µs", 1e3},
	Millisecond: {"millisecond", "ms", 1e6},
	Second:      {"second", "secs", 1e9},
	Minute:      {"minute", "mins", 60e9},
	Hour:        {"hour", "hrs", 3600e9},
	Day:         {"day", "days", 0},
	Week:        {"week", "wks", 0},
	Month:       {"month", "mths", 0},
	Year:        {"year", "yrs", 0},
}

func (u Unit) String() string {
	if u < Nanosecond || u > Year {
		return "unknown"
	}
	return unitInfo[u].name
}

// Abbrev returns the suffix used when rendering an amount of u for humans.
func (u Unit) Abbrev() string {
	return unitInfo[u].abbrev
}

// Nanos returns the fixed length of u in nanoseconds, or 0 for calendar
// units (days and longer) whose length depends on the date.
func (u Unit) Nanos() int64 {
	return unitInfo[u].nanos
}

// IsCalendar reports whether u has no fixed length.
func (u Unit) IsCalendar() bool {
	return u >= Day
}

// Part is a calendar field that can be extracted from a zoned value.
type Part int8

const (
	PartYear Part = iota
	PartQuarter
	PartMonth
	PartDayOfYear
	PartDay
	PartWeek
	PartWeekday
	PartHour
	PartMinute
	PartSecond
	PartMillisecond
	PartMicrosecond
	PartNanosecond
)

// Entry is one row of the registry.
type Entry struct {
	Part        Part
	Name        string
	Aliases     []string
	Description string
}

// Unit returns the span unit measuring p. Parts with no span
// equivalent (quarter, day of year, weekday) report false.
func (p Part) Unit() (Unit, bool) {
	switch p {
	case PartYear:
		return Year, true
	case PartMonth:
		return Month, true
	case PartDay:
		return Day, true
	case PartWeek:
		return Week, true
	case PartHour:
		return Hour, true
	case PartMinute:
		return Minute, true
	case PartSecond:
		return Second, true
	case PartMillisecond:
		return Millisecond, true
	case PartMicrosecond:
		return Microsecond, true
	case PartNanosecond:
		return Nanosecond, true
	}
	return 0, false
}

func (p Part) String() string {
	for _, e := range registry {
		if e.Part == p {
			return e.Name
		}
	}
	return "unknown"
}

var registry = []Entry{
	{PartYear, "year", []string{"year", "years", "yyyy", "yy", "yr", "yrs"}, "calendar year"},
	{PartQuarter, "quarter", []string{"quarter", "qq", "q", "qs", "qtr"}, "quarter of the year, 1 to 4"},
	{PartMonth, "month", []string{"month", "months", "mth", "mths", "mm", "m", "mon"}, "month of the year, 1 to 12"},
	{PartDayOfYear, "dayofyear", []string{"dayofyear", "dy", "y", "doy"}, "day of the year, 1 to 366"},
	{PartDay, "day", []string{"day", "days", "dd", "d"}, "day of the month"},
	{PartWeek, "week", []string{"week", "weeks", "ww", "wk", "wks", "iso_week", "isowk", "isoww"}, "ISO 8601 week number, 1 to 53"},
	{PartWeekday, "weekday", []string{"weekday", "wd", "wds", "w"}, "day of the week, 0 (Sunday) to 6 (Saturday)"},
	{PartHour, "hour", []string{"hour", "hours", "hh", "hr", "hrs"}, "hour of the day, 0 to 23"},
	{PartMinute, "minute", []string{"minute", "minutes", "mi", "n", "min", "mins"}, "minute of the hour"},
	{PartSecond, "second", []string{"second", "seconds", "ss", "s", "sec", "secs"}, "second of the minute"},
	{PartMillisecond, "millisecond", []string{"millisecond", "ms", "millis"}, "millisecond of the second"},
	{PartMicrosecond, "microsecond", []string{"microsecond", "mcs", "us", "µs", "micros"}, "microsecond of the second"},
	{PartNanosecond, "nanosecond", []string{"nanosecond", "ns", "nano", "nanos"}, "nanosecond of the second"},
}

var aliases = func() map[string]Part {
	m := make(map[string]Part)
	for _, e := range registry {
		for _, a := range e.Aliases {
			m[a] = e.Part
		}
	}
	return m
}()

// Entries returns the registry in listing order. The returned slice is a
// copy.
func Entries() []Entry {
	out := make([]Entry, len(registry))
	copy(out, registry)
	return out
}

// LookupPart resolves a name or abbreviation to a calendar part. Lookup is
// case-insensitive and ignores surrounding whitespace.
func LookupPart(alias string) (Part, error) {
	p, ok := aliases[strings.ToLower(strings.TrimSpace(alias))]
	if !ok {
		return 0, dterr.Unit(alias)
	}
	return p, nil
}

// Lookup resolves a name or abbreviation to a span unit. Aliases of parts
// with no span equivalent, such as quarter, are unknown units here.
func Lookup(alias string) (Unit, error) {
	p, err := LookupPart(alias)
	if err != nil {
		return 0, err
	}
	u, ok := p.Unit()
	if !ok {
		return 0, dterr.Unit(alias)
	}
	return u, nil
}
