// Package catalog holds the named strftime templates dt falls back to when
// parsing, and that it uses to render the same instant in several formats.
package catalog

import (
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// Entry is a named strftime template.
type Entry struct {
	Name        string
	Template    string
	Description string
	// DateOnly marks templates with no time or offset; values parsed with
	// them are midnight in the system zone.
	DateOnly bool
}

// Parse parses value with the entry's template. Values without an offset come
// back in UTC; callers decide which zone the civil fields belong to. A weekday
// in the value must be well formed but is not checked against the date.
func (e Entry) Parse(value string) (time.Time, error) {
	return strftime.Parse(e.Template, value)
}

// HasOffset reports whether the template carries a numeric UTC offset.
func (e Entry) HasOffset() bool {
	return strings.Contains(e.Template, "%z") || strings.Contains(e.Template, "%:z")
}

// Format renders t with the entry's template.
func (e Entry) Format(t time.Time) string {
	return strftime.Format(e.Template, t)
}

var entries = []Entry{
	{
		Name:        "short_date",
		Template:    "%Y-%m-%d",
		Description: "ISO 8601 calendar date",
		DateOnly:    true,
	},
	{
		Name:        "short_date_usa_2year",
		Template:    "%m/%d/%y",
		Description: "US month/day/year with a two digit year",
		DateOnly:    true,
	},
	{
		Name:        "short_date_usa_4year",
		Template:    "%m/%d/%Y",
		Description: "US month/day/year",
		DateOnly:    true,
	},
	{
		Name:        "iso8601_strict",
		Template:    "%Y-%m-%dT%H:%M:%S%:z",
		Description: "ISO 8601 date and time with offset",
	},
	{
		Name:        "iso8601_strict_fractional",
		Template:    "%Y-%m-%dT%H:%M:%S.%N%:z",
		Description: "ISO 8601 date and time with nanoseconds and offset",
	},
	{
		Name:        "rfc2822",
		Template:    "%a, %d %b %Y %H:%M:%S %z",
		Description: "RFC 2822 email date",
	},
	{
		Name:        "git_rfc2822",
		Template:    "%a, %-d %b %Y %H:%M:%S %z",
		Description: "git --date=rfc2822",
	},
	{
		Name:        "gitoxide",
		Template:    "%a %b %d %Y %H:%M:%S %z",
		Description: "gitoxide default date",
	},
	{
		Name:        "gitlog_default",
		Template:    "%a %b %-d %H:%M:%S %Y %z",
		Description: "git log default date",
	},
}

// Entries returns the whole catalog in parse precedence order. The returned
// slice is a copy.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// ShortDates returns the date-only entries in precedence order.
func ShortDates() []Entry {
	return filter(true)
}

// Timestamps returns the entries with a time of day, in precedence order.
func Timestamps() []Entry {
	return filter(false)
}

// Lookup returns the entry called name.
func Lookup(name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func filter(dateOnly bool) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.DateOnly == dateOnly {
			out = append(out, e)
		}
	}
	return out
}
