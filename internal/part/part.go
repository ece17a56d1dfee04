// Package part extracts single calendar fields from zoned values.
package part

import (
	"github.com/jparise/dt/internal/units"
	"github.com/jparise/dt/internal/zoned"
)

// Extract returns the field of v named by alias. Weekdays count from
// Sunday=0; the week is the ISO 8601 week number, whose weeks start on
// Monday. The two conventions are separate and never mixed.
func Extract(v zoned.Value, alias string) (int16, error) {
	p, err := units.LookupPart(alias)
	if err != nil {
		return 0, err
	}
	return int16(Of(v, p)), nil
}

// Of returns the field p of v.
func Of(v zoned.Value, p units.Part) int {
	switch p {
	case units.PartYear:
		return v.Year()
	case units.PartQuarter:
		return v.Quarter()
	case units.PartMonth:
		return v.Month()
	case units.PartDayOfYear:
		return v.DayOfYear()
	case units.PartDay:
		return v.Day()
	case units.PartWeek:
		_, week := v.ISOWeek()
		return week
	case units.PartWeekday:
		return v.Weekday()
	case units.PartHour:
		return v.Hour()
	case units.PartMinute:
		return v.Minute()
	case units.PartSecond:
		return v.Second()
	case units.PartMillisecond:
		return v.Millisecond()
	case units.PartMicrosecond:
		return v.Microsecond()
	case units.PartNanosecond:
		return v.Nanosecond()
	}
	return 0
}

// Field is one extracted value, used when listing every part of a value.
type Field struct {
	Name  string
	Value int
}

// All extracts every registered part of v in registry order.
func All(v zoned.Value) []Field {
	entries := units.Entries()
	out := make([]Field, 0, len(entries))
	for _, e := range entries {
		out = append(out, Field{Name: e.Name, Value: Of(v, e.Part)})
	}
	return out
}
