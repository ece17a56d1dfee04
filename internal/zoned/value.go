// Package zoned provides Value, a validated civil date and time attached to an
// IANA time zone or a fixed UTC offset.
package zoned

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jparise/dt/internal/dterr"
)

// Supported year range.
const (
	MinYear = -9999
	MaxYear = 9999
)

// Value is an instant paired with the zone used to read its calendar fields.
// The zero Value is not valid; values come from New or FromInstant and are
// immutable.
type Value struct {
	t    time.Time
	zone Zone
}

// New builds a Value from civil fields. Fields are range checked, and the
// civil time is resolved in zone with compatible disambiguation.
func New(year, month, day, hour, minute, second, nanosecond int, zone Zone) (Value, error) {
	if err := ValidateDate(year, month, day); err != nil {
		return Value{}, err
	}
	if err := ValidateTime(hour, minute, second, nanosecond); err != nil {
		return Value{}, err
	}
	wall := time.Date(year, time.Month(month), day, hour, minute, second, nanosecond, time.UTC)
	return FromInstant(zone.Compatible(wall), zone)
}

// FromInstant attaches zone to the instant t.
func FromInstant(t time.Time, zone Zone) (Value, error) {
	if zone.IsZero() {
		return Value{}, fmt.Errorf("zoned: missing time zone")
	}
	t = t.In(zone.loc)
	if y := t.Year(); y < MinYear || y > MaxYear {
		return Value{}, dterr.Overflow(fmt.Sprintf("year %d", y), nil)
	}
	return Value{t: t, zone: zone}, nil
}

// ValidateDate checks that year, month, and day name a real Gregorian date
// within the supported range.
func ValidateDate(year, month, day int) error {
	if year < MinYear || year > MaxYear {
		return dterr.Field("year", year)
	}
	if month < 1 || month > 12 {
		return dterr.Field("month", month)
	}
	if day < 1 || day > DaysIn(year, month) {
		return dterr.Field("day", day)
	}
	return nil
}

// ValidateTime checks that the clock fields are in range.
func ValidateTime(hour, minute, second, nanosecond int) error {
	switch {
	case hour < 0 || hour > 23:
		return dterr.Field("hour", hour)
	case minute < 0 || minute > 59:
		return dterr.Field("minute", minute)
	case second < 0 || second > 59:
		return dterr.Field("second", second)
	case nanosecond < 0 || nanosecond > 999_999_999:
		return dterr.Field("nanosecond", nanosecond)
	}
	return nil
}

// DaysIn returns the number of days in month of year.
func DaysIn(year, month int) int {
	switch month {
	case 2:
		if IsLeap(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	}
	return 31
}

// IsLeap reports whether year is a leap year in the proleptic Gregorian
// calendar.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func (v Value) Year() int       { return v.t.Year() }
func (v Value) Month() int      { return int(v.t.Month()) }
func (v Value) Day() int        { return v.t.Day() }
func (v Value) Hour() int       { return v.t.Hour() }
func (v Value) Minute() int     { return v.t.Minute() }
func (v Value) Second() int     { return v.t.Second() }
func (v Value) Zone() Zone      { return v.zone }
func (v Value) Time() time.Time { return v.t }

// Subsec returns the fraction of the second in nanoseconds, 0 to 999999999.
func (v Value) Subsec() int { return v.t.Nanosecond() }

// Millisecond, Microsecond, and Nanosecond split Subsec into three 0 to 999
// fields.
func (v Value) Millisecond() int { return v.t.Nanosecond() / 1e6 }
func (v Value) Microsecond() int { return v.t.Nanosecond() / 1e3 % 1e3 }
func (v Value) Nanosecond() int  { return v.t.Nanosecond() % 1e3 }

// Offset returns the UTC offset in seconds.
func (v Value) Offset() int {
	_, off := v.t.Zone()
	return off
}

// DayOfYear returns the day of the year, 1 to 366.
func (v Value) DayOfYear() int { return v.t.YearDay() }

// Quarter returns 1 for January to March, 2 for April to June, and so on.
func (v Value) Quarter() int { return (v.Month()-1)/3 + 1 }

// Weekday returns the day of the week counting from Sunday = 0. This is the
// convention for extracted weekdays; ISO week numbering uses ISOWeekday.
func (v Value) Weekday() int { return int(v.t.Weekday()) }

// ISOWeekday returns the ISO 8601 day of the week, Monday = 1 to Sunday = 7.
func (v Value) ISOWeekday() int {
	if wd := v.t.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

// ISOWeek returns the ISO 8601 week-numbering year and week. A week belongs
// to the year that contains its Thursday.
func (v Value) ISOWeek() (year, week int) {
	thursday := v.DayOfYear() + 4 - v.ISOWeekday()
	year = v.Year()
	if thursday < 1 {
		year--
		thursday += daysInYear(year)
	} else if n := daysInYear(year); thursday > n {
		thursday -= n
		year++
	}
	return year, (thursday-1)/7 + 1
}

func daysInYear(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// Compare orders values by instant.
func (v Value) Compare(o Value) int {
	return v.t.Compare(o.t)
}

// Equal reports whether v and o are the same instant in the same zone.
func (v Value) Equal(o Value) bool {
	return v.t.Equal(o.t) && v.zone.name == o.zone.name
}

// In returns the same instant read in zone.
func (v Value) In(zone Zone) (Value, error) {
	return FromInstant(v.t, zone)
}

// IsZero reports whether v is the zero Value.
func (v Value) IsZero() bool {
	return v.zone.IsZero()
}

// String returns the RFC 9557 form, YYYY-MM-DDTHH:MM:SS[.fffffffff]±HH:MM[Zone].
// Trailing zeros of the fraction are trimmed and a zero fraction is omitted.
func (v Value) String() string {
	b := make([]byte, 0, 64)
	b = AppendDate(b, v.Year(), v.Month(), v.Day())
	b = append(b, 'T')
	b = append2(b, v.Hour())
	b = append(b, ':')
	b = append2(b, v.Minute())
	b = append(b, ':')
	b = append2(b, v.Second())
	b = AppendFraction(b, v.Subsec())
	b = appendOffset(b, v.Offset())
	b = append(b, '[')
	b = append(b, v.zone.name...)
	b = append(b, ']')
	return string(b)
}

// AppendDate appends YYYY-MM-DD. Years outside 0 to 9999 use the signed six
// digit form, e.g. -000044.
func AppendDate(b []byte, year, month, day int) []byte {
	switch {
	case year < 0:
		b = append(b, '-')
		b = appendPadded(b, -year, 6)
	case year > 9999:
		b = append(b, '+')
		b = appendPadded(b, year, 6)
	default:
		b = appendPadded(b, year, 4)
	}
	b = append(b, '-')
	b = append2(b, month)
	b = append(b, '-')
	return append2(b, day)
}

// AppendFraction appends "." and the nanoseconds without trailing zeros, or
// nothing when nanos is zero.
func AppendFraction(b []byte, nanos int) []byte {
	if nanos == 0 {
		return b
	}
	digits := []byte(fmt.Sprintf("%09d", nanos))
	for digits[len(digits)-1] == '0' {
		digits = digits[:len(digits)-1]
	}
	b = append(b, '.')
	return append(b, digits...)
}

func appendPadded(b []byte, n, width int) []byte {
	s := strconv.Itoa(n)
	for i := len(s); i < width; i++ {
		b = append(b, '0')
	}
	return append(b, s...)
}
