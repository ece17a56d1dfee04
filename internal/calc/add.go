// Package calc adds spans to zoned values and measures the calendar
// difference between two of them.
package calc

import (
	"fmt"
	"time"

	"github.com/jparise/dt/internal/dterr"
	"github.com/jparise/dt/internal/span"
	"github.com/jparise/dt/internal/zoned"
)

const (
	maxSpanYears   = zoned.MaxYear - zoned.MinYear
	maxSpanDays    = maxSpanYears * 366
	maxSpanSeconds = maxSpanDays * 86400
)

// Add applies s to v. Years and months move the civil date first; a day past
// the end of the resulting month is clamped to its last day, so Jan 31 plus
// one month is the end of February. Weeks and days then move the civil date,
// and the wall clock is resolved in v's zone with compatible disambiguation.
// Hours and smaller units are added last as exact elapsed time.
func Add(v zoned.Value, s span.Span) (zoned.Value, error) {
	op := func(cause error) error {
		return dterr.Overflow(fmt.Sprintf("adding %s to %s", s, v), cause)
	}

	t := v.Time()
	if s.Largest().IsCalendar() {
		d, err := addDate(dateOf(v), s)
		if err != nil {
			return zoned.Value{}, op(err)
		}
		t = v.Zone().Compatible(d.wall(v))
	}

	secs, nanos, ok := timeParts(s)
	if !ok {
		return zoned.Value{}, op(nil)
	}
	t = time.Unix(t.Unix()+secs, int64(t.Nanosecond())+nanos)

	out, err := zoned.FromInstant(t, v.Zone())
	if err != nil {
		return zoned.Value{}, op(err)
	}
	return out, nil
}

// AddDuration adds an exact elapsed duration to v.
func AddDuration(v zoned.Value, d time.Duration) (zoned.Value, error) {
	out, err := zoned.FromInstant(v.Time().Add(d), v.Zone())
	if err != nil {
		return zoned.Value{}, dterr.Overflow(fmt.Sprintf("adding %s to %s", d, v), err)
	}
	return out, nil
}

func addDate(d date, s span.Span) (date, error) {
	if !within(s.Years, maxSpanYears) || !within(s.Months, maxSpanYears*12) ||
		!within(s.Weeks, maxSpanDays/7) || !within(s.Days, maxSpanDays) {
		return date{}, fmt.Errorf("span %s is too large", s)
	}

	y, m := balanceYearMonth(int64(d.year)+s.Years, int64(d.month)+s.Months)
	if y < zoned.MinYear || y > zoned.MaxYear {
		return date{}, fmt.Errorf("year %d", y)
	}
	out := date{int(y), int(m), min(d.day, zoned.DaysIn(int(y), int(m)))}

	if days := s.Weeks*7 + s.Days; days != 0 {
		out = out.addDays(days)
		if out.year < zoned.MinYear || out.year > zoned.MaxYear {
			return date{}, fmt.Errorf("year %d", out.year)
		}
	}
	return out, nil
}

// timeParts totals the clock components of s as whole seconds plus a
// nanosecond remainder with the same sign.
func timeParts(s span.Span) (secs, nanos int64, ok bool) {
	if !within(s.Hours, maxSpanSeconds/3600) || !within(s.Minutes, maxSpanSeconds/60) ||
		!within(s.Seconds, maxSpanSeconds) || !within(s.Milliseconds, maxSpanSeconds*1e3) ||
		!within(s.Microseconds, maxSpanSeconds*1e6) {
		return 0, 0, false
	}
	secs = s.Hours*3600 + s.Minutes*60 + s.Seconds +
		s.Milliseconds/1e3 + s.Microseconds/1e6 + s.Nanoseconds/1e9
	nanos = s.Milliseconds%1e3*1e6 + s.Microseconds%1e6*1e3 + s.Nanoseconds%1e9
	return secs, nanos, true
}
