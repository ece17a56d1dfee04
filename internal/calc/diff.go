package calc

import (
	"fmt"
	"math"
	"time"

	"github.com/jparise/dt/internal/dterr"
	"github.com/jparise/dt/internal/span"
	"github.com/jparise/dt/internal/units"
	"github.com/jparise/dt/internal/zoned"
)

// Bounds selects the units a difference is reported in.
type Bounds struct {
	Smallest units.Unit
	Largest  units.Unit
	// As is set when a single output unit was requested.
	As bool
}

// DefaultBounds reports every unit from years down to nanoseconds.
func DefaultBounds() Bounds {
	return Bounds{Smallest: units.Nanosecond, Largest: units.Year}
}

// ParseBounds builds Bounds from unit names. as selects a single unit and
// cannot be combined with smallest or largest. Empty names keep the default.
func ParseBounds(as, smallest, largest string) (Bounds, error) {
	if as != "" && (smallest != "" || largest != "") {
		return Bounds{}, dterr.Conflicting()
	}

	b := DefaultBounds()
	if as != "" {
		u, err := units.Lookup(as)
		if err != nil {
			return Bounds{}, err
		}
		return Bounds{Smallest: u, Largest: u, As: true}, nil
	}
	if smallest != "" {
		u, err := units.Lookup(smallest)
		if err != nil {
			return Bounds{}, err
		}
		b.Smallest = u
	}
	if largest != "" {
		u, err := units.Lookup(largest)
		if err != nil {
			return Bounds{}, err
		}
		b.Largest = u
	}
	if b.Smallest > b.Largest {
		return Bounds{}, &dterr.Error{
			Kind:    dterr.ConflictingUnitOptions,
			Message: fmt.Sprintf("smallest unit %s is larger than largest unit %s", b.Smallest, b.Largest),
		}
	}
	return b, nil
}

// Difference is a rounded span together with the bounds that produced it.
type Difference struct {
	Span   span.Span
	Bounds Bounds
}

// Machine returns the ISO 8601 duration form of the difference.
func (d Difference) Machine() string {
	return d.Span.String()
}

// Human returns the abbreviated form. A single-unit difference renders only
// that unit.
func (d Difference) Human() string {
	if d.Bounds.As {
		return d.Span.HumanAs(d.Bounds.Largest)
	}
	return d.Span.Human(d.Bounds.Smallest)
}

// Diff returns the span from from to to, balanced up to b.Largest and
// rounded half away from zero at b.Smallest. Values in different zones are
// both read in UTC first. Without rounding, Add(from, span) == to.
func Diff(from, to zoned.Value, b Bounds) (Difference, error) {
	if from.Zone().Name() != to.Zone().Name() {
		var err error
		if from, err = from.In(zoned.UTC); err != nil {
			return Difference{}, err
		}
		if to, err = to.In(zoned.UTC); err != nil {
			return Difference{}, err
		}
	}

	raw, err := until(from, to, b.Largest)
	if err != nil {
		return Difference{}, err
	}
	rounded, err := round(from, to, raw, b)
	if err != nil {
		return Difference{}, err
	}
	return Difference{Span: rounded, Bounds: b}, nil
}

// until computes the exact span from from to to. Both values share a zone.
func until(from, to zoned.Value, largest units.Unit) (span.Span, error) {
	sign := to.Compare(from)
	if sign == 0 {
		return span.Span{}, nil
	}
	if !largest.IsCalendar() {
		return balanceTime(between(from.Time(), to.Time()), largest)
	}

	// Find the last date, walking back from to's date, whose wall clock
	// reading at from's time of day is not past to.
	fromDate, toDate := dateOf(from), dateOf(to)
	correction := 0
	if sgn(clockNanos(to)-clockNanos(from)) == -sign {
		correction = 1
	}
	maxCorrection := 1
	if sign > 0 {
		maxCorrection = 2
	}

	var (
		mid     date
		rem     time.Duration
		success bool
	)
	for ; correction <= maxCorrection; correction++ {
		mid = toDate.addDays(int64(-correction * sign))
		rem = to.Time().Sub(from.Zone().Compatible(mid.wall(from)))
		if sgn(int64(rem)) != -sign {
			success = true
			break
		}
	}
	if !success {
		return span.Span{}, fmt.Errorf("no intermediate date between %s and %s", from, to)
	}

	out := dateUntil(fromDate, mid, largest)
	clock, err := balanceTime(exact{secs: int64(rem / time.Second), nanos: int64(rem % time.Second)}, units.Hour)
	if err != nil {
		return span.Span{}, err
	}
	out.Hours, out.Minutes, out.Seconds = clock.Hours, clock.Minutes, clock.Seconds
	out.Milliseconds, out.Microseconds, out.Nanoseconds = clock.Milliseconds, clock.Microseconds, clock.Nanoseconds
	return out, nil
}

// dateUntil measures whole years and months first, counting a month as
// complete only once the day of the month is reached, then counts the
// remaining days from the month-clamped anchor.
func dateUntil(one, two date, largest units.Unit) span.Span {
	sign := two.compare(one)
	if sign == 0 {
		return span.Span{}
	}

	var years, months int64
	if largest >= units.Month {
		candidate := int64(two.year - one.year)
		if candidate != 0 {
			candidate -= int64(sign)
		}
		for !surpasses(sign, int64(one.year)+candidate, int64(one.month), one.day, two) {
			years = candidate
			candidate += int64(sign)
		}

		candidate = int64(sign)
		y, m := balanceYearMonth(int64(one.year)+years, int64(one.month)+candidate)
		for !surpasses(sign, y, m, one.day, two) {
			months = candidate
			candidate += int64(sign)
			y, m = balanceYearMonth(int64(one.year)+years, int64(one.month)+candidate)
		}

		if largest == units.Month {
			months += years * 12
			years = 0
		}
	}

	y, m := balanceYearMonth(int64(one.year)+years, int64(one.month)+months)
	anchor := date{int(y), int(m), min(one.day, zoned.DaysIn(int(y), int(m)))}
	days := two.epochDays() - anchor.epochDays()

	var weeks int64
	if largest == units.Week {
		weeks, days = days/7, days%7
	}
	return span.Span{Years: years, Months: months, Weeks: weeks, Days: days}
}

// exact is an elapsed time as seconds plus a nanosecond remainder of the
// same sign.
type exact struct {
	secs  int64
	nanos int64
}

func between(a, b time.Time) exact {
	e := exact{secs: b.Unix() - a.Unix(), nanos: int64(b.Nanosecond() - a.Nanosecond())}
	switch {
	case e.secs > 0 && e.nanos < 0:
		e.secs--
		e.nanos += 1e9
	case e.secs < 0 && e.nanos > 0:
		e.secs++
		e.nanos -= 1e9
	}
	return e
}

func (e exact) sign() int {
	if e.secs != 0 {
		return sgn(e.secs)
	}
	return sgn(e.nanos)
}

// balanceTime spreads e over the clock units from largest down.
func balanceTime(e exact, largest units.Unit) (span.Span, error) {
	var s span.Span
	secs, nanos := e.secs, e.nanos
	switch largest {
	case units.Millisecond:
		s.Milliseconds = secs*1e3 + nanos/1e6
	case units.Microsecond:
		s.Microseconds = secs*1e6 + nanos/1e3
	case units.Nanosecond:
		if !within(secs, math.MaxInt64/1_000_000_000-1) {
			return span.Span{}, dterr.OverflowLimit("a difference in nanoseconds", "the int64 nanosecond range of about 292 years")
		}
		s.Nanoseconds = secs*1e9 + nanos
		return s, nil
	default:
		if largest >= units.Hour {
			s.Hours, secs = secs/3600, secs%3600
		}
		if largest >= units.Minute {
			s.Minutes, secs = secs/60, secs%60
		}
		s.Seconds = secs
		s.Milliseconds = nanos / 1e6
	}
	if largest != units.Microsecond {
		s.Microseconds = nanos / 1e3 % 1e3
	}
	s.Nanoseconds = nanos % 1e3
	return s, nil
}

func round(from, to zoned.Value, raw span.Span, b Bounds) (span.Span, error) {
	if b.Smallest == units.Nanosecond || raw.IsZero() {
		return raw, nil
	}

	if !b.Largest.IsCalendar() {
		e := between(from.Time(), to.Time())
		return balanceTime(roundExact(e, b.Smallest.Nanos()), b.Largest)
	}

	if !b.Smallest.IsCalendar() {
		// Round the clock part, then let a rounded-up clock spill into the
		// calendar units by measuring again.
		dates := span.Span{Years: raw.Years, Months: raw.Months, Weeks: raw.Weeks, Days: raw.Days}
		secs, nanos, _ := timeParts(raw)
		clock := roundHalfExpand(secs*1e9+nanos, b.Smallest.Nanos())
		target, err := Add(from, dates.With(units.Nanosecond, clock))
		if err != nil {
			return span.Span{}, err
		}
		return until(from, target, b.Largest)
	}

	return roundCalendar(from, to, raw, b)
}

// roundExact rounds e half away from zero to a multiple of inc nanoseconds.
func roundExact(e exact, inc int64) exact {
	sign := int64(e.sign())
	if inc >= 1e9 {
		step := inc / 1e9
		q := e.secs / step
		r := (e.secs%step)*1e9 + e.nanos
		if 2*r*sign >= inc {
			q += sign
		}
		return exact{secs: q * step}
	}
	nanos := roundHalfExpand(e.nanos, inc)
	if nanos == 1e9 || nanos == -1e9 {
		return exact{secs: e.secs + sign}
	}
	return exact{secs: e.secs, nanos: nanos}
}

func roundHalfExpand(n, inc int64) int64 {
	q, r := n/inc, n%inc
	if r < 0 {
		r = -r
	}
	if 2*r >= inc {
		if n < 0 {
			q--
		} else {
			q++
		}
	}
	return q * inc
}

// roundCalendar rounds to a whole number of days, weeks, months, or years.
// The candidate spans on either side are applied to from, and the one whose
// end to is at least halfway towards wins.
func roundCalendar(from, to zoned.Value, raw span.Span, b Bounds) (span.Span, error) {
	sign := int64(raw.Sign())

	var start span.Span
	switch b.Smallest {
	case units.Year:
		start = span.Span{Years: raw.Years}
	case units.Month:
		start = span.Span{Years: raw.Years, Months: raw.Months}
	case units.Week:
		start = span.Span{Years: raw.Years, Months: raw.Months, Weeks: raw.Weeks + raw.Days/7}
	default:
		start = span.Span{Years: raw.Years, Months: raw.Months, Weeks: raw.Weeks, Days: raw.Days}
	}
	end := start.With(b.Smallest, start.Get(b.Smallest)+sign)

	startT, err := Add(from, start)
	if err != nil {
		return span.Span{}, err
	}
	endT, err := Add(from, end)
	if err != nil {
		return span.Span{}, err
	}

	progress := to.Time().Sub(startT.Time())
	total := endT.Time().Sub(startT.Time())
	if 2*absDuration(progress) < absDuration(total) {
		return start, nil
	}

	// Rounding up may complete a larger unit; carry into it.
	result := end
	for u := b.Smallest + 1; u <= b.Largest; u++ {
		if u == units.Week && b.Largest != units.Week {
			continue
		}
		var carried span.Span
		switch u {
		case units.Week:
			carried = span.Span{Years: result.Years, Months: result.Months, Weeks: result.Weeks + sign}
		case units.Month:
			carried = span.Span{Years: result.Years, Months: result.Months + sign}
		case units.Year:
			carried = span.Span{Years: result.Years + sign}
		default:
			continue
		}
		carriedT, err := Add(from, carried)
		if err != nil {
			break
		}
		if sgn(int64(endT.Time().Sub(carriedT.Time()))) == -int(sign) {
			break
		}
		result = carried
	}
	return result, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
