package calc

import (
	"time"

	"github.com/jparise/dt/internal/zoned"
)

// date is a civil calendar date. Month and day may be out of range in
// intermediate computations; norm folds them back.
type date struct {
	year, month, day int
}

func dateOf(v zoned.Value) date {
	return date{v.Year(), v.Month(), v.Day()}
}

func (d date) compare(o date) int {
	switch {
	case d.year != o.year:
		return cmpInt(d.year, o.year)
	case d.month != o.month:
		return cmpInt(d.month, o.month)
	}
	return cmpInt(d.day, o.day)
}

// epochDays returns the number of days since 1970-01-01.
func (d date) epochDays() int64 {
	return time.Date(d.year, time.Month(d.month), d.day, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// addDays moves d by n days. n must be small enough to fit in an int.
func (d date) addDays(n int64) date {
	t := time.Date(d.year, time.Month(d.month), d.day+int(n), 0, 0, 0, 0, time.UTC)
	return date{t.Year(), int(t.Month()), t.Day()}
}

// wall combines d with the wall clock of v, as a UTC-tagged civil time.
func (d date) wall(v zoned.Value) time.Time {
	return time.Date(d.year, time.Month(d.month), d.day, v.Hour(), v.Minute(), v.Second(), v.Subsec(), time.UTC)
}

// balanceYearMonth folds an out of range month into the year.
func balanceYearMonth(year, month int64) (int64, int64) {
	m := month - 1
	year += floorDiv(m, 12)
	return year, m - floorDiv(m, 12)*12 + 1
}

// clockNanos returns the nanoseconds elapsed on v's wall clock since midnight.
func clockNanos(v zoned.Value) int64 {
	return int64(v.Hour())*3600e9 + int64(v.Minute())*60e9 + int64(v.Second())*1e9 + int64(v.Subsec())
}

// surpasses reports whether the possibly unconstrained date y-m-d lies past
// other in the direction of sign.
func surpasses(sign int, y, m int64, d int, other date) bool {
	switch {
	case y != int64(other.year):
		return int64(sign)*(y-int64(other.year)) > 0
	case m != int64(other.month):
		return int64(sign)*(m-int64(other.month)) > 0
	case d != other.day:
		return sign*(d-other.day) > 0
	}
	return false
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func sgn(n int64) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func within(n, limit int64) bool {
	return n >= -limit && n <= limit
}
