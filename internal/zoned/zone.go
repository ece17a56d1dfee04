package zoned

import (
	"slices"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
)

// Zone is either an IANA time zone or a fixed UTC offset.
type Zone struct {
	loc    *time.Location
	name   string
	fixed  bool
	offset int
}

// UTC is the IANA zone "UTC".
var UTC = Zone{loc: time.UTC, name: "UTC"}

// LoadZone loads the IANA zone called name.
func LoadZone(name string) (Zone, error) {
	if name == "" || name == "Local" {
		return Zone{}, errors.Errorf("%q is not an IANA time zone name", name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, errors.Wrapf(err, "unknown time zone %q", name)
	}
	return Zone{loc: loc, name: loc.String()}, nil
}

// FixedZone returns a zone whose offset from UTC is always seconds.
func FixedZone(seconds int) Zone {
	name := FormatOffset(seconds)
	return Zone{loc: time.FixedZone(name, seconds), name: name, fixed: true, offset: seconds}
}

// Name returns the IANA name, or the formatted offset for fixed zones.
func (z Zone) Name() string {
	return z.name
}

// IsZero reports whether z is the zero Zone.
func (z Zone) IsZero() bool {
	return z.loc == nil
}

// Location returns the *time.Location backing z.
func (z Zone) Location() *time.Location {
	return z.loc
}

func (z Zone) String() string {
	return z.name
}

// OffsetAt returns the UTC offset in seconds in effect at instant t.
func (z Zone) OffsetAt(t time.Time) int {
	if z.fixed {
		return z.offset
	}
	_, off := t.In(z.loc).Zone()
	return off
}

// Candidates returns every instant whose wall clock reading in z equals
// wall, earliest first. wall carries the civil fields in UTC. The result has
// two entries inside a fold and none inside a gap.
func (z Zone) Candidates(wall time.Time) []time.Time {
	if z.fixed {
		return []time.Time{wall.Add(-time.Duration(z.offset) * time.Second)}
	}

	var out []time.Time
	for _, at := range []time.Time{wall.Add(-24 * time.Hour), wall, wall.Add(24 * time.Hour)} {
		off := z.OffsetAt(at)
		inst := wall.Add(-time.Duration(off) * time.Second)
		if z.OffsetAt(inst) != off {
			continue
		}
		if !slices.ContainsFunc(out, inst.Equal) {
			out = append(out, inst)
		}
	}
	slices.SortFunc(out, func(a, b time.Time) int { return a.Compare(b) })
	return out
}

// Compatible resolves wall to a single instant the way RFC 5545 and most
// calendaring systems do: the earlier instant of a fold, and for a gap the
// wall clock shifted forward by the gap's length.
func (z Zone) Compatible(wall time.Time) time.Time {
	c := z.Candidates(wall)
	if len(c) > 0 {
		return c[0]
	}
	before := z.OffsetAt(wall.Add(-24 * time.Hour))
	return wall.Add(-time.Duration(before) * time.Second)
}

// FormatOffset formats an offset in seconds as ±HH:MM, or ±HH:MM:SS when the
// offset has a seconds component.
func FormatOffset(seconds int) string {
	return string(appendOffset(nil, seconds))
}

func appendOffset(b []byte, seconds int) []byte {
	sign := byte('+')
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	b = append(b, sign)
	b = append2(b, seconds/3600)
	b = append(b, ':')
	b = append2(b, seconds/60%60)
	if s := seconds % 60; s != 0 {
		b = append(b, ':')
		b = append2(b, s)
	}
	return b
}

func append2(b []byte, n int) []byte {
	if n < 10 {
		b = append(b, '0')
	}
	return strconv.AppendInt(b, int64(n), 10)
}
