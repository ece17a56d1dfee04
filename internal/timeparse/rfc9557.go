package timeparse

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jparise/dt/internal/dterr"
	"github.com/jparise/dt/internal/zoned"
)

var (
	zonedPattern = regexp.MustCompile(`^` + yearPattern + `-(\d{2})-(\d{2})` +
		`(?:[Tt ](\d{2}):(\d{2})(?::(\d{2})(?:[.,](\d{1,9}))?)?` +
		`([Zz]|[+-]\d{2}(?::?\d{2}(?::?\d{2})?)?)?)?` +
		`((?:\[[^\]]*\])*)$`)
	annotationPattern = regexp.MustCompile(`\[(!?)([^\]]*)\]`)
	offsetPattern     = regexp.MustCompile(`^[+-]\d{2}(?::?\d{2}(?::?\d{2})?)?$`)
)

// Calendar annotations that leave the Gregorian calendar unchanged.
var knownCalendars = map[string]bool{"iso8601": true, "gregory": true}

// zonedTimestamp recognizes timestamps that name their own zone with a
// numeric offset, a bracketed annotation, or both.
func (r *Resolver) zonedTimestamp(s string) (zoned.Value, error) {
	m := zonedPattern.FindStringSubmatch(s)
	if m == nil {
		return zoned.Value{}, noMatch("not an RFC 9557 timestamp")
	}
	offsetText, annotations := m[8], m[9]
	if offsetText == "" && annotations == "" {
		return zoned.Value{}, noMatch("no offset or zone annotation")
	}

	zone, err := annotatedZone(s, annotations)
	if err != nil {
		return zoned.Value{}, err
	}

	year, month, day := atoi(m[1]), atoi(m[2]), atoi(m[3])
	hour, minute, second, nanos := atoi(m[4]), atoi(m[5]), atoi(m[6]), int(fraction(m[7]))

	if offsetText == "" {
		if zone.IsZero() {
			return zoned.Value{}, dterr.Unparseable(s, []string{"rfc9557"})
		}
		return zoned.New(year, month, day, hour, minute, second, nanos, zone)
	}

	if err := zoned.ValidateDate(year, month, day); err != nil {
		return zoned.Value{}, err
	}
	if err := zoned.ValidateTime(hour, minute, second, nanos); err != nil {
		return zoned.Value{}, err
	}
	wall := time.Date(year, time.Month(month), day, hour, minute, second, nanos, time.UTC)

	offset, utc := parseOffset(offsetText)
	instant := wall.Add(-time.Duration(offset) * time.Second)
	switch {
	case zone.IsZero() && utc:
		return zoned.FromInstant(instant, zoned.UTC)
	case zone.IsZero():
		return zoned.FromInstant(instant, zoned.FixedZone(offset))
	case utc:
		// Z names the instant exactly and leaves the local offset to the zone.
		return zoned.FromInstant(instant, zone)
	}
	return r.reconcile(s, wall, offset, zone)
}

// reconcile resolves a civil time that has both an offset and a zone.
func (r *Resolver) reconcile(s string, wall time.Time, offset int, zone zoned.Zone) (zoned.Value, error) {
	instant := wall.Add(-time.Duration(offset) * time.Second)
	for _, c := range zone.Candidates(wall) {
		if c.Equal(instant) {
			return zoned.FromInstant(c, zone)
		}
	}

	switch r.cfg.Policy {
	case PreferZoneRules:
		return zoned.FromInstant(zone.Compatible(wall), zone)
	case RejectAmbiguous:
		return zoned.Value{}, &dterr.Error{
			Kind:    dterr.UnparseableDatetime,
			Input:   s,
			Message: fmt.Sprintf("offset %s is not valid in %s for %q", zoned.FormatOffset(offset), zone, s),
			Help:    "drop the offset or the zone annotation, or set offset_conflict to offset or zone",
		}
	}
	return zoned.FromInstant(instant, zone)
}

// annotatedZone returns the zone named by the bracketed suffix of s, or the
// zero Zone when there is none. Unknown annotations are ignored unless marked
// critical with "!".
func annotatedZone(s, annotations string) (zoned.Zone, error) {
	var zone zoned.Zone
	for _, a := range annotationPattern.FindAllStringSubmatch(annotations, -1) {
		critical, body := a[1] == "!", a[2]

		if key, value, ok := strings.Cut(body, "="); ok {
			if critical && (key != "u-ca" || !knownCalendars[value]) {
				return zoned.Zone{}, unsupported(s, a[0])
			}
			continue
		}

		if !zone.IsZero() {
			return zoned.Zone{}, unsupported(s, a[0])
		}
		if offsetPattern.MatchString(body) {
			offset, _ := parseOffset(body)
			zone = zoned.FixedZone(offset)
			continue
		}
		z, err := zoned.LoadZone(body)
		if err != nil {
			if critical {
				return zoned.Zone{}, &dterr.Error{
					Kind:    dterr.UnparseableDatetime,
					Input:   s,
					Message: fmt.Sprintf("unknown time zone %q in %q", body, s),
					Cause:   err,
				}
			}
			continue
		}
		zone = z
	}
	return zone, nil
}

func unsupported(s, annotation string) error {
	return &dterr.Error{
		Kind:    dterr.UnparseableDatetime,
		Input:   s,
		Message: fmt.Sprintf("unsupported annotation %s in %q", annotation, s),
	}
}

// parseOffset parses Z, ±HH, ±HHMM, ±HH:MM, ±HHMMSS, or ±HH:MM:SS into
// seconds east of UTC. utc reports the Z form.
func parseOffset(s string) (seconds int, utc bool) {
	if s == "Z" || s == "z" {
		return 0, true
	}
	digits := strings.ReplaceAll(s[1:], ":", "")
	seconds = atoi(digits[0:2]) * 3600
	if len(digits) >= 4 {
		seconds += atoi(digits[2:4]) * 60
	}
	if len(digits) >= 6 {
		seconds += atoi(digits[4:6])
	}
	if s[0] == '-' {
		seconds = -seconds
	}
	return seconds, false
}
