package timeparse

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jparise/dt/internal/catalog"
	"github.com/jparise/dt/internal/dterr"
	"github.com/jparise/dt/internal/zoned"
)

// Config is the ambient state a Resolver reads. It is fixed when the
// Resolver is built.
type Config struct {
	// SystemZone is the zone for inputs that carry no zone of their own.
	SystemZone zoned.Zone
	// Now returns the current instant. Only bare times of day use it.
	Now func() time.Time
	// Policy reconciles an explicit offset with an annotated zone.
	Policy Policy
	Logger *slog.Logger
}

// errNoMatch marks an input a strategy does not recognize. Any other error
// from a strategy means it recognized the input but the input is invalid,
// and stops the cascade.
var errNoMatch = errors.New("no match")

func noMatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errNoMatch, fmt.Sprintf(format, args...))
}

type strategy struct {
	name  string
	parse func(s string) (zoned.Value, error)
}

// Resolver turns date and time strings into zoned values by trying an
// ordered list of strategies. The first strategy that recognizes the input
// decides the result.
//
// The order is:
//  1. short dates from the format catalog, at midnight in the system zone
//  2. RFC 9557 and RFC 3339 timestamps with an offset, a zone annotation, or both
//  3. the remaining catalog formats (RFC 2822, git log styles)
//  4. Unix timestamps in seconds, optionally prefixed with @
//  5. bare civil date and time in the system zone
//  6. bare civil date, at midnight in the system zone
//  7. bare time of day, on today's date in the system zone
type Resolver struct {
	cfg        Config
	strategies []strategy
}

// NewResolver returns a Resolver for cfg. A zero SystemZone means UTC and a
// nil Now means time.Now.
func NewResolver(cfg Config) *Resolver {
	if cfg.SystemZone.IsZero() {
		cfg.SystemZone = zoned.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	r := &Resolver{cfg: cfg}
	for _, e := range catalog.ShortDates() {
		r.strategies = append(r.strategies, strategy{e.Name, r.catalogDate(e)})
	}
	r.strategies = append(r.strategies, strategy{"rfc9557", r.zonedTimestamp})
	for _, e := range catalog.Timestamps() {
		r.strategies = append(r.strategies, strategy{e.Name, r.catalogTimestamp(e)})
	}
	r.strategies = append(r.strategies,
		strategy{"unix_timestamp", r.unixTimestamp},
		strategy{"civil_datetime", r.civilDateTime},
		strategy{"civil_date", r.civilDate},
		strategy{"civil_time", r.civilTime},
	)
	return r
}

// SystemZone returns the zone used for inputs without one.
func (r *Resolver) SystemZone() zoned.Zone {
	return r.cfg.SystemZone
}

// Strategies returns the strategy names in the order they are tried.
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.name
	}
	return names
}

// Resolve parses input. Surrounding whitespace is ignored.
func (r *Resolver) Resolve(input string) (zoned.Value, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return zoned.Value{}, dterr.Unparseable(input, r.Strategies())
	}

	for _, st := range r.strategies {
		v, err := st.parse(s)
		if err == nil {
			r.cfg.Logger.Debug("resolved", "tier", st.name, "input", s, "result", v.String())
			return v, nil
		}
		r.cfg.Logger.Debug("tier failed", "tier", st.name, "input", s, "err", err)
		if !errors.Is(err, errNoMatch) {
			return zoned.Value{}, err
		}
	}
	return zoned.Value{}, dterr.Unparseable(input, r.Strategies())
}

// Now returns the current instant in zone, or in the system zone when zone
// is the zero Zone.
func (r *Resolver) Now(zone zoned.Zone) (zoned.Value, error) {
	if zone.IsZero() {
		zone = r.cfg.SystemZone
	}
	return zoned.FromInstant(r.cfg.Now(), zone)
}

// Unix returns the instant secs seconds after the Unix epoch in zone, or in
// the system zone when zone is the zero Zone.
func (r *Resolver) Unix(secs int64, zone zoned.Zone) (zoned.Value, error) {
	if zone.IsZero() {
		zone = r.cfg.SystemZone
	}
	return zoned.FromInstant(time.Unix(secs, 0), zone)
}

func (r *Resolver) catalogDate(e catalog.Entry) func(string) (zoned.Value, error) {
	return func(s string) (zoned.Value, error) {
		t, err := e.Parse(s)
		if err != nil {
			return zoned.Value{}, noMatch("%v", err)
		}
		return zoned.New(t.Year(), int(t.Month()), t.Day(), 0, 0, 0, 0, r.cfg.SystemZone)
	}
}

func (r *Resolver) catalogTimestamp(e catalog.Entry) func(string) (zoned.Value, error) {
	return func(s string) (zoned.Value, error) {
		t, err := e.Parse(s)
		if err != nil {
			return zoned.Value{}, noMatch("%v", err)
		}
		if !e.HasOffset() {
			return zoned.New(t.Year(), int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), r.cfg.SystemZone)
		}
		_, off := t.Zone()
		return zoned.FromInstant(t, zoned.FixedZone(off))
	}
}

var unixPattern = regexp.MustCompile(`^(@?)([+-]?)(\d{1,12})(?:\.(\d{1,9}))?$`)

// minBareUnixDigits is the shortest integer read as Unix seconds without an
// @ prefix. Shorter ones, such as 2024 or 20240102, are left unparsed.
const minBareUnixDigits = 9

func (r *Resolver) unixTimestamp(s string) (zoned.Value, error) {
	m := unixPattern.FindStringSubmatch(s)
	if m == nil {
		return zoned.Value{}, noMatch("not an integer")
	}
	prefix, sign, digits, frac := m[1], m[2], m[3], m[4]
	if prefix == "" && len(digits) < minBareUnixDigits {
		return zoned.Value{}, noMatch("%d digits is too short for bare Unix seconds, prefix with @", len(digits))
	}
	secs, err := strconv.ParseInt(sign+digits, 10, 64)
	if err != nil {
		return zoned.Value{}, noMatch("%v", err)
	}
	nanos := fraction(frac)
	if sign == "-" {
		nanos = -nanos
	}
	return zoned.FromInstant(time.Unix(secs, nanos), r.cfg.SystemZone)
}

const (
	yearPattern = `([+-]\d{6}|\d{4})`
	timePattern = `(\d{1,2}):(\d{2})(?::(\d{2})(?:[.,](\d{1,9}))?)?`
)

var (
	civilDateTimePattern = regexp.MustCompile(`^` + yearPattern + `-(\d{1,2})-(\d{1,2})[Tt ]` + timePattern + `$`)
	civilDatePattern     = regexp.MustCompile(`^` + yearPattern + `-(\d{1,2})-(\d{1,2})$`)
	civilTimePattern     = regexp.MustCompile(`^` + timePattern + `$`)
)

func (r *Resolver) civilDateTime(s string) (zoned.Value, error) {
	m := civilDateTimePattern.FindStringSubmatch(s)
	if m == nil {
		return zoned.Value{}, noMatch("not a civil date and time")
	}
	return zoned.New(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4]), atoi(m[5]), atoi(m[6]), int(fraction(m[7])), r.cfg.SystemZone)
}

func (r *Resolver) civilDate(s string) (zoned.Value, error) {
	m := civilDatePattern.FindStringSubmatch(s)
	if m == nil {
		return zoned.Value{}, noMatch("not a civil date")
	}
	return zoned.New(atoi(m[1]), atoi(m[2]), atoi(m[3]), 0, 0, 0, 0, r.cfg.SystemZone)
}

func (r *Resolver) civilTime(s string) (zoned.Value, error) {
	m := civilTimePattern.FindStringSubmatch(s)
	if m == nil {
		return zoned.Value{}, noMatch("not a time of day")
	}
	today := r.cfg.Now().In(r.cfg.SystemZone.Location())
	return zoned.New(today.Year(), int(today.Month()), today.Day(), atoi(m[1]), atoi(m[2]), atoi(m[3]), int(fraction(m[4])), r.cfg.SystemZone)
}

// atoi converts a matched, possibly signed, decimal group. An empty group is
// zero.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// fraction converts up to nine fractional digits to nanoseconds.
func fraction(digits string) int64 {
	if digits == "" {
		return 0
	}
	n, _ := strconv.ParseInt(digits+strings.Repeat("0", 9-len(digits)), 10, 64)
	return n
}
