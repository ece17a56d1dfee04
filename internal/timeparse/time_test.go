package timeparse

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/jparise/dt/internal/dterr"
	"github.com/jparise/dt/internal/zoned"
)

var fixedNow = time.Date(2024, 6, 15, 15, 4, 5, 0, time.UTC)

func newTestResolver(t *testing.T, policy Policy) *Resolver {
	t.Helper()
	chicago, err := zoned.LoadZone("America/Chicago")
	if err != nil {
		t.Fatal(err)
	}
	return NewResolver(Config{
		SystemZone: chicago,
		Now:        func() time.Time { return fixedNow },
		Policy:     policy,
	})
}

func TestResolve(t *testing.T) {
	r := newTestResolver(t, PreferEmbeddedOffset)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Short dates
		{"ISO date", "2017-08-25", "2017-08-25T00:00:00-05:00[America/Chicago]"},
		{"US date with two digit year", "08/25/17", "2017-08-25T00:00:00-05:00[America/Chicago]"},
		{"US date", "08/25/2017", "2017-08-25T00:00:00-05:00[America/Chicago]"},
		{"winter date", "2024-01-15", "2024-01-15T00:00:00-06:00[America/Chicago]"},
		{"surrounding space", "  2017-08-25\n", "2017-08-25T00:00:00-05:00[America/Chicago]"},

		// Zoned timestamps
		{"RFC 3339 offset", "2019-05-10T09:59:12-07:00", "2019-05-10T09:59:12-07:00[-07:00]"},
		{"RFC 3339 Z", "2018-10-27T10:00:00Z", "2018-10-27T10:00:00+00:00[UTC]"},
		{"compact offset", "2024-06-01T12:00:00+0530", "2024-06-01T12:00:00+05:30[+05:30]"},
		{"fraction", "2024-08-07T09:36:42.3673221-05:00", "2024-08-07T09:36:42.3673221-05:00[-05:00]"},
		{"offset and zone", "2024-06-01T12:00:00-05:00[America/Chicago]", "2024-06-01T12:00:00-05:00[America/Chicago]"},
		{"zone only", "2024-06-01T12:00:00[Europe/Paris]", "2024-06-01T12:00:00+02:00[Europe/Paris]"},
		{"zone only in a gap", "2024-03-10T02:30:00[America/Chicago]", "2024-03-10T03:30:00-05:00[America/Chicago]"},
		{"zone only in a fold", "2024-11-03T01:30:00[America/Chicago]", "2024-11-03T01:30:00-05:00[America/Chicago]"},
		{"offset picks the later fold", "2024-11-03T01:30:00-06:00[America/Chicago]", "2024-11-03T01:30:00-06:00[America/Chicago]"},
		{"date with zone", "2024-06-01[Europe/Paris]", "2024-06-01T00:00:00+02:00[Europe/Paris]"},
		{"Z with zone", "2024-06-01T12:00:00Z[America/New_York]", "2024-06-01T08:00:00-04:00[America/New_York]"},
		{"fixed offset annotation", "2024-06-01T12:00:00+05:30[+05:30]", "2024-06-01T12:00:00+05:30[+05:30]"},
		{"calendar annotation", "2024-06-01T12:00:00-05:00[America/Chicago][u-ca=iso8601]", "2024-06-01T12:00:00-05:00[America/Chicago]"},
		{"unknown annotation", "2024-06-01T12:00:00-05:00[foo=bar]", "2024-06-01T12:00:00-05:00[-05:00]"},
		{"space separator", "2024-06-01 12:00:00Z", "2024-06-01T12:00:00+00:00[UTC]"},

		// Catalog timestamps
		{"RFC 2822", "Fri, 25 Aug 2017 12:00:00 -0500", "2017-08-25T12:00:00-05:00[-05:00]"},
		{"RFC 2822 wrong weekday", "Mon, 25 Aug 2017 12:00:00 -0500", "2017-08-25T12:00:00-05:00[-05:00]"},
		{"git rfc2822", "Sat, 5 Aug 2017 12:00:00 +0200", "2017-08-05T12:00:00+02:00[+02:00]"},
		{"gitoxide", "Fri Aug 25 2017 12:00:00 -0500", "2017-08-25T12:00:00-05:00[-05:00]"},
		{"git log", "Fri Aug 25 12:00:00 2017 -0500", "2017-08-25T12:00:00-05:00[-05:00]"},

		// Unix timestamps
		{"epoch seconds", "1700000000", "2023-11-14T16:13:20-06:00[America/Chicago]"},
		{"epoch with @", "@0", "1969-12-31T18:00:00-06:00[America/Chicago]"},
		{"short epoch with @", "@2024", "1969-12-31T18:33:44-06:00[America/Chicago]"},
		{"nine digit epoch", "100000000", "1973-03-03T03:46:40-06:00[America/Chicago]"},
		{"epoch fraction", "@1700000000.25", "2023-11-14T16:13:20.25-06:00[America/Chicago]"},
		{"negative epoch fraction", "-1.5", "1969-12-31T17:59:58.5-06:00[America/Chicago]"},

		// Civil date and time
		{"civil datetime", "2017-08-25T12:00:00", "2017-08-25T12:00:00-05:00[America/Chicago]"},
		{"civil datetime without seconds", "2024-06-01 12:30", "2024-06-01T12:30:00-05:00[America/Chicago]"},
		{"civil datetime in a gap", "2024-03-10 02:30", "2024-03-10T03:30:00-05:00[America/Chicago]"},
		{"six digit year", "+002024-06-01", "2024-06-01T00:00:00-05:00[America/Chicago]"},

		// Time of day
		{"time", "09:30", "2024-06-15T09:30:00-05:00[America/Chicago]"},
		{"time with fraction", "23:15:30.5", "2024-06-15T23:15:30.5-05:00[America/Chicago]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.input)
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	r := newTestResolver(t, PreferEmbeddedOffset)

	tests := []struct {
		name  string
		input string
		kind  dterr.Kind
	}{
		{"empty string", "", dterr.UnparseableDatetime},
		{"just text", "not a date", dterr.UnparseableDatetime},
		{"next tuesday", "next tuesday", dterr.UnparseableDatetime},
		{"day out of range", "2024-02-30", dterr.InvalidCalendarField},
		{"month out of range", "2024-13-01 10:00", dterr.InvalidCalendarField},
		{"hour out of range", "2024-06-01T25:00:00Z", dterr.InvalidCalendarField},
		{"year out of range", "+012024-01-01", dterr.InvalidCalendarField},
		{"critical unknown zone", "2024-06-01T12:00:00Z[!Mars/Olympus]", dterr.UnparseableDatetime},
		{"unknown zone without offset", "2024-06-01T12:00:00[Mars/Olympus]", dterr.UnparseableDatetime},
		{"critical unknown calendar", "2024-06-01T12:00:00Z[!u-ca=hebrew]", dterr.UnparseableDatetime},
		{"two zones", "2024-06-01T12:00:00Z[UTC][Europe/Paris]", dterr.UnparseableDatetime},
		{"bare year", "2024", dterr.UnparseableDatetime},
		{"compact date", "20240102", dterr.UnparseableDatetime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Resolve(tt.input)
			if err == nil {
				t.Fatalf("Resolve(%q) succeeded, want %s error", tt.input, tt.kind)
			}
			if !dterr.IsKind(err, tt.kind) {
				t.Errorf("Resolve(%q) error = %v, want kind %s", tt.input, err, tt.kind)
			}
		})
	}
}

func TestResolveErrorNamesStrategies(t *testing.T) {
	r := newTestResolver(t, PreferEmbeddedOffset)

	_, err := r.Resolve("yesterday-ish")
	if err == nil {
		t.Fatal("Resolve succeeded")
	}
	for _, name := range []string{"yesterday-ish", "short_date", "rfc9557", "gitlog_default", "civil_time"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %q", err, name)
		}
	}
}

func TestOffsetConflictPolicy(t *testing.T) {
	const input = "2024-06-01T12:00:00-07:00[America/Chicago]"

	tests := []struct {
		policy  Policy
		want    string
		wantErr bool
	}{
		{PreferEmbeddedOffset, "2024-06-01T14:00:00-05:00[America/Chicago]", false},
		{PreferZoneRules, "2024-06-01T12:00:00-05:00[America/Chicago]", false},
		{RejectAmbiguous, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			got, err := newTestResolver(t, tt.policy).Resolve(input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Resolve(%q) error = %v, wantErr %v", input, err, tt.wantErr)
			}
			if !tt.wantErr && got.String() != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", input, got, tt.want)
			}
		})
	}

	// A matching offset is never a conflict.
	for _, policy := range []Policy{PreferEmbeddedOffset, PreferZoneRules, RejectAmbiguous} {
		got, err := newTestResolver(t, policy).Resolve("2024-11-03T01:30:00-06:00[America/Chicago]")
		if err != nil {
			t.Fatalf("%s: %v", policy, err)
		}
		if want := "2024-11-03T01:30:00-06:00[America/Chicago]"; got.String() != want {
			t.Errorf("%s: got %s, want %s", policy, got, want)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{"offset", PreferEmbeddedOffset, false},
		{"zone", PreferZoneRules, false},
		{"REJECT", RejectAmbiguous, false},
		{" zone ", PreferZoneRules, false},
		{"lenient", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePolicy(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveCanonicalRoundTrip(t *testing.T) {
	r := newTestResolver(t, RejectAmbiguous)

	paris, err := zoned.LoadZone("Europe/Paris")
	if err != nil {
		t.Fatal(err)
	}
	values := []struct {
		zone  zoned.Zone
		year  int
		nanos int
	}{
		{r.SystemZone(), 2024, 0},
		{r.SystemZone(), 1901, 123456789},
		{paris, 2024, 500},
		{zoned.UTC, 9999, 0},
		{zoned.FixedZone(5*3600 + 30*60), 2000, 100000000},
		{zoned.FixedZone(-(3*3600 + 1800 + 15)), 2010, 0},
		{zoned.UTC, 12, 0},
	}

	for _, tt := range values {
		v, err := zoned.New(tt.year, 11, 3, 1, 30, 15, tt.nanos, tt.zone)
		if err != nil {
			t.Fatal(err)
		}
		t.Run(v.String(), func(t *testing.T) {
			got, err := r.Resolve(v.String())
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", v, err)
			}
			if !got.Equal(v) {
				t.Errorf("Resolve(%q) = %s", v, got)
			}
		})
	}
}

func TestStrategies(t *testing.T) {
	r := newTestResolver(t, PreferEmbeddedOffset)

	want := []string{
		"short_date", "short_date_usa_2year", "short_date_usa_4year",
		"rfc9557",
		"iso8601_strict", "iso8601_strict_fractional", "rfc2822", "git_rfc2822", "gitoxide", "gitlog_default",
		"unix_timestamp", "civil_datetime", "civil_date", "civil_time",
	}
	if got := r.Strategies(); !slices.Equal(got, want) {
		t.Errorf("Strategies() = %v, want %v", got, want)
	}
}

func TestNowAndUnix(t *testing.T) {
	r := newTestResolver(t, PreferEmbeddedOffset)

	now, err := r.Now(zoned.Zone{})
	if err != nil {
		t.Fatal(err)
	}
	if want := "2024-06-15T10:04:05-05:00[America/Chicago]"; now.String() != want {
		t.Errorf("Now() = %s, want %s", now, want)
	}

	utc, err := r.Now(zoned.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if want := "2024-06-15T15:04:05+00:00[UTC]"; utc.String() != want {
		t.Errorf("Now(UTC) = %s, want %s", utc, want)
	}

	v, err := r.Unix(1700000000, zoned.UTC)
	if err != nil {
		t.Fatal(err)
	}
	if want := "2023-11-14T22:13:20+00:00[UTC]"; v.String() != want {
		t.Errorf("Unix() = %s, want %s", v, want)
	}

	if _, err := r.Unix(1<<40, zoned.Zone{}); !dterr.IsKind(err, dterr.DateOverflow) {
		t.Errorf("Unix(1<<40) error = %v, want DateOverflow", err)
	}
}
