package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jparise/dt/internal/dterr"
)

func TestAliasClosure(t *testing.T) {
	for _, e := range Entries() {
		for _, a := range e.Aliases {
			p, err := LookupPart(a)
			require.NoError(t, err, "alias %q", a)
			assert.Equal(t, e.Part, p, "alias %q", a)
		}
	}
}

func TestAliasesAreUnique(t *testing.T) {
	seen := map[string]string{}
	for _, e := range Entries() {
		for _, a := range e.Aliases {
			if prev, ok := seen[a]; ok {
				t.Errorf("alias %q used by both %s and %s", a, prev, e.Name)
			}
			seen[a] = e.Name
		}
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		alias   string
		want    Unit
		wantErr bool
	}{
		{"yrs", Year, false},
		{"YYYY", Year, false},
		{" mth ", Month, false},
		{"m", Month, false},
		{"iso_week", Week, false},
		{"dd", Day, false},
		{"hr", Hour, false},
		{"mi", Minute, false},
		{"n", Minute, false},
		{"secs", Second, false},
		{"millis", Millisecond, false},
		{"us", Microsecond, false},
		{"nanos", Nanosecond, false},
		{"quarter", 0, true},
		{"doy", 0, true},
		{"wd", 0, true},
		{"fortnight", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			got, err := Lookup(tt.alias)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dterr.IsKind(err, dterr.UnknownUnit))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupPart(t *testing.T) {
	p, err := LookupPart("qtr")
	require.NoError(t, err)
	assert.Equal(t, PartQuarter, p)

	p, err = LookupPart("y")
	require.NoError(t, err)
	assert.Equal(t, PartDayOfYear, p)

	_, err = LookupPart("tz")
	assert.True(t, dterr.IsKind(err, dterr.UnknownUnit))
}

func TestUnitOrdering(t *testing.T) {
	for i := 1; i < len(All); i++ {
		assert.True(t, All[i-1] > All[i], "%s should be coarser than %s", All[i-1], All[i])
	}
	assert.True(t, Day.IsCalendar())
	assert.False(t, Hour.IsCalendar())
	assert.Equal(t, int64(3600e9), Hour.Nanos())
	assert.Equal(t, "µs", Microsecond.Abbrev())
	assert.Equal(t, "year", Year.String())
	assert.Equal(t, "dayofyear", PartDayOfYear.String())
}

func TestEntriesCount(t *testing.T) {
	assert.Len(t, Entries(), 13)
}
