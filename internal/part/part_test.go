package part

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jparise/dt/internal/dterr"
	"github.com/jparise/dt/internal/zoned"
)

func TestExtract(t *testing.T) {
	chi, err := zoned.LoadZone("America/Chicago")
	require.NoError(t, err)

	// A Sunday in ISO week 52 of 2020.
	v, err := zoned.New(2021, 1, 3, 14, 5, 9, 123456789, chi)
	require.NoError(t, err)

	tests := []struct {
		alias string
		want  int16
	}{
		{"year", 2021},
		{"yyyy", 2021},
		{"quarter", 1},
		{"q", 1},
		{"month", 1},
		{"mm", 1},
		{"dayofyear", 3},
		{"y", 3},
		{"day", 3},
		{"week", 53},
		{"iso_week", 53},
		{"weekday", 0},
		{"wd", 0},
		{"hour", 14},
		{"minute", 5},
		{"second", 9},
		{"millisecond", 123},
		{"microsecond", 456},
		{"ns", 789},
		{"YEAR", 2021},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			got, err := Extract(v, tt.alias)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractQuarters(t *testing.T) {
	want := map[int]int16{1: 1, 3: 1, 4: 2, 6: 2, 7: 3, 9: 3, 10: 4, 12: 4}
	for month, quarter := range want {
		v, err := zoned.New(2024, month, 15, 0, 0, 0, 0, zoned.UTC)
		require.NoError(t, err)

		got, err := Extract(v, "qtr")
		require.NoError(t, err)
		assert.Equal(t, quarter, got, "month %d", month)
	}
}

func TestExtractWeekdays(t *testing.T) {
	// 2024-06-02 is a Sunday.
	for day := 2; day <= 8; day++ {
		v, err := zoned.New(2024, 6, day, 0, 0, 0, 0, zoned.UTC)
		require.NoError(t, err)

		got, err := Extract(v, "weekday")
		require.NoError(t, err)
		assert.Equal(t, int16(day-2), got)
	}
}

func TestExtractUnknown(t *testing.T) {
	_, err := Extract(zoned.Value{}, "fortnight")
	require.Error(t, err)
	assert.True(t, dterr.IsKind(err, dterr.UnknownUnit))
	assert.Contains(t, err.Error(), "fortnight")
}

func TestAll(t *testing.T) {
	v, err := zoned.New(2024, 12, 30, 0, 0, 0, 0, zoned.UTC)
	require.NoError(t, err)

	fields := All(v)
	require.Len(t, fields, 13)
	assert.Equal(t, Field{Name: "year", Value: 2024}, fields[0])

	byName := make(map[string]int)
	for _, f := range fields {
		byName[f.Name] = f.Value
	}
	assert.Equal(t, 1, byName["week"])
	assert.Equal(t, 365, byName["dayofyear"])
	assert.Equal(t, 1, byName["weekday"])
}
