package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Date
	}{
		{"iso", "2025-03-17", Date{2025, time.March, 17}},
		{"us dashes", "03-17-2025", Date{2025, time.March, 17}},
		{"us slashes", "03/17/2025", Date{2025, time.March, 17}},
		{"long form", "March 17, 2025", Date{2025, time.March, 17}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestParseDate_Unrecognized(t *testing.T) {
	for _, input := range []string{"", "not a date", "17.03.2025", "sometime in March"} {
		_, err := ParseDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestDate_String(t *testing.T) {
	d := Date{2025, time.March, 7}
	assert.Equal(t, "2025-03-07", d.String())
}

func TestDate_After(t *testing.T) {
	earlier := Date{2025, time.March, 7}
	later := Date{2025, time.April, 1}

	assert.True(t, later.After(earlier))
	assert.False(t, earlier.After(later))
	assert.False(t, earlier.After(earlier))
}

func TestDate_Valid(t *testing.T) {
	tests := []struct {
		name string
		date Date
		want bool
	}{
		{"normal", Date{2025, time.March, 17}, true},
		{"leap day", Date{2024, time.February, 29}, true},
		{"nonexistent leap day", Date{2025, time.February, 29}, false},
		{"day overflow", Date{2025, time.April, 31}, false},
		{"year too old", Date{1999, time.June, 1}, false},
		{"year too far", Date{2101, time.June, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.date.Valid())
		})
	}
}
