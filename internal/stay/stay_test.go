package stay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

func TestValidate(t *testing.T) {
	day := 24 * time.Hour
	tests := []struct {
		name     string
		in, out  time.Time
		expected error
	}{
		{"inverted", today.Add(day), today, ErrInvertedRange},
		{"past check-in", today.Add(-day), today.Add(day), ErrPastCheckIn},
		{"same day", today, today, nil},
		{"future stay", today.Add(10 * day), today.Add(13 * day), nil},
		{"inverted and past reports inverted", today.Add(-day), today.Add(-2 * day), ErrInvertedRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in, tt.out, today)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestValidateIgnoresTimeOfDay(t *testing.T) {
	now := today.Add(18 * time.Hour)
	checkIn := today.Add(9 * time.Hour)
	assert.NoError(t, Validate(checkIn, checkIn, now))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"01/06/2024", "2024-06-01", " 01/06/2024 "} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}
	for _, in := range []string{"", "31/02/2024", "06/01", "tomorrow"} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, ErrBadDate, in)
	}
}

func TestDay(t *testing.T) {
	loc := time.FixedZone("CEST", 2*60*60)
	late := time.Date(2024, 6, 1, 23, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Day(late))
}
