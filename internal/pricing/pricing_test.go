package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeTotal(t *testing.T) {
	rate := model.Cents(7000)
	d := date(2024, 6, 1)

	tests := []struct {
		name    string
		in, out time.Time
		want    model.Money
	}{
		{"same day is one night", d, d, rate},
		{"five nights", d, d.AddDate(0, 0, 5), model.Cents(35000)},
		{"three nights", d, date(2024, 6, 4), model.Cents(21000)},
		{"inverted is clamped", d.AddDate(0, 0, 3), d, rate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotal(tt.in, tt.out, rate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, int64(1), Nights(date(2024, 6, 1), date(2024, 6, 1)))
	assert.Equal(t, int64(3), Nights(date(2024, 6, 1), date(2024, 6, 4)))
	// month and leap-day boundaries
	assert.Equal(t, int64(2), Nights(date(2024, 2, 28), date(2024, 3, 1)))
	// time of day is ignored
	assert.Equal(t, int64(1), Nights(date(2024, 6, 1).Add(20*time.Hour), date(2024, 6, 2).Add(time.Hour)))
}

func TestNightsAcrossCenturies(t *testing.T) {
	// 7975 years of 365 days plus 1933 leap days.
	assert.Equal(t, int64(2912808), Nights(date(2024, 6, 1), date(9999, 6, 1)))
}

func TestComputeTotalZeroRate(t *testing.T) {
	d := date(2024, 6, 1)
	got, err := ComputeTotal(d, d.AddDate(0, 0, 2), 0)
	require.NoError(t, err)
	assert.Equal(t, model.Cents(0), got)
}

func TestComputeTotalOverflow(t *testing.T) {
	d := date(2024, 6, 1)
	_, err := ComputeTotal(d, d.AddDate(0, 0, 3), model.Cents(math.MaxInt64/2))
	assert.ErrorIs(t, err, model.ErrMoneyOverflow)

	_, err = ComputeTotal(d, date(9999, 6, 1), model.Cents(math.MaxInt64/1000))
	assert.ErrorIs(t, err, model.ErrMoneyOverflow)
}
