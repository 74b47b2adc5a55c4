// Package pricing computes the charge for a stay.
package pricing

import (
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/stay"
)

const secondsPerDay = 24 * 60 * 60

// Nights returns the whole nights between two dates, never less than one.
// Every accepted stay is billed for at least one night, so same-day and
// inverted inputs yield 1.  Days are counted on Unix seconds since
// time.Duration saturates at about 292 years.
func Nights(checkIn, checkOut time.Time) int64 {
	n := (stay.Day(checkOut).Unix() - stay.Day(checkIn).Unix()) / secondsPerDay
	if n < 1 {
		return 1
	}
	return n
}

// ComputeTotal returns nights(checkIn, checkOut) * rate.  It fails with
// model.ErrMoneyOverflow when the total does not fit.
func ComputeTotal(checkIn, checkOut time.Time, rate model.Money) (model.Money, error) {
	return rate.Multiply(Nights(checkIn, checkOut))
}
