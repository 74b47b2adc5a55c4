package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidMoney is returned by ParseMoney for malformed, negative or
	// out-of-range amounts.
	ErrInvalidMoney = errors.New("model: invalid money amount")
	// ErrMoneyOverflow is returned when a product does not fit in Money.
	ErrMoneyOverflow = errors.New("model: money overflow")
)

// maxUnits is the largest whole amount ParseMoney accepts.
const maxUnits = (math.MaxInt64 - 99) / 100

// Money is an amount in minor units (cents).  Integer storage keeps
// totals exact; two decimals are used only for display.
type Money int64

// Cents builds a Money value from an amount in cents.
func Cents(c int64) Money { return Money(c) }

// Multiply returns m times n, or ErrMoneyOverflow when the product
// does not fit.  Both operands must be non-negative.
func (m Money) Multiply(n int64) (Money, error) {
	if m < 0 || n < 0 {
		return 0, ErrMoneyOverflow
	}
	if n != 0 && int64(m) > math.MaxInt64/n {
		return 0, ErrMoneyOverflow
	}
	return m * Money(n), nil
}

// String renders the amount with two decimals, e.g. "210.00".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// ParseMoney parses a non-negative decimal amount with at most two
// fractional digits ("70", "70.5", "70.00").
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, ErrInvalidMoney
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" || (hasFrac && (frac == "" || len(frac) > 2 || !digits(frac))) {
		return 0, ErrInvalidMoney
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > maxUnits {
		return 0, ErrInvalidMoney
	}
	var cents int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, _ = strconv.ParseInt(frac, 10, 64)
	}
	return Money(units*100 + cents), nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
