package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when the staff password is blank.
var ErrEmptyPassword = errors.New("utils: staff password is empty")

// StaffPassword holds the bcrypt hash of the staff password.  The plain
// text is never retained.
type StaffPassword struct {
	hash []byte
}

// HashStaffPassword hashes plain.  A cost outside bcrypt's accepted
// range falls back to bcrypt.DefaultCost.
func HashStaffPassword(plain string, cost int) (StaffPassword, error) {
	if plain == "" {
		return StaffPassword{}, ErrEmptyPassword
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return StaffPassword{}, err
	}
	return StaffPassword{hash: h}, nil
}

// Matches reports whether plain is the staff password.
func (p StaffPassword) Matches(plain string) bool {
	if len(p.hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(p.hash, []byte(plain)) == nil
}

// Cost returns the bcrypt cost the hash was made with.
func (p StaffPassword) Cost() int {
	c, err := bcrypt.Cost(p.hash)
	if err != nil {
		return 0
	}
	return c
}
