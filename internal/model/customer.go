package model

import (
	"fmt"
	"time"
)

// Customer is a registered hotel guest.  Customers are created once at
// registration and referenced by reservations.  This struct corresponds
// to a row in the `customers` table.
//
// Fields:
//  ID        – primary key identifier assigned on registration.
//  Name      – guest name, never empty.
//  Phone     – free-text phone number.
//  Email     – free-text email address.
//  CreatedAt – registration timestamp.
type Customer struct {
	ID        uint64    // customers.id
	Name      string    // customers.name
	Phone     string    // customers.phone
	Email     string    // customers.email
	CreatedAt time.Time // customers.created_at
}

// Description is the display payload produced by Describable values.
type Description struct {
	Title   string `json:"title"`
	Details string `json:"details"`
}

// Describable is implemented by entities that know how to present
// themselves to a user without the caller knowing their concrete type.
type Describable interface {
	Describe() Description
}

// Describe implements Describable.
func (c Customer) Describe() Description {
	return Description{
		Title:   c.Name,
		Details: fmt.Sprintf("id=%d phone=%s email=%s", c.ID, c.Phone, c.Email),
	}
}
