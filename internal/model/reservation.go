package model

import "time"

// Reservation links a customer to a room for a stay period.  CheckIn is
// inclusive and CheckOut exclusive; both are calendar dates at UTC
// midnight.  Total is always nights(CheckIn, CheckOut) * room rate,
// computed when the reservation is created.  Cancelling a reservation
// deletes the row; there is no cancelled state.
//
// Fields:
//  ID         – primary key identifier.
//  CustomerID – customer who holds the reservation.
//  RoomID     – reserved room.
//  CheckIn    – first night of the stay.
//  CheckOut   – departure date.
//  Total      – charge for the whole stay.
//  CreatedAt  – creation timestamp.
type Reservation struct {
	ID         uint64    // reservations.id
	CustomerID uint64    // reservations.customer_id
	RoomID     uint64    // reservations.room_id
	CheckIn    time.Time // reservations.check_in
	CheckOut   time.Time // reservations.check_out
	Total      Money     // reservations.total_cents
	CreatedAt  time.Time // reservations.created_at
}

// ReservationDetail is a reservation with its customer and room
// resolved.  It is what the record store returns from lookups.
type ReservationDetail struct {
	Reservation
	Customer Customer
	Room     Room
}
