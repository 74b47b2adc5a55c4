package model

import "time"

// Room represents a bookable hotel room.  The Available flag is the
// single source of truth for whether the room can be booked; it is
// false exactly while the room has an active reservation.  This struct
// corresponds to a row in the `rooms` table.
//
// Fields:
//  ID        – primary key identifier.
//  Type      – free-text category label (e.g. "Doble", "Suite").
//  Rate      – nightly rate.
//  Available – availability flag.
//  CreatedAt – timestamp when the room was created.
//  UpdatedAt – timestamp of last update.
type Room struct {
	ID        uint64    // rooms.id
	Type      string    // rooms.room_type
	Rate      Money     // rooms.rate_cents
	Available bool      // rooms.available
	CreatedAt time.Time // rooms.created_at
	UpdatedAt time.Time // rooms.updated_at
}

// Reserve flips the room to unavailable.  It reports false, leaving the
// room untouched, when the room was already reserved.
func (r *Room) Reserve() bool {
	if !r.Available {
		return false
	}
	r.Available = false
	return true
}

// Release makes the room available again.  Calling it on an available
// room is a no-op.
func (r *Room) Release() {
	r.Available = true
}
