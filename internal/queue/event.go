// Package queue defines the reservation event payload exchanged over
// RabbitMQ and the consumer that records those events.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/hotel-reservation/internal/booking"
	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ReservationEvent is published after a reservation is created or
// cancelled.  It carries enough detail for consumers to log or notify
// without reading the primary database.
type ReservationEvent struct {
	EventID       string            `json:"event_id"`
	Type          string            `json:"type"`
	ReservationID uint64            `json:"reservation_id"`
	CustomerID    uint64            `json:"customer_id"`
	Customer      model.Description `json:"customer"`
	RoomID        uint64            `json:"room_id"`
	RoomType      string            `json:"room_type"`
	CheckIn       string            `json:"check_in"`
	CheckOut      string            `json:"check_out"`
	Total         string            `json:"total"`
	OccurredAt    string            `json:"occurred_at"`
}

// NewReservationEvent converts a workflow event to its wire form and
// assigns it a fresh id.
func NewReservationEvent(ev booking.Event) ReservationEvent {
	d := ev.Reservation
	return ReservationEvent{
		EventID:       uuid.NewString(),
		Type:          ev.Type,
		ReservationID: d.ID,
		CustomerID:    d.CustomerID,
		Customer:      d.Customer.Describe(),
		RoomID:        d.RoomID,
		RoomType:      d.Room.Type,
		CheckIn:       d.CheckIn.Format(time.DateOnly),
		CheckOut:      d.CheckOut.Format(time.DateOnly),
		Total:         d.Total.String(),
		OccurredAt:    ev.OccurredAt.UTC().Format(time.RFC3339),
	}
}
