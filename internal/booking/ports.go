package booking

import (
	"context"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// Ledger tracks room availability.  MarkReserved must be an atomic
// compare-and-set: it fails with repository.ErrAlreadyReserved when the
// flag is already false.
type Ledger interface {
	Create(ctx context.Context, room *model.Room) error
	Get(ctx context.Context, id uint64) (*model.Room, error)
	ListAll(ctx context.Context) ([]model.Room, error)
	ListAvailable(ctx context.Context) ([]model.Room, error)
	MarkReserved(ctx context.Context, id uint64) error
	MarkAvailable(ctx context.Context, id uint64) error
}

// RecordStore persists reservations.
type RecordStore interface {
	Create(ctx context.Context, r *model.Reservation) error
	Get(ctx context.Context, id uint64) (*model.ReservationDetail, error)
	Delete(ctx context.Context, id uint64) error
	ListAll(ctx context.Context) ([]model.ReservationDetail, error)
	ListByCustomer(ctx context.Context, customerID uint64) ([]model.ReservationDetail, error)
}

// Customers is the customer directory.
type Customers interface {
	Create(ctx context.Context, c *model.Customer) error
	Get(ctx context.Context, id uint64) (*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
	List(ctx context.Context) ([]model.Customer, error)
}

// Clock supplies the current time.  Only its date is used.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
type SystemClock struct {
	Loc *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Loc == nil {
		return time.Now().UTC()
	}
	return time.Now().In(c.Loc)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Event types emitted after a successful operation.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
)

// Event describes a completed reservation change.
type Event struct {
	Type        string
	Reservation model.ReservationDetail
	OccurredAt  time.Time
}

// EventPublisher delivers events to interested parties.  Publish
// errors never fail the operation that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Metrics observes workflow outcomes.
type Metrics interface {
	ReservationCreated()
	ReservationCancelled()
	ReservationAborted(reason string)
	Compensated()
}

type nopMetrics struct{}

func (nopMetrics) ReservationCreated()       {}
func (nopMetrics) ReservationCancelled()     {}
func (nopMetrics) ReservationAborted(string) {}
func (nopMetrics) Compensated()              {}
