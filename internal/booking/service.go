// Package booking implements the reservation workflow: it resolves the
// customer and room, validates the stay, claims the room on the
// availability ledger and persists the reservation, undoing the claim
// when persistence fails.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/pricing"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/stay"
)

// Deps wires a Service.  Rooms, Reservations and Customers are
// required; the rest fall back to no-op or system defaults.
type Deps struct {
	Rooms        Ledger
	Reservations RecordStore
	Customers    Customers
	Clock        Clock
	Publisher    EventPublisher
	Metrics      Metrics
	Logger       *slog.Logger
}

// Service runs reservation workflows.  It is safe for concurrent use
// as long as its stores are.
type Service struct {
	rooms        Ledger
	reservations RecordStore
	customers    Customers
	clock        Clock
	publisher    EventPublisher
	metrics      Metrics
	log          *slog.Logger
}

// NewService builds a Service.  It panics when a store is missing.
func NewService(d Deps) *Service {
	if d.Rooms == nil || d.Reservations == nil || d.Customers == nil {
		panic("nil store passed to booking.NewService")
	}
	s := &Service{
		rooms:        d.Rooms,
		reservations: d.Reservations,
		customers:    d.Customers,
		clock:        d.Clock,
		publisher:    d.Publisher,
		metrics:      d.Metrics,
		log:          d.Logger,
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.metrics == nil {
		s.metrics = nopMetrics{}
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	return s
}

// Request identifies a booking attempt.
type Request struct {
	CustomerID uint64
	RoomID     uint64
	CheckIn    time.Time
	CheckOut   time.Time
}

// Quote is the priced preview of a Request.
type Quote struct {
	Customer model.Customer
	Room     model.Room
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int64
	Total    model.Money
}

// releaseTimeout bounds a room release once it no longer follows the
// request context.
const releaseTimeout = 5 * time.Second

func persistenceErr(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistenceFailed, err)
}

// prepare runs the read-only steps of a booking: resolve the customer,
// resolve the room and check its flag, validate the stay and price it.
func (s *Service) prepare(ctx context.Context, req Request) (*Quote, string, error) {
	cust, err := s.customers.Get(ctx, req.CustomerID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "customer_not_found", ErrCustomerNotFound
	}
	if err != nil {
		return nil, "persistence_failed", persistenceErr(err)
	}

	room, err := s.rooms.Get(ctx, req.RoomID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "room_not_found", ErrRoomNotFound
	}
	if err != nil {
		return nil, "persistence_failed", persistenceErr(err)
	}
	if !room.Available {
		return nil, "room_unavailable", ErrRoomUnavailable
	}

	if err := stay.Validate(req.CheckIn, req.CheckOut, s.clock.Now()); err != nil {
		switch {
		case errors.Is(err, stay.ErrInvertedRange):
			return nil, "inverted_range", err
		default:
			return nil, "past_check_in", err
		}
	}

	in, out := stay.Day(req.CheckIn), stay.Day(req.CheckOut)
	total, err := pricing.ComputeTotal(in, out, room.Rate)
	if err != nil {
		return nil, "total_too_large", fmt.Errorf("%w: %w", ErrTotalTooLarge, err)
	}
	return &Quote{
		Customer: *cust,
		Room:     *room,
		CheckIn:  in,
		CheckOut: out,
		Nights:   pricing.Nights(in, out),
		Total:    total,
	}, "", nil
}

// Quote validates and prices a request without changing any state.
func (s *Service) Quote(ctx context.Context, req Request) (Quote, error) {
	q, _, err := s.prepare(ctx, req)
	if err != nil {
		return Quote{}, err
	}
	return *q, nil
}

// CreateReservation books a room for a customer.  On any failure no
// reservation exists afterwards and the room flag is as it was before
// the call.
func (s *Service) CreateReservation(ctx context.Context, req Request) (*model.ReservationDetail, error) {
	log := s.log.With("customer_id", req.CustomerID, "room_id", req.RoomID)

	q, reason, err := s.prepare(ctx, req)
	if err != nil {
		return nil, s.abort(ctx, log, reason, err)
	}

	if err := s.rooms.MarkReserved(ctx, req.RoomID); err != nil {
		if errors.Is(err, repository.ErrAlreadyReserved) || errors.Is(err, repository.ErrNotFound) {
			return nil, s.abort(ctx, log, "room_unavailable", ErrRoomUnavailable)
		}
		return nil, s.abort(ctx, log, "persistence_failed", persistenceErr(err))
	}

	res := &model.Reservation{
		CustomerID: req.CustomerID,
		RoomID:     req.RoomID,
		CheckIn:    q.CheckIn,
		CheckOut:   q.CheckOut,
		Total:      q.Total,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		s.metrics.Compensated()
		if cerr := s.release(ctx, req.RoomID); cerr != nil {
			log.ErrorContext(ctx, "compensation failed, room left reserved", "err", cerr, "cause", err)
			return nil, s.abort(ctx, log, "persistence_failed", persistenceErr(errors.Join(err, cerr)))
		}
		log.WarnContext(ctx, "reservation not persisted, room released", "err", err)
		return nil, s.abort(ctx, log, "persistence_failed", persistenceErr(err))
	}

	room := q.Room
	room.Reserve()
	detail := &model.ReservationDetail{Reservation: *res, Customer: q.Customer, Room: room}

	s.metrics.ReservationCreated()
	log.InfoContext(ctx, "reservation created", "reservation_id", res.ID, "nights", q.Nights, "total", q.Total.String())
	s.publish(ctx, EventReservationCreated, detail)
	return detail, nil
}

// CancelReservation deletes a reservation and then releases its room.
func (s *Service) CancelReservation(ctx context.Context, id uint64) (*model.ReservationDetail, error) {
	log := s.log.With("reservation_id", id)

	d, err := s.reservations.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, persistenceErr(err)
	}

	// Delete first: the room must never be available while a row still
	// references it.
	if err := s.reservations.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, persistenceErr(err)
	}
	if err := s.release(ctx, d.RoomID); err != nil {
		log.ErrorContext(ctx, "reservation deleted but room not released", "room_id", d.RoomID, "err", err)
		return nil, persistenceErr(err)
	}
	d.Room.Release()

	s.metrics.ReservationCancelled()
	log.InfoContext(ctx, "reservation cancelled", "room_id", d.RoomID)
	s.publish(ctx, EventReservationCancelled, d)
	return d, nil
}

// release frees a room on a context detached from the caller's
// cancellation.  A client that disconnects mid-request must not stop the
// room from being released.
func (s *Service) release(ctx context.Context, roomID uint64) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
	defer cancel()
	return s.rooms.MarkAvailable(ctx, roomID)
}

func (s *Service) abort(ctx context.Context, log *slog.Logger, reason string, err error) error {
	s.metrics.ReservationAborted(reason)
	lvl := slog.LevelInfo
	if reason == "persistence_failed" {
		lvl = slog.LevelWarn
	}
	log.Log(ctx, lvl, "reservation aborted", "reason", reason, "err", err)
	return err
}

func (s *Service) publish(ctx context.Context, typ string, d *model.ReservationDetail) {
	if s.publisher == nil {
		return
	}
	ev := Event{Type: typ, Reservation: *d, OccurredAt: time.Now().UTC()}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.WarnContext(ctx, "publish event", "type", typ, "reservation_id", d.ID, "err", err)
	}
}

// GetReservation returns one reservation with its customer and room.
func (s *Service) GetReservation(ctx context.Context, id uint64) (*model.ReservationDetail, error) {
	d, err := s.reservations.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, persistenceErr(err)
	}
	return d, nil
}

// ListReservations returns all reservations, latest check-in first.
func (s *Service) ListReservations(ctx context.Context) ([]model.ReservationDetail, error) {
	list, err := s.reservations.ListAll(ctx)
	if err != nil {
		return nil, persistenceErr(err)
	}
	return list, nil
}

// ListCustomerReservations returns one customer's reservations, latest
// check-in first.
func (s *Service) ListCustomerReservations(ctx context.Context, customerID uint64) ([]model.ReservationDetail, error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	list, err := s.reservations.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, persistenceErr(err)
	}
	return list, nil
}

// RegisterCustomer creates a customer.  The name is required.
func (s *Service) RegisterCustomer(ctx context.Context, in model.Customer) (*model.Customer, error) {
	c, err := normalizeCustomer(in)
	if err != nil {
		return nil, err
	}
	if err := s.customers.Create(ctx, &c); err != nil {
		return nil, persistenceErr(err)
	}
	s.log.InfoContext(ctx, "customer registered", "customer_id", c.ID)
	return &c, nil
}

// UpdateCustomer replaces the contact details of an existing customer.
func (s *Service) UpdateCustomer(ctx context.Context, id uint64, in model.Customer) (*model.Customer, error) {
	c, err := normalizeCustomer(in)
	if err != nil {
		return nil, err
	}
	c.ID = id
	if err := s.customers.Update(ctx, &c); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, persistenceErr(err)
	}
	return s.GetCustomer(ctx, id)
}

func normalizeCustomer(in model.Customer) (model.Customer, error) {
	c := model.Customer{
		Name:  strings.TrimSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
		Email: strings.TrimSpace(in.Email),
	}
	if c.Name == "" {
		return c, ErrInvalidCustomer
	}
	return c, nil
}

// GetCustomer returns a customer by id.
func (s *Service) GetCustomer(ctx context.Context, id uint64) (*model.Customer, error) {
	c, err := s.customers.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, persistenceErr(err)
	}
	return c, nil
}

// ListCustomers returns all customers ordered by id.
func (s *Service) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	list, err := s.customers.List(ctx)
	if err != nil {
		return nil, persistenceErr(err)
	}
	return list, nil
}

// CreateRoom adds an available room to the inventory.
func (s *Service) CreateRoom(ctx context.Context, roomType string, rate model.Money) (*model.Room, error) {
	roomType = strings.TrimSpace(roomType)
	if roomType == "" || rate < 0 {
		return nil, ErrInvalidRoom
	}
	room := &model.Room{Type: roomType, Rate: rate, Available: true}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, persistenceErr(err)
	}
	s.log.InfoContext(ctx, "room created", "room_id", room.ID, "type", room.Type, "rate", rate.String())
	return room, nil
}

// ListRooms returns every room ordered by id.
func (s *Service) ListRooms(ctx context.Context) ([]model.Room, error) {
	list, err := s.rooms.ListAll(ctx)
	if err != nil {
		return nil, persistenceErr(err)
	}
	return list, nil
}

// ListAvailableRooms returns rooms that can be booked, ordered by id.
func (s *Service) ListAvailableRooms(ctx context.Context) ([]model.Room, error) {
	list, err := s.rooms.ListAvailable(ctx)
	if err != nil {
		return nil, persistenceErr(err)
	}
	return list, nil
}
