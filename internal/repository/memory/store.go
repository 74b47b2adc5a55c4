// Package memory holds in-process implementations of the room, customer
// and reservation stores.  They back STORAGE=memory and the workflow
// tests, and report the same sentinel errors as the MySQL repositories.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// Store groups the three tables behind one lock so that reservation
// lookups see a consistent view of rooms and customers.
type Store struct {
	mu           sync.RWMutex
	rooms        map[uint64]model.Room
	customers    map[uint64]model.Customer
	reservations map[uint64]model.Reservation
	nextRoom     uint64
	nextCustomer uint64
	nextRes      uint64
	now          func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		rooms:        make(map[uint64]model.Room),
		customers:    make(map[uint64]model.Customer),
		reservations: make(map[uint64]model.Reservation),
		now:          time.Now,
	}
}

// Rooms returns the room ledger view of the store.
func (s *Store) Rooms() *Rooms { return &Rooms{s: s} }

// Customers returns the customer directory view of the store.
func (s *Store) Customers() *Customers { return &Customers{s: s} }

// Reservations returns the reservation record view of the store.
func (s *Store) Reservations() *Reservations { return &Reservations{s: s} }

// Rooms is the in-memory availability ledger.
type Rooms struct{ s *Store }

func (r *Rooms) Create(_ context.Context, room *model.Room) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRoom++
	room.ID = s.nextRoom
	room.CreatedAt = s.now()
	room.UpdatedAt = room.CreatedAt
	s.rooms[room.ID] = *room
	return nil
}

func (r *Rooms) Get(_ context.Context, id uint64) (*model.Room, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &room, nil
}

func (r *Rooms) ListAvailable(_ context.Context) ([]model.Room, error) {
	return r.list(func(room model.Room) bool { return room.Available }), nil
}

func (r *Rooms) ListAll(_ context.Context) ([]model.Room, error) {
	return r.list(func(model.Room) bool { return true }), nil
}

func (r *Rooms) list(keep func(model.Room) bool) []model.Room {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		if keep(room) {
			out = append(out, room)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// MarkReserved flips the flag under the write lock; the check and the
// flip cannot interleave with another caller.
func (r *Rooms) MarkReserved(_ context.Context, id uint64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		return repository.ErrNotFound
	}
	if !room.Reserve() {
		return repository.ErrAlreadyReserved
	}
	room.UpdatedAt = s.now()
	s.rooms[id] = room
	return nil
}

func (r *Rooms) MarkAvailable(_ context.Context, id uint64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	room, ok := s.rooms[id]
	if !ok {
		// Matches the SQL UPDATE, which silently touches nothing.
		return nil
	}
	room.Release()
	room.UpdatedAt = s.now()
	s.rooms[id] = room
	return nil
}

// Customers is the in-memory customer directory.
type Customers struct{ s *Store }

func (c *Customers) Create(_ context.Context, cu *model.Customer) error {
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCustomer++
	cu.ID = s.nextCustomer
	cu.CreatedAt = s.now()
	s.customers[cu.ID] = *cu
	return nil
}

func (c *Customers) Get(_ context.Context, id uint64) (*model.Customer, error) {
	s := c.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	cu, ok := s.customers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &cu, nil
}

func (c *Customers) Update(_ context.Context, cu *model.Customer) error {
	s := c.s
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.customers[cu.ID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.Name, cur.Phone, cur.Email = cu.Name, cu.Phone, cu.Email
	s.customers[cu.ID] = cur
	cu.CreatedAt = cur.CreatedAt
	return nil
}

func (c *Customers) List(_ context.Context) ([]model.Customer, error) {
	s := c.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Customer, 0, len(s.customers))
	for _, cu := range s.customers {
		out = append(out, cu)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Reservations is the in-memory reservation record store.
type Reservations struct{ s *Store }

func (r *Reservations) Create(_ context.Context, res *model.Reservation) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRes++
	res.ID = s.nextRes
	res.CreatedAt = s.now()
	s.reservations[res.ID] = *res
	return nil
}

func (r *Reservations) Get(_ context.Context, id uint64) (*model.ReservationDetail, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.reservations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d, ok := s.resolve(res)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &d, nil
}

func (r *Reservations) Delete(_ context.Context, id uint64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reservations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.reservations, id)
	return nil
}

// ListAll returns resolvable reservations, latest check-in first.
func (r *Reservations) ListAll(_ context.Context) ([]model.ReservationDetail, error) {
	return r.list(func(model.Reservation) bool { return true }), nil
}

// ListByCustomer returns one customer's resolvable reservations in the
// same order as ListAll.
func (r *Reservations) ListByCustomer(_ context.Context, customerID uint64) ([]model.ReservationDetail, error) {
	return r.list(func(res model.Reservation) bool { return res.CustomerID == customerID }), nil
}

func (r *Reservations) list(keep func(model.Reservation) bool) []model.ReservationDetail {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ReservationDetail, 0, len(s.reservations))
	for _, res := range s.reservations {
		if !keep(res) {
			continue
		}
		if d, ok := s.resolve(res); ok {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].CheckIn.After(out[j].CheckIn)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// resolve joins a reservation with its customer and room.  Callers hold
// at least the read lock.
func (s *Store) resolve(res model.Reservation) (model.ReservationDetail, bool) {
	cu, ok := s.customers[res.CustomerID]
	if !ok {
		return model.ReservationDetail{}, false
	}
	room, ok := s.rooms[res.RoomID]
	if !ok {
		return model.ReservationDetail{}, false
	}
	return model.ReservationDetail{Reservation: res, Customer: cu, Room: room}, true
}

// DeleteRoom and DeleteCustomer exist so tests can produce orphaned
// reservations; the service never removes either.
func (s *Store) DeleteRoom(id uint64) {
	s.mu.Lock()
	delete(s.rooms, id)
	s.mu.Unlock()
}

func (s *Store) DeleteCustomer(id uint64) {
	s.mu.Lock()
	delete(s.customers, id)
	s.mu.Unlock()
}
