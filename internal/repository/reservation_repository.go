package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations.  Lookups
// join the customers and rooms tables so that callers receive the
// resolved entities; a reservation whose customer or room has vanished
// is treated as absent rather than reported as an error.  Check-in and
// check-out are DATE columns.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// detailSelect loads a reservation together with its customer and room.
// The inner joins drop reservations whose referenced rows are missing.
const detailSelect = `SELECT r.id, r.customer_id, r.room_id, r.check_in, r.check_out, r.total_cents, r.created_at,
                             c.id, c.name, c.phone, c.email, c.created_at,
                             h.id, h.room_type, h.rate_cents, h.available, h.created_at, h.updated_at
                      FROM reservations r
                      JOIN customers c ON c.id = r.customer_id
                      JOIN rooms h ON h.id = r.room_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanDetail(s scanner) (model.ReservationDetail, error) {
	var d model.ReservationDetail
	err := s.Scan(
		&d.ID, &d.CustomerID, &d.RoomID, &d.CheckIn, &d.CheckOut, &d.Total, &d.Reservation.CreatedAt,
		&d.Customer.ID, &d.Customer.Name, &d.Customer.Phone, &d.Customer.Email, &d.Customer.CreatedAt,
		&d.Room.ID, &d.Room.Type, &d.Room.Rate, &d.Room.Available, &d.Room.CreatedAt, &d.Room.UpdatedAt,
	)
	return d, err
}

// Create inserts a new reservation and populates its generated ID.  The
// ID always comes from AUTO_INCREMENT, so an existing row is never
// overwritten.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (customer_id, room_id, check_in, check_out, total_cents) VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q,
		res.CustomerID, res.RoomID, res.CheckIn.Format("2006-01-02"), res.CheckOut.Format("2006-01-02"), int64(res.Total))
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	return nil
}

// Get returns the reservation with its customer and room, or ErrNotFound
// when the reservation or either referenced entity does not exist.
func (r *ReservationRepo) Get(ctx context.Context, id uint64) (*model.ReservationDetail, error) {
	d, err := scanDetail(r.db.QueryRowContext(ctx, detailSelect+` WHERE r.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes a reservation.  It returns ErrNotFound when no row was
// deleted.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns every resolvable reservation, most future-dated
// check-in first.  Ties are broken by ID descending so the order is
// deterministic.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.ReservationDetail, error) {
	return r.list(ctx, detailSelect+` ORDER BY r.check_in DESC, r.id DESC`)
}

// ListByCustomer returns the resolvable reservations of one customer in
// the same order as ListAll.
func (r *ReservationRepo) ListByCustomer(ctx context.Context, customerID uint64) ([]model.ReservationDetail, error) {
	return r.list(ctx, detailSelect+` WHERE r.customer_id = ? ORDER BY r.check_in DESC, r.id DESC`, customerID)
}

func (r *ReservationRepo) list(ctx context.Context, q string, args ...any) ([]model.ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]model.ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
