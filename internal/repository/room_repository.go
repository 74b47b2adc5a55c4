package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// RoomRepo persists rooms and acts as the availability ledger.  The
// available column is only ever flipped through MarkReserved and
// MarkAvailable.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

const roomColumns = `id, room_type, rate_cents, available, created_at, updated_at`

// Create inserts a room.  On success the generated ID is populated.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
	const q = `INSERT INTO rooms (room_type, rate_cents, available) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, room.Type, int64(room.Rate), room.Available)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	room.ID = uint64(id)
	return nil
}

// Get returns the room with the given ID or ErrNotFound.
func (r *RoomRepo) Get(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&room.ID, &room.Type, &room.Rate, &room.Available, &room.CreatedAt, &room.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// ListAvailable returns all rooms whose flag is set, ordered by ID.
func (r *RoomRepo) ListAvailable(ctx context.Context) ([]model.Room, error) {
	return r.list(ctx, `SELECT `+roomColumns+` FROM rooms WHERE available = 1 ORDER BY id`)
}

// ListAll returns every room ordered by ID.
func (r *RoomRepo) ListAll(ctx context.Context) ([]model.Room, error) {
	return r.list(ctx, `SELECT `+roomColumns+` FROM rooms ORDER BY id`)
}

func (r *RoomRepo) list(ctx context.Context, q string) ([]model.Room, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rooms := make([]model.Room, 0)
	for rows.Next() {
		var room model.Room
		if err := rows.Scan(&room.ID, &room.Type, &room.Rate, &room.Available, &room.CreatedAt, &room.UpdatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rooms, nil
}

// MarkReserved atomically flips the room from available to reserved.
// The conditional UPDATE makes check-and-flip a single statement, so of
// two concurrent callers only one sees an affected row.  It returns
// ErrAlreadyReserved when the flag was already false and ErrNotFound
// when the room does not exist.
func (r *RoomRepo) MarkReserved(ctx context.Context, id uint64) error {
	const q = `UPDATE rooms SET available = 0 WHERE id = ? AND available = 1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	// Nothing flipped: tell a missing room apart from a reserved one.
	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM rooms WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrAlreadyReserved
}

// MarkAvailable sets the flag regardless of its current value.  Calling
// it twice is harmless.
func (r *RoomRepo) MarkAvailable(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE rooms SET available = 1 WHERE id = ?`, id)
	return err
}
