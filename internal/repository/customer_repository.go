package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-reservation/internal/model"
)

// CustomerRepo persists registered customers.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo returns a CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// Create inserts a customer and populates its generated ID.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO customers (name, phone, email) VALUES (?,?,?)",
		c.Name, c.Phone, c.Email)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// Get fetches a customer by id.
func (r *CustomerRepo) Get(ctx context.Context, id uint64) (*model.Customer, error) {
	var c model.Customer
	err := r.db.QueryRowContext(ctx,
		"SELECT id,name,phone,email,created_at FROM customers WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update overwrites name, phone and email.  The DSN enables
// clientFoundRows, so an unchanged row still counts as matched.
func (r *CustomerRepo) Update(ctx context.Context, c *model.Customer) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE customers SET name=?, phone=?, email=? WHERE id=?",
		c.Name, c.Phone, c.Email, c.ID)
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

// List returns all customers ordered by id.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id,name,phone,email,created_at FROM customers ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
