package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order.  Statements are idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS rooms (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		room_type  VARCHAR(64)     NOT NULL,
		rate_cents BIGINT          NOT NULL,
		available  TINYINT(1)      NOT NULL DEFAULT 1,
		created_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_rooms_available (available)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS customers (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(128)    NOT NULL,
		phone      VARCHAR(32)     NOT NULL DEFAULT '',
		email      VARCHAR(255)    NOT NULL DEFAULT '',
		created_at DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		customer_id BIGINT UNSIGNED NOT NULL,
		room_id     BIGINT UNSIGNED NOT NULL,
		check_in    DATE            NOT NULL,
		check_out   DATE            NOT NULL,
		total_cents BIGINT          NOT NULL,
		created_at  DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_reservations_check_in (check_in),
		KEY idx_reservations_room (room_id),
		KEY idx_reservations_customer (customer_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
