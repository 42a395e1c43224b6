// Package database owns the PostgreSQL connection and the reservations
// schema.  The connection is established asynchronously with an
// unbounded fixed-delay retry so the process can come up before the
// store does; until then every repository call fails fast with
// ErrNotReady instead of hanging.
package database

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"sync/atomic"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotReady is returned while the store connection has not been
// established yet.  Handlers translate it into HTTP 503 so clients can
// back off and retry.
var ErrNotReady = errors.New("store not ready")

const retryDelay = 5 * time.Second

// DB hands out the shared *sql.DB once the connection and schema are
// ready.  The zero value is not ready.
type DB struct {
	conn atomic.Pointer[sql.DB]
}

// Get returns the live connection or ErrNotReady.
func (d *DB) Get() (*sql.DB, error) {
	if c := d.conn.Load(); c != nil {
		return c, nil
	}
	return nil, ErrNotReady
}

// Ready reports whether the store is reachable and migrated.
func (d *DB) Ready() bool {
	return d.conn.Load() != nil
}

// Connect dials dsn, applies the schema and marks the DB ready.  It
// retries forever on a fixed delay and returns only when the store is
// usable or ctx is cancelled.  Run it in a goroutine from main.
func (d *DB) Connect(ctx context.Context, dsn string) {
	for {
		db, err := open(ctx, dsn)
		if err == nil {
			if err = ensureSchema(ctx, db); err == nil {
				d.conn.Store(db)
				log.Println("database ready (reservations table prepared, manage_code column present)")
				return
			}
			_ = db.Close()
		}
		log.Printf("database not reachable: %v; retrying in %s", err, retryDelay)
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
}

func open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ensureSchema creates the reservations table if absent and applies
// additive column migrations.  Both statements are idempotent; nothing
// here is ever destructive.
func ensureSchema(ctx context.Context, db *sql.DB) error {
	const createTable = `
		CREATE TABLE IF NOT EXISTS reservations (
			id SERIAL PRIMARY KEY,
			room TEXT NOT NULL,
			date TEXT NOT NULL,   -- 'YYYY-MM-DD'
			start TEXT NOT NULL,  -- 'HH:MM'
			"end" TEXT NOT NULL,  -- 'HH:MM'
			student TEXT NOT NULL
		)`
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return err
	}

	// The manage code arrived after the first deployments; add it to
	// tables created before it existed.
	const addManageCode = `
		ALTER TABLE reservations
		ADD COLUMN IF NOT EXISTS manage_code TEXT`
	if _, err := db.ExecContext(ctx, addManageCode); err != nil {
		return err
	}

	const addIndex = `
		CREATE INDEX IF NOT EXISTS reservations_room_date_idx
		ON reservations (room, date)`
	_, err := db.ExecContext(ctx, addIndex)
	return err
}
