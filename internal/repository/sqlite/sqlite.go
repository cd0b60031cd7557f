// Package sqlite implements the repositories on modernc.org/sqlite through sqlx.
//
// Timestamps are stored as UTC text in a fixed-width layout so that string
// comparison in SQL (ORDER BY, CHECK) matches chronological order.
package sqlite

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// TimeLayout is the on-disk timestamp format.
const TimeLayout = "2006-01-02 15:04:05.000000"

// Store hands out repositories bound either to the database or to one transaction.
type Store struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Trips() *TripRepository             { return &TripRepository{q: s.q} }
func (s *Store) Clients() *ClientRepository         { return &ClientRepository{q: s.q} }
func (s *Store) ClientTrips() *ClientTripRepository { return &ClientTripRepository{q: s.q} }

// WithTx runs fn in a transaction, committing when fn returns nil. Called on
// a transactional store it reuses the open transaction.
func (s *Store) WithTx(ctx context.Context, fn func(*Store) error) (err error) {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&Store{q: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// timestamp converts between time.Time and the TimeLayout text column.
type timestamp struct {
	time.Time
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (t *timestamp) parse(s string) error {
	parsed, err := time.ParseInLocation(TimeLayout, s, time.UTC)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

func (t timestamp) Value() (driver.Value, error) {
	return t.UTC().Format(TimeLayout), nil
}

// nullTimestamp is a timestamp column that may be NULL.
type nullTimestamp struct {
	Time *time.Time
}

func (n *nullTimestamp) Scan(src any) error {
	if src == nil {
		n.Time = nil
		return nil
	}

	var ts timestamp
	if err := ts.Scan(src); err != nil {
		return err
	}
	n.Time = &ts.Time
	return nil
}

func (n nullTimestamp) Value() (driver.Value, error) {
	if n.Time == nil {
		return nil, nil
	}
	return timestamp{*n.Time}.Value()
}
