package sqlerr

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/trip-booking/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestHandleError_PgUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "client_pesel_key"`,
		TableName:      "client",
		ConstraintName: "client_pesel_key",
	}

	err := HandleError(fmt.Errorf("insert client: %w", pgErr))

	httpErr, ok := err.(*errs.HTTPError)
	if !ok {
		t.Fatalf("expected *errs.HTTPError, got %T", err)
	}
	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", httpErr.Status)
	}
	if httpErr.Code != "CLIENT_ALREADY_EXISTS" {
		t.Errorf("code = %q, want CLIENT_ALREADY_EXISTS", httpErr.Code)
	}
	if httpErr.Message != "A Client with this Pesel already exists" {
		t.Errorf("message = %q", httpErr.Message)
	}
}

func TestHandleError_PgForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Severity:   "ERROR",
		Code:       "23503",
		TableName:  "client_trip",
		ColumnName: "trip_id",
	}

	httpErr := HandleError(pgErr).(*errs.HTTPError)
	if httpErr.Code != "CLIENT_TRIP_NOT_FOUND" {
		t.Errorf("code = %q", httpErr.Code)
	}
	if httpErr.Message != "The referenced Trip does not exist" {
		t.Errorf("message = %q", httpErr.Message)
	}
}

func TestHandleError_PassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewNotFoundError("Client not found", true, nil)
	if got := HandleError(original); got != original {
		t.Errorf("HTTPError was replaced: %v", got)
	}
}

func TestHandleError_NoRows(t *testing.T) {
	for _, err := range []error{pgx.ErrNoRows, sql.ErrNoRows, fmt.Errorf("get trip: %w", sql.ErrNoRows)} {
		httpErr := HandleError(err).(*errs.HTTPError)
		if httpErr.Status != http.StatusNotFound {
			t.Errorf("%v: status = %d, want 404", err, httpErr.Status)
		}
	}
}

func TestHandleError_UnknownIsInternal(t *testing.T) {
	httpErr := HandleError(fmt.Errorf("connection reset")).(*errs.HTTPError)
	if httpErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", httpErr.Status)
	}
}

func TestMapCode(t *testing.T) {
	cases := map[string]Code{
		"23502": NotNullViolation,
		"23503": ForeignKeyViolation,
		"23505": UniqueViolation,
		"23514": CheckViolation,
		"42P01": Other,
	}
	for state, want := range cases {
		if got := MapCode(state); got != want {
			t.Errorf("MapCode(%q) = %q, want %q", state, got, want)
		}
	}
}

func TestMapSeverity_DefaultsToError(t *testing.T) {
	if got := MapSeverity("FATAL"); got != SeverityFatal {
		t.Errorf("got %q", got)
	}
	if got := MapSeverity("whatever"); got != SeverityError {
		t.Errorf("got %q", got)
	}
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	cases := map[string]string{
		"unique_client_pesel": "pesel",
		"client_pesel_key":    "pesel",
		"client_trip_pkey":    "",
		"":                    "",
	}
	for constraint, want := range cases {
		if got := extractColumnForUniqueViolation(constraint); got != want {
			t.Errorf("extractColumnForUniqueViolation(%q) = %q, want %q", constraint, got, want)
		}
	}
}

// openSQLite returns an in-memory database with foreign keys enforced.
func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	stmts := []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE client (id_client INTEGER PRIMARY KEY, pesel TEXT NOT NULL UNIQUE)`,
		`CREATE TABLE trip (id_trip INTEGER PRIMARY KEY)`,
		`CREATE TABLE client_trip (
			id_client INTEGER NOT NULL REFERENCES client (id_client),
			id_trip INTEGER NOT NULL REFERENCES trip (id_trip),
			PRIMARY KEY (id_client, id_trip)
		)`,
		`INSERT INTO client (id_client, pesel) VALUES (1, '12345678901')`,
		`INSERT INTO trip (id_trip) VALUES (1)`,
		`INSERT INTO client_trip (id_client, id_trip) VALUES (1, 1)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("setup %q: %v", stmt, err)
		}
	}
	return db
}

func TestSQLite_UniqueColumn(t *testing.T) {
	db := openSQLite(t)

	_, err := db.Exec(`INSERT INTO client (id_client, pesel) VALUES (2, '12345678901')`)
	if err == nil {
		t.Fatal("expected unique violation")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("IsUniqueViolation = false for %v", err)
	}

	httpErr := HandleError(err).(*errs.HTTPError)
	if httpErr.Code != "CLIENT_ALREADY_EXISTS" {
		t.Errorf("code = %q, want CLIENT_ALREADY_EXISTS", httpErr.Code)
	}
	if httpErr.Message != "A Client with this Pesel already exists" {
		t.Errorf("message = %q", httpErr.Message)
	}
}

func TestSQLite_CompositePrimaryKey(t *testing.T) {
	db := openSQLite(t)

	_, err := db.Exec(`INSERT INTO client_trip (id_client, id_trip) VALUES (1, 1)`)
	if !IsUniqueViolation(err) {
		t.Fatalf("expected primary key violation to count as unique, got %v", err)
	}
}

func TestSQLite_ForeignKey(t *testing.T) {
	db := openSQLite(t)

	_, err := db.Exec(`INSERT INTO client_trip (id_client, id_trip) VALUES (1, 99)`)
	if !IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
	if IsUniqueViolation(err) {
		t.Error("foreign key violation reported as unique")
	}
}
