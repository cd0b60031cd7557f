package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deppfellow/trip-booking/internal/model"
	"github.com/jmoiron/sqlx"
)

type ClientRepository struct {
	q sqlx.ExtContext
}

const clientColumns = `id_client, first_name, last_name, email, telephone, pesel`

func (r *ClientRepository) GetByID(ctx context.Context, id int) (*model.Client, error) {
	var client model.Client
	err := sqlx.GetContext(ctx, r.q, &client, `SELECT `+clientColumns+` FROM client WHERE id_client = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get client %d: %w", id, err)
	}
	return &client, nil
}

func (r *ClientRepository) GetByPesel(ctx context.Context, pesel string) (*model.Client, error) {
	var client model.Client
	err := sqlx.GetContext(ctx, r.q, &client, `SELECT `+clientColumns+` FROM client WHERE pesel = ?`, pesel)
	if err != nil {
		return nil, fmt.Errorf("get client %s: %w", pesel, err)
	}
	return &client, nil
}

// Create inserts the client and sets its ID.
func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO client (first_name, last_name, email, telephone, pesel)
		VALUES (?, ?, ?, ?, ?)`,
		client.FirstName, client.LastName, client.Email, client.Telephone, client.Pesel)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	client.ID = int(id)
	return nil
}

func (r *ClientRepository) CountTrips(ctx context.Context, id int) (int, error) {
	var total int
	err := sqlx.GetContext(ctx, r.q, &total, `SELECT COUNT(*) FROM client_trip WHERE id_client = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("count trips of client %d: %w", id, err)
	}
	return total, nil
}

// Delete removes the client. Deleting a missing client returns sql.ErrNoRows.
func (r *ClientRepository) Delete(ctx context.Context, id int) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM client WHERE id_client = ?`, id)
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("delete client %d: %w", id, sql.ErrNoRows)
	}
	return nil
}
