package postgres

import (
	"context"
	"fmt"

	"github.com/deppfellow/trip-booking/internal/model"
	"github.com/jackc/pgx/v5"
)

type ClientRepository struct {
	q querier
}

const clientColumns = `id_client, first_name, last_name, email, telephone, pesel`

func (r *ClientRepository) GetByID(ctx context.Context, id int) (*model.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM client WHERE id_client = $1`, id)
}

func (r *ClientRepository) GetByPesel(ctx context.Context, pesel string) (*model.Client, error) {
	return r.getOne(ctx, `SELECT `+clientColumns+` FROM client WHERE pesel = $1`, pesel)
}

func (r *ClientRepository) getOne(ctx context.Context, query string, arg any) (*model.Client, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("get client %v: %w", arg, err)
	}

	client, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Client])
	if err != nil {
		return nil, fmt.Errorf("get client %v: %w", arg, err)
	}
	return client, nil
}

// Create inserts the client and sets its ID.
func (r *ClientRepository) Create(ctx context.Context, client *model.Client) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO client (first_name, last_name, email, telephone, pesel)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_client`,
		client.FirstName, client.LastName, client.Email, client.Telephone, client.Pesel,
	).Scan(&client.ID)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

func (r *ClientRepository) CountTrips(ctx context.Context, id int) (int, error) {
	var total int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM client_trip WHERE id_client = $1`, id).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count trips of client %d: %w", id, err)
	}
	return total, nil
}

// Delete removes the client. Deleting a missing client returns pgx.ErrNoRows.
func (r *ClientRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM client WHERE id_client = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete client %d: %w", id, pgx.ErrNoRows)
	}
	return nil
}
