package positions

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new position.
func (r *PGRepo) Create(ctx context.Context, pos Position) error {
	const query = `
INSERT INTO positions (id, title, description, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, pos.ID, pos.Title, pos.Description, pos.CreatedAt, pos.UpdatedAt)
	return err
}

// GetByID returns one position.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Position, error) {
	const query = `
SELECT id, title, description, created_at, updated_at
FROM positions
WHERE id = $1`
	var pos Position
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&pos.ID,
		&pos.Title,
		&pos.Description,
		&pos.CreatedAt,
		&pos.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Position{}, ErrNotFound
		}
		return Position{}, err
	}
	return pos, nil
}

// List returns all positions ordered by title.
func (r *PGRepo) List(ctx context.Context) ([]Position, error) {
	const query = `
SELECT id, title, description, created_at, updated_at
FROM positions
ORDER BY title`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Position
	for rows.Next() {
		var pos Position
		if err := rows.Scan(&pos.ID, &pos.Title, &pos.Description, &pos.CreatedAt, &pos.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, pos)
	}
	return out, rows.Err()
}

// Update rewrites a position's mutable fields.
func (r *PGRepo) Update(ctx context.Context, pos Position) error {
	const query = `
UPDATE positions
SET title = $1, description = $2, updated_at = $3
WHERE id = $4`
	res, err := r.DB.ExecContext(ctx, query, pos.Title, pos.Description, pos.UpdatedAt, pos.ID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a position. Jobs still referencing it block the delete.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM positions WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrHasJobs
		}
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// PositionExists reports whether a position with the id is stored.
func (r *PGRepo) PositionExists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM positions WHERE id = $1)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

var _ Repo = (*PGRepo)(nil)
