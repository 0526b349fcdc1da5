package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/OutOfFlux/newinoutboard/internal/domain"
)

type PostgresVehiclesRepository struct {
	db *sql.DB
}

func NewPostgresVehiclesRepository(db *sql.DB) *PostgresVehiclesRepository {
	return &PostgresVehiclesRepository{db: db}
}

func (r *PostgresVehiclesRepository) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM vehicles ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Vehicle{}
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Name); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *PostgresVehiclesRepository) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM vehicles WHERE id = $1`, id).Scan(&v.ID, &v.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *PostgresVehiclesRepository) CreateVehicle(ctx context.Context, name string) (*domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO vehicles (name) VALUES ($1) RETURNING id, name`,
		name,
	).Scan(&v.ID, &v.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}
	return &v, nil
}

func (r *PostgresVehiclesRepository) UpdateVehicle(ctx context.Context, id int64, name string) (*domain.Vehicle, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE vehicles SET name = $1 WHERE id = $2`, name, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.GetVehicle(ctx, id)
}

// DeleteVehicle clears the ref on every employee pointing at the vehicle
// and removes the row, all in one transaction so the cascade is never
// observable half-applied. Affected employee ids come back in ascending
// order for deterministic follow-up broadcasts.
func (r *PostgresVehiclesRepository) DeleteVehicle(ctx context.Context, id int64) ([]int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists int64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM vehicles WHERE id = $1`, id).Scan(&exists); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `SELECT id FROM employees WHERE vehicle_id = $1 ORDER BY id ASC`, id)
	if err != nil {
		return nil, err
	}
	affected := []int64{}
	for rows.Next() {
		var empID int64
		if err := rows.Scan(&empID); err != nil {
			rows.Close()
			return nil, err
		}
		affected = append(affected, empID)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx, `UPDATE employees SET vehicle_id = NULL WHERE vehicle_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to release vehicle: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return affected, nil
}
