package repository

import (
	"context"
	"database/sql"

	"github.com/OutOfFlux/newinoutboard/internal/domain"
)

type PostgresDepartmentsRepository struct {
	db *sql.DB
}

func NewPostgresDepartmentsRepository(db *sql.DB) *PostgresDepartmentsRepository {
	return &PostgresDepartmentsRepository{db: db}
}

func (r *PostgresDepartmentsRepository) ListDepartments(ctx context.Context) ([]*domain.Department, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM departments ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Department{}
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
