package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/OutOfFlux/newinoutboard/internal/domain"
)

// employeeSelect joins the vehicle name so every read returns the
// denormalized ref in one round trip.
const employeeSelect = `
	SELECT
		e.id,
		e.name,
		e.department,
		e.status,
		e.comment,
		e.estimated_return,
		e.vehicle_id,
		v.name AS vehicle_name,
		e.last_changed
	FROM employees e
	LEFT JOIN vehicles v ON e.vehicle_id = v.id
`

type PostgresEmployeesRepository struct {
	db *sql.DB
}

func NewPostgresEmployeesRepository(db *sql.DB) *PostgresEmployeesRepository {
	return &PostgresEmployeesRepository{db: db}
}

func scanEmployee(row interface{ Scan(...any) error }) (*domain.Employee, error) {
	var e domain.Employee
	var vehicleID sql.NullInt64
	var vehicleName sql.NullString
	if err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Department,
		&e.Status,
		&e.Comment,
		&e.EstimatedReturn,
		&vehicleID,
		&vehicleName,
		&e.LastChanged,
	); err != nil {
		return nil, err
	}
	if vehicleID.Valid {
		e.VehicleID = &vehicleID.Int64
	}
	if vehicleName.Valid {
		e.VehicleName = &vehicleName.String
	}
	return &e, nil
}

func (r *PostgresEmployeesRepository) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	rows, err := r.db.QueryContext(ctx, employeeSelect+` ORDER BY e.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PostgresEmployeesRepository) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	e, err := scanEmployee(r.db.QueryRowContext(ctx, employeeSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *PostgresEmployeesRepository) CreateEmployee(ctx context.Context, name, department, status string) (*domain.Employee, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO employees (name, department, status, comment, estimated_return, last_changed)
		 VALUES ($1, $2, $3, '', '', NOW())
		 RETURNING id`,
		name, department, status,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return r.GetEmployee(ctx, id)
}

// UpdateEmployee builds the SET clause from the patch columns that are
// actually present. last_changed always advances with the write.
func (r *PostgresEmployeesRepository) UpdateEmployee(ctx context.Context, id int64, patch EmployeePatch) (*domain.Employee, error) {
	sets := []string{}
	args := []any{}
	argIdx := 1

	add := func(col string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, v)
		argIdx++
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Department != nil {
		add("department", *patch.Department)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Comment != nil {
		add("comment", *patch.Comment)
	}
	if patch.EstimatedReturn != nil {
		add("estimated_return", *patch.EstimatedReturn)
	}
	if patch.VehicleSet {
		if patch.VehicleID != nil {
			add("vehicle_id", *patch.VehicleID)
		} else {
			add("vehicle_id", nil)
		}
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("empty patch")
	}
	sets = append(sets, "last_changed = NOW()")

	q := "UPDATE employees SET "
	for i, s := range sets {
		if i > 0 {
			q += ", "
		}
		q += s
	}
	q += fmt.Sprintf(" WHERE id = $%d", argIdx)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return r.GetEmployee(ctx, id)
}

func (r *PostgresEmployeesRepository) DeleteEmployee(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
