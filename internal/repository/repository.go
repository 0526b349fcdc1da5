package repository

import (
	"context"
	"errors"

	"github.com/OutOfFlux/newinoutboard/internal/domain"
)

// ErrNotFound is returned by every repository when the target row does not
// exist (checked via read-before-delete or zero rows affected on update).
var ErrNotFound = errors.New("not found")

// EmployeePatch is the finalized partial update for an employee row. A nil
// pointer means "leave the column alone". VehicleSet distinguishes "clear
// the vehicle ref" (true with nil VehicleID) from "not touched" (false).
type EmployeePatch struct {
	Name            *string
	Department      *string
	Status          *string
	Comment         *string
	EstimatedReturn *string
	VehicleID       *int64
	VehicleSet      bool
}

// Empty reports whether the patch touches no recognized field.
func (p EmployeePatch) Empty() bool {
	return p.Name == nil &&
		p.Department == nil &&
		p.Status == nil &&
		p.Comment == nil &&
		p.EstimatedReturn == nil &&
		!p.VehicleSet
}

// EmployeesRepository is the store accessor for the roster. Every mutating
// call is a single atomic unit; reads always include the denormalized
// vehicle name.
type EmployeesRepository interface {
	// ListEmployees returns the roster ordered by name ascending.
	ListEmployees(ctx context.Context) ([]*domain.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	// CreateEmployee inserts a new roster entry; comment and estimated
	// return start empty, last_changed is set server-side.
	CreateEmployee(ctx context.Context, name, department, status string) (*domain.Employee, error)
	// UpdateEmployee applies the patch and returns the canonical row as a
	// fresh read. ErrNotFound when zero rows were affected.
	UpdateEmployee(ctx context.Context, id int64, patch EmployeePatch) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

// VehiclesRepository is the store accessor for the shared vehicle pool.
type VehiclesRepository interface {
	// ListVehicles returns the pool ordered by name ascending.
	ListVehicles(ctx context.Context) ([]*domain.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error)
	CreateVehicle(ctx context.Context, name string) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, id int64, name string) (*domain.Vehicle, error)
	// DeleteVehicle removes the vehicle and clears the ref on every
	// employee pointing at it in one transaction. It returns the affected
	// employee ids in ascending order.
	DeleteVehicle(ctx context.Context, id int64) ([]int64, error)
}

// DepartmentsRepository lists the department label set. The set is seeded
// from distinct roster departments at bootstrap and only feeds pickers; it
// is not enforced as a foreign key on employees.
type DepartmentsRepository interface {
	ListDepartments(ctx context.Context) ([]*domain.Department, error)
}
