package domain

import "time"

// StatusIn is the distinguished "present" status. Every other status value
// means the person is away in some form and may carry a comment, an
// estimated return and a vehicle assignment.
const StatusIn = "IN"

// Employee maps the employees table. VehicleName is denormalized from the
// vehicles table on every read so the board never has to resolve the ref.
type Employee struct {
	ID              int64     `json:"id" db:"id"`
	Name            string    `json:"name" db:"name"`
	Department      string    `json:"department" db:"department"`
	Status          string    `json:"status" db:"status"`
	Comment         string    `json:"comment" db:"comment"`
	EstimatedReturn string    `json:"estimated_return" db:"estimated_return"`
	VehicleID       *int64    `json:"vehicle_id" db:"vehicle_id"`
	VehicleName     *string   `json:"vehicle_name" db:"vehicle_name"`
	LastChanged     time.Time `json:"last_changed" db:"last_changed"`
}

// IsIn reports whether the employee is currently shown as present.
func (e *Employee) IsIn() bool {
	return e.Status == StatusIn
}
