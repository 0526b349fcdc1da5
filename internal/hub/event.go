package hub

import "github.com/OutOfFlux/newinoutboard/internal/domain"

// Wire event types pushed to observers. The board client switches on Type.
const (
	EventInit            = "init"
	EventEmployeeAdded   = "employee_added"
	EventEmployeeUpdated = "employee_updated"
	EventEmployeeRemoved = "employee_removed"
	EventVehicleAdded    = "vehicle_added"
	EventVehicleUpdated  = "vehicle_updated"
	EventVehicleRemoved  = "vehicle_removed"
)

// Event is the tagged union broadcast after every successful mutation.
// Exactly one of Employee, Vehicle or ID is populated, depending on Type.
type Event struct {
	Type     string           `json:"type"`
	Employee *domain.Employee `json:"employee,omitempty"`
	Vehicle  *domain.Vehicle  `json:"vehicle,omitempty"`
	ID       int64            `json:"id,omitempty"`
}

// InitMessage is the full snapshot sent once per connection, before any
// live event. Both lists are ordered by name ascending.
type InitMessage struct {
	Type      string             `json:"type"`
	Employees []*domain.Employee `json:"employees"`
	Vehicles  []*domain.Vehicle  `json:"vehicles"`
}

func NewInitMessage(employees []*domain.Employee, vehicles []*domain.Vehicle) InitMessage {
	return InitMessage{Type: EventInit, Employees: employees, Vehicles: vehicles}
}

func EmployeeAdded(e *domain.Employee) Event   { return Event{Type: EventEmployeeAdded, Employee: e} }
func EmployeeUpdated(e *domain.Employee) Event { return Event{Type: EventEmployeeUpdated, Employee: e} }
func EmployeeRemoved(id int64) Event           { return Event{Type: EventEmployeeRemoved, ID: id} }
func VehicleAdded(v *domain.Vehicle) Event     { return Event{Type: EventVehicleAdded, Vehicle: v} }
func VehicleUpdated(v *domain.Vehicle) Event   { return Event{Type: EventVehicleUpdated, Vehicle: v} }
func VehicleRemoved(id int64) Event            { return Event{Type: EventVehicleRemoved, ID: id} }
