package repository

import "context"

// SeedEmployee is one canonical roster entry for a fresh board.
type SeedEmployee struct {
	Name            string
	Department      string
	Status          string
	Comment         string
	EstimatedReturn string
}

// SeedRoster is the demo dataset used by cmd/seed and the in-memory dev
// fallback.
var SeedRoster = []SeedEmployee{
	// Engineering
	{"Alice Johnson", "Engineering", "IN", "", ""},
	{"Bob Smith", "Engineering", "Away from Desk", "Grabbing coffee", ""},
	{"Carlos Rivera", "Engineering", "In Meeting", "Sprint planning", "10:30 AM"},
	{"Diana Chen", "Engineering", "Working Remotely", "Available on Slack", ""},
	{"Ethan Williams", "Engineering", "PTO", "Vacation", "2026-02-24"},
	{"Fiona Park", "Engineering", "IN", "", ""},
	{"Greg Tanaka", "Engineering", "At Lunch", "", "1:00 PM"},

	// Sales
	{"Hannah Lee", "Sales", "IN", "At desk", ""},
	{"Ian Foster", "Sales", "OUT", "Client visit", "3:00 PM"},
	{"Julia Martinez", "Sales", "In Meeting", "Quarterly review", "11:00 AM"},
	{"Kevin Brooks", "Sales", "On Break", "", ""},
	{"Laura Kim", "Sales", "IN", "", ""},
	{"Mike O'Brien", "Sales", "Sick", "Out today", "2026-02-18"},

	// Operations
	{"Nina Patel", "Operations", "IN", "", ""},
	{"Oscar Davis", "Operations", "IN", "", ""},
	{"Priya Sharma", "Operations", "Away from Desk", "Mail room", ""},
	{"Quinn Murphy", "Operations", "At Lunch", "", "12:30 PM"},
	{"Rachel Wong", "Operations", "PTO", "Family leave", "2026-03-03"},
	{"Sam Turner", "Operations", "IN", "Front desk", ""},
	{"Tina Gonzalez", "Operations", "Working Remotely", "Reachable by email", ""},
}

// SeedVehicles is the demo vehicle pool.
var SeedVehicles = []string{"Van 1", "Van 2", "Pool Car"}

// Seed loads the demo dataset through the repository interfaces, so it
// works against both Postgres and the in-memory fallback.
func Seed(ctx context.Context, employees EmployeesRepository, vehicles VehiclesRepository) error {
	for _, name := range SeedVehicles {
		if _, err := vehicles.CreateVehicle(ctx, name); err != nil {
			return err
		}
	}
	for _, s := range SeedRoster {
		e, err := employees.CreateEmployee(ctx, s.Name, s.Department, s.Status)
		if err != nil {
			return err
		}
		if s.Comment == "" && s.EstimatedReturn == "" {
			continue
		}
		comment := s.Comment
		ret := s.EstimatedReturn
		if _, err := employees.UpdateEmployee(ctx, e.ID, EmployeePatch{
			Comment:         &comment,
			EstimatedReturn: &ret,
		}); err != nil {
			return err
		}
	}
	return nil
}
