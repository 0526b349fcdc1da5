package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/OutOfFlux/newinoutboard/internal/domain"
)

// Memory is an in-process implementation of all three repositories sharing
// one dataset. It backs local dev when the DB is disabled and the unit
// tests; the vehicle join works against the same maps the vehicle repo
// mutates.
type Memory struct {
	mu          sync.Mutex
	employees   map[int64]*domain.Employee
	vehicles    map[int64]*domain.Vehicle
	departments map[string]int64
	nextEmp     int64
	nextVeh     int64
	nextDep     int64
}

func NewMemory() *Memory {
	return &Memory{
		employees:   make(map[int64]*domain.Employee),
		vehicles:    make(map[int64]*domain.Vehicle),
		departments: make(map[string]int64),
		nextEmp:     1,
		nextVeh:     1,
		nextDep:     1,
	}
}

// snapshot returns a copy with the vehicle name resolved, so callers never
// alias internal state.
func (m *Memory) snapshotEmployee(e *domain.Employee) *domain.Employee {
	cp := *e
	if e.VehicleID != nil {
		id := *e.VehicleID
		cp.VehicleID = &id
		if v, ok := m.vehicles[id]; ok {
			name := v.Name
			cp.VehicleName = &name
		}
	}
	return &cp
}

// ============================================
// EmployeesRepository
// ============================================

func (m *Memory) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		out = append(out, m.snapshotEmployee(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) GetEmployee(ctx context.Context, id int64) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.snapshotEmployee(e), nil
}

func (m *Memory) CreateEmployee(ctx context.Context, name, department, status string) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := &domain.Employee{
		ID:          m.nextEmp,
		Name:        name,
		Department:  department,
		Status:      status,
		LastChanged: time.Now().UTC(),
	}
	m.nextEmp++
	m.employees[e.ID] = e
	m.seedDepartment(department)
	return m.snapshotEmployee(e), nil
}

func (m *Memory) UpdateEmployee(ctx context.Context, id int64, patch EmployeePatch) (*domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.employees[id]
	if !ok {
		return nil, ErrNotFound
	}
	// Reject before touching the row, so a failed update never leaves
	// partially applied state behind.
	if patch.VehicleSet && patch.VehicleID != nil {
		if _, ok := m.vehicles[*patch.VehicleID]; !ok {
			return nil, ErrNotFound
		}
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Department != nil {
		e.Department = *patch.Department
		m.seedDepartment(e.Department)
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	if patch.Comment != nil {
		e.Comment = *patch.Comment
	}
	if patch.EstimatedReturn != nil {
		e.EstimatedReturn = *patch.EstimatedReturn
	}
	if patch.VehicleSet {
		if patch.VehicleID != nil {
			id := *patch.VehicleID
			e.VehicleID = &id
		} else {
			e.VehicleID = nil
		}
	}
	e.LastChanged = time.Now().UTC()
	return m.snapshotEmployee(e), nil
}

func (m *Memory) DeleteEmployee(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.employees[id]; !ok {
		return ErrNotFound
	}
	delete(m.employees, id)
	return nil
}

// ============================================
// VehiclesRepository
// ============================================

func (m *Memory) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *Memory) CreateVehicle(ctx context.Context, name string) (*domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := &domain.Vehicle{ID: m.nextVeh, Name: name}
	m.nextVeh++
	m.vehicles[v.ID] = v
	cp := *v
	return &cp, nil
}

func (m *Memory) UpdateVehicle(ctx context.Context, id int64, name string) (*domain.Vehicle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.vehicles[id]
	if !ok {
		return nil, ErrNotFound
	}
	v.Name = name
	cp := *v
	return &cp, nil
}

func (m *Memory) DeleteVehicle(ctx context.Context, id int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.vehicles[id]; !ok {
		return nil, ErrNotFound
	}
	affected := []int64{}
	for empID, e := range m.employees {
		if e.VehicleID != nil && *e.VehicleID == id {
			affected = append(affected, empID)
		}
	}
	sort.Slice(affected, func(i, j int) bool { return affected[i] < affected[j] })
	for _, empID := range affected {
		m.employees[empID].VehicleID = nil
	}
	delete(m.vehicles, id)
	return affected, nil
}

// ============================================
// DepartmentsRepository
// ============================================

func (m *Memory) ListDepartments(ctx context.Context) ([]*domain.Department, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Department, 0, len(m.departments))
	for name, id := range m.departments {
		out = append(out, &domain.Department{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *Memory) seedDepartment(name string) {
	if _, ok := m.departments[name]; ok || name == "" {
		return
	}
	m.departments[name] = m.nextDep
	m.nextDep++
}
