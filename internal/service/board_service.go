package service

import (
	"context"
	"fmt"

	"github.com/OutOfFlux/newinoutboard/internal/domain"
	"github.com/OutOfFlux/newinoutboard/internal/hub"
	"github.com/OutOfFlux/newinoutboard/internal/repository"

	"go.uber.org/zap"
)

// Broadcaster fans a change event out to every connected observer.
// Fire-and-forget: it can never fail a mutation.
type Broadcaster interface {
	Broadcast(event hub.Event)
}

// BoardService handles roster mutations: validate, apply the field rules,
// persist, then broadcast the canonical row. The broadcast payload is
// always a fresh read, never the in-memory request values.
type BoardService struct {
	employees   repository.EmployeesRepository
	departments repository.DepartmentsRepository
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewBoardService(
	employees repository.EmployeesRepository,
	departments repository.DepartmentsRepository,
	broadcaster Broadcaster,
	logger *zap.Logger,
) *BoardService {
	return &BoardService{
		employees:   employees,
		departments: departments,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *BoardService) ListEmployees(ctx context.Context) ([]*domain.Employee, error) {
	return s.employees.ListEmployees(ctx)
}

func (s *BoardService) ListDepartments(ctx context.Context) ([]*domain.Department, error) {
	return s.departments.ListDepartments(ctx)
}

// CreateEmployee adds a roster entry. Status defaults to "IN" when omitted;
// comment, estimated return and vehicle ref always start empty.
func (s *BoardService) CreateEmployee(ctx context.Context, name, department, status string) (*domain.Employee, error) {
	if status == "" {
		status = domain.StatusIn
	}
	employee, err := s.employees.CreateEmployee(ctx, name, department, status)
	if err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	s.broadcaster.Broadcast(hub.EmployeeAdded(employee))
	return employee, nil
}

// UpdateEmployee applies a partial update under the field rules and
// broadcasts the persisted row.
func (s *BoardService) UpdateEmployee(ctx context.Context, id int64, patch repository.EmployeePatch) (*domain.Employee, error) {
	final, err := FinalizePatch(patch)
	if err != nil {
		return nil, err
	}
	employee, err := s.employees.UpdateEmployee(ctx, id, final)
	if err != nil {
		return nil, err
	}
	s.broadcaster.Broadcast(hub.EmployeeUpdated(employee))
	return employee, nil
}

func (s *BoardService) DeleteEmployee(ctx context.Context, id int64) error {
	if err := s.employees.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	s.broadcaster.Broadcast(hub.EmployeeRemoved(id))
	return nil
}
