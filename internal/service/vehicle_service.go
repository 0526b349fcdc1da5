package service

import (
	"context"
	"fmt"

	"github.com/OutOfFlux/newinoutboard/internal/domain"
	"github.com/OutOfFlux/newinoutboard/internal/hub"
	"github.com/OutOfFlux/newinoutboard/internal/repository"

	"go.uber.org/zap"
)

// VehicleService handles mutations on the shared vehicle pool, including
// the cascade that clears the ref from every employee when a vehicle is
// deleted.
type VehicleService struct {
	vehicles    repository.VehiclesRepository
	employees   repository.EmployeesRepository
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewVehicleService(
	vehicles repository.VehiclesRepository,
	employees repository.EmployeesRepository,
	broadcaster Broadcaster,
	logger *zap.Logger,
) *VehicleService {
	return &VehicleService{
		vehicles:    vehicles,
		employees:   employees,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *VehicleService) ListVehicles(ctx context.Context) ([]*domain.Vehicle, error) {
	return s.vehicles.ListVehicles(ctx)
}

func (s *VehicleService) CreateVehicle(ctx context.Context, name string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.CreateVehicle(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	s.broadcaster.Broadcast(hub.VehicleAdded(vehicle))
	return vehicle, nil
}

func (s *VehicleService) UpdateVehicle(ctx context.Context, id int64, name string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.UpdateVehicle(ctx, id, name)
	if err != nil {
		return nil, err
	}
	s.broadcaster.Broadcast(hub.VehicleUpdated(vehicle))
	return vehicle, nil
}

// DeleteVehicle removes the vehicle, then announces the structural removal
// followed by one employee_updated per employee whose ref was cleared, in
// the order the store reported them. No employee row is ever deleted here.
func (s *VehicleService) DeleteVehicle(ctx context.Context, id int64) error {
	affected, err := s.vehicles.DeleteVehicle(ctx, id)
	if err != nil {
		return err
	}
	s.broadcaster.Broadcast(hub.VehicleRemoved(id))

	for _, empID := range affected {
		employee, err := s.employees.GetEmployee(ctx, empID)
		if err != nil {
			// The employee may have been deleted between the cascade and
			// this read; observers reconcile on reconnect.
			s.logger.Warn("skipping cascade broadcast",
				zap.Int64("employee_id", empID), zap.Error(err))
			continue
		}
		s.broadcaster.Broadcast(hub.EmployeeUpdated(employee))
	}
	return nil
}
