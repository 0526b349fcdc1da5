package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryListEmployeesOrderedByName(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	for _, name := range []string{"Zoe", "Alice", "Mike"} {
		_, err := mem.CreateEmployee(ctx, name, "Engineering", "IN")
		require.NoError(t, err)
	}

	list, err := mem.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "Alice", list[0].Name)
	require.Equal(t, "Mike", list[1].Name)
	require.Equal(t, "Zoe", list[2].Name)
}

func TestMemoryVehicleJoin(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	v, err := mem.CreateVehicle(ctx, "Van 1")
	require.NoError(t, err)
	e, err := mem.CreateEmployee(ctx, "Alice", "Engineering", "OUT")
	require.NoError(t, err)

	updated, err := mem.UpdateEmployee(ctx, e.ID, EmployeePatch{
		VehicleID:  &v.ID,
		VehicleSet: true,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.VehicleID)
	require.NotNil(t, updated.VehicleName)
	require.Equal(t, "Van 1", *updated.VehicleName)

	// Renaming the vehicle shows up on the next employee read.
	_, err = mem.UpdateVehicle(ctx, v.ID, "Van One")
	require.NoError(t, err)
	fresh, err := mem.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, "Van One", *fresh.VehicleName)
}

func TestMemoryUpdateRejectsUnknownVehicle(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	e, err := mem.CreateEmployee(ctx, "Alice", "Engineering", "OUT")
	require.NoError(t, err)

	status := "Out"
	comment := "Client visit"
	bogus := int64(99)
	_, err = mem.UpdateEmployee(ctx, e.ID, EmployeePatch{
		Status:     &status,
		Comment:    &comment,
		VehicleID:  &bogus,
		VehicleSet: true,
	})
	require.ErrorIs(t, err, ErrNotFound)

	// The rejected update must not leave any field behind.
	fresh, err := mem.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, e, fresh)
}

func TestMemoryNotFound(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	_, err := mem.GetEmployee(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, mem.DeleteEmployee(ctx, 1), ErrNotFound)
	_, err = mem.GetVehicle(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = mem.DeleteVehicle(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryDepartmentsSeededFromRoster(t *testing.T) {
	mem := NewMemory()
	ctx := context.Background()

	require.NoError(t, Seed(ctx, mem, mem))

	deps, err := mem.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, deps, 3)
	require.Equal(t, "Engineering", deps[0].Name)
	require.Equal(t, "Operations", deps[1].Name)
	require.Equal(t, "Sales", deps[2].Name)

	list, err := mem.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(SeedRoster))
}
