package service

import (
	"context"
	"testing"

	"github.com/OutOfFlux/newinoutboard/internal/hub"
	"github.com/OutOfFlux/newinoutboard/internal/repository"

	"github.com/stretchr/testify/require"
)

func TestVehicleCRUDBroadcasts(t *testing.T) {
	_, vehicles, _, rec := newBoardFixture()
	ctx := context.Background()

	v, err := vehicles.CreateVehicle(ctx, "Van 1")
	require.NoError(t, err)
	renamed, err := vehicles.UpdateVehicle(ctx, v.ID, "Van One")
	require.NoError(t, err)
	require.Equal(t, "Van One", renamed.Name)

	require.Len(t, rec.events, 2)
	require.Equal(t, hub.EventVehicleAdded, rec.events[0].Type)
	require.Equal(t, hub.EventVehicleUpdated, rec.events[1].Type)

	_, err = vehicles.UpdateVehicle(ctx, 999, "Ghost")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteVehicleCascade(t *testing.T) {
	board, vehicles, mem, rec := newBoardFixture()
	ctx := context.Background()

	v, err := vehicles.CreateVehicle(ctx, "Van 1")
	require.NoError(t, err)

	a, err := board.CreateEmployee(ctx, "Alice", "Engineering", "")
	require.NoError(t, err)
	b, err := board.CreateEmployee(ctx, "Bob", "Sales", "")
	require.NoError(t, err)
	c, err := board.CreateEmployee(ctx, "Carol", "Ops", "")
	require.NoError(t, err)

	status := "OUT"
	for _, id := range []int64{a.ID, b.ID} {
		_, err = board.UpdateEmployee(ctx, id, repository.EmployeePatch{
			Status:     &status,
			VehicleID:  &v.ID,
			VehicleSet: true,
		})
		require.NoError(t, err)
	}

	rec.events = nil
	require.NoError(t, vehicles.DeleteVehicle(ctx, v.ID))

	// Structural removal first, then one update per affected employee in
	// lookup (id ascending) order.
	require.Len(t, rec.events, 3)
	require.Equal(t, hub.EventVehicleRemoved, rec.events[0].Type)
	require.Equal(t, v.ID, rec.events[0].ID)
	require.Equal(t, hub.EventEmployeeUpdated, rec.events[1].Type)
	require.Equal(t, a.ID, rec.events[1].Employee.ID)
	require.Equal(t, hub.EventEmployeeUpdated, rec.events[2].Type)
	require.Equal(t, b.ID, rec.events[2].Employee.ID)

	// Refs cleared, no employee rows deleted.
	for _, id := range []int64{a.ID, b.ID, c.ID} {
		e, err := mem.GetEmployee(ctx, id)
		require.NoError(t, err)
		require.Nil(t, e.VehicleID)
		require.Nil(t, e.VehicleName)
	}
}

func TestDeleteVehicleNotFound(t *testing.T) {
	_, vehicles, _, rec := newBoardFixture()
	err := vehicles.DeleteVehicle(context.Background(), 42)
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.Empty(t, rec.events)
}
