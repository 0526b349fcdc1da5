package service

import (
	"testing"

	"github.com/OutOfFlux/newinoutboard/internal/repository"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func idPtr(i int64) *int64    { return &i }

func TestFinalizePatchRejectsEmpty(t *testing.T) {
	_, err := FinalizePatch(repository.EmployeePatch{})
	require.ErrorIs(t, err, ErrNoFields)
}

func TestFinalizePatchStatusInClearsDetail(t *testing.T) {
	patch, err := FinalizePatch(repository.EmployeePatch{
		Status: strPtr("IN"),
	})
	require.NoError(t, err)
	require.NotNil(t, patch.Comment)
	require.Equal(t, "", *patch.Comment)
	require.NotNil(t, patch.EstimatedReturn)
	require.Equal(t, "", *patch.EstimatedReturn)
	require.True(t, patch.VehicleSet)
	require.Nil(t, patch.VehicleID)
}

func TestFinalizePatchStatusInOverridesCoSuppliedValues(t *testing.T) {
	// Clearing wins even when the caller also supplied away detail.
	patch, err := FinalizePatch(repository.EmployeePatch{
		Status:          strPtr("IN"),
		Comment:         strPtr("still in a meeting"),
		EstimatedReturn: strPtr("15:00"),
		VehicleID:       idPtr(3),
		VehicleSet:      true,
	})
	require.NoError(t, err)
	require.Equal(t, "", *patch.Comment)
	require.Equal(t, "", *patch.EstimatedReturn)
	require.True(t, patch.VehicleSet)
	require.Nil(t, patch.VehicleID)
}

func TestFinalizePatchAwayStatusPassesFieldsThrough(t *testing.T) {
	patch, err := FinalizePatch(repository.EmployeePatch{
		Status:          strPtr("In Meeting"),
		Comment:         strPtr("Standup"),
		EstimatedReturn: strPtr("10:30"),
		VehicleID:       idPtr(2),
		VehicleSet:      true,
	})
	require.NoError(t, err)
	require.Equal(t, "Standup", *patch.Comment)
	require.Equal(t, "10:30", *patch.EstimatedReturn)
	require.NotNil(t, patch.VehicleID)
	require.Equal(t, int64(2), *patch.VehicleID)
}

func TestFinalizePatchNormalizesZeroVehicle(t *testing.T) {
	patch, err := FinalizePatch(repository.EmployeePatch{
		VehicleID:  idPtr(0),
		VehicleSet: true,
	})
	require.NoError(t, err)
	require.True(t, patch.VehicleSet)
	require.Nil(t, patch.VehicleID)
}

func TestFinalizePatchLeavesUnrelatedFieldsAlone(t *testing.T) {
	patch, err := FinalizePatch(repository.EmployeePatch{
		Name: strPtr("New Name"),
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", *patch.Name)
	require.Nil(t, patch.Status)
	require.Nil(t, patch.Comment)
	require.False(t, patch.VehicleSet)
}
