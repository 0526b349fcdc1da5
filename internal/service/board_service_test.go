package service

import (
	"context"
	"testing"

	"github.com/OutOfFlux/newinoutboard/internal/domain"
	"github.com/OutOfFlux/newinoutboard/internal/hub"
	"github.com/OutOfFlux/newinoutboard/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingBroadcaster captures events in emission order.
type recordingBroadcaster struct {
	events []hub.Event
}

func (r *recordingBroadcaster) Broadcast(e hub.Event) {
	r.events = append(r.events, e)
}

func newBoardFixture() (*BoardService, *VehicleService, *repository.Memory, *recordingBroadcaster) {
	mem := repository.NewMemory()
	rec := &recordingBroadcaster{}
	board := NewBoardService(mem, mem, rec, zap.NewNop())
	vehicles := NewVehicleService(mem, mem, rec, zap.NewNop())
	return board, vehicles, mem, rec
}

func TestCreateEmployeeDefaults(t *testing.T) {
	board, _, _, rec := newBoardFixture()
	ctx := context.Background()

	e, err := board.CreateEmployee(ctx, "Alice", "Engineering", "")
	require.NoError(t, err)
	require.Equal(t, domain.StatusIn, e.Status)
	require.Equal(t, "", e.Comment)
	require.Equal(t, "", e.EstimatedReturn)
	require.Nil(t, e.VehicleID)
	require.False(t, e.LastChanged.IsZero())

	require.Len(t, rec.events, 1)
	require.Equal(t, hub.EventEmployeeAdded, rec.events[0].Type)
	require.Equal(t, e, rec.events[0].Employee)
}

func TestUpdateEmployeeStatusLifecycle(t *testing.T) {
	board, _, _, rec := newBoardFixture()
	ctx := context.Background()

	e, err := board.CreateEmployee(ctx, "Alice", "Engineering", "")
	require.NoError(t, err)

	// Go into a meeting with detail.
	status := "In Meeting"
	comment := "Standup"
	ret := "10:30"
	updated, err := board.UpdateEmployee(ctx, e.ID, repository.EmployeePatch{
		Status:          &status,
		Comment:         &comment,
		EstimatedReturn: &ret,
	})
	require.NoError(t, err)
	require.Equal(t, "In Meeting", updated.Status)
	require.Equal(t, "Standup", updated.Comment)
	require.Equal(t, "10:30", updated.EstimatedReturn)

	// Come back: detail clears even though the request only set status.
	in := domain.StatusIn
	back, err := board.UpdateEmployee(ctx, e.ID, repository.EmployeePatch{Status: &in})
	require.NoError(t, err)
	require.Equal(t, domain.StatusIn, back.Status)
	require.Equal(t, "", back.Comment)
	require.Equal(t, "", back.EstimatedReturn)
	require.Nil(t, back.VehicleID)

	// One broadcast per successful mutation: add + two updates.
	require.Len(t, rec.events, 3)
	require.Equal(t, hub.EventEmployeeUpdated, rec.events[1].Type)
	require.Equal(t, hub.EventEmployeeUpdated, rec.events[2].Type)
}

func TestUpdateEmployeeBroadcastMatchesFreshRead(t *testing.T) {
	board, _, mem, rec := newBoardFixture()
	ctx := context.Background()

	e, err := board.CreateEmployee(ctx, "Bob", "Sales", "")
	require.NoError(t, err)

	status := "OUT"
	_, err = board.UpdateEmployee(ctx, e.ID, repository.EmployeePatch{Status: &status})
	require.NoError(t, err)

	fresh, err := mem.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	last := rec.events[len(rec.events)-1]
	require.Equal(t, hub.EventEmployeeUpdated, last.Type)
	require.Equal(t, fresh, last.Employee)
}

func TestUpdateEmployeeZeroFieldsRejected(t *testing.T) {
	board, _, mem, rec := newBoardFixture()
	ctx := context.Background()

	e, err := board.CreateEmployee(ctx, "Carol", "Ops", "")
	require.NoError(t, err)
	before, err := mem.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	eventsBefore := len(rec.events)

	_, err = board.UpdateEmployee(ctx, e.ID, repository.EmployeePatch{})
	require.ErrorIs(t, err, ErrNoFields)

	// Stored row unchanged, lastChanged not bumped, nothing broadcast.
	after, err := mem.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	require.Equal(t, before, after)
	require.Len(t, rec.events, eventsBefore)
}

func TestUpdateEmployeeNotFound(t *testing.T) {
	board, _, _, rec := newBoardFixture()

	status := "OUT"
	_, err := board.UpdateEmployee(context.Background(), 999, repository.EmployeePatch{Status: &status})
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.Empty(t, rec.events)
}

func TestUpdateEmployeeIdempotentPayload(t *testing.T) {
	board, _, _, _ := newBoardFixture()
	ctx := context.Background()

	e, err := board.CreateEmployee(ctx, "Dave", "Ops", "")
	require.NoError(t, err)

	patch := func() repository.EmployeePatch {
		status := "On Break"
		comment := "back soon"
		return repository.EmployeePatch{Status: &status, Comment: &comment}
	}
	first, err := board.UpdateEmployee(ctx, e.ID, patch())
	require.NoError(t, err)
	second, err := board.UpdateEmployee(ctx, e.ID, patch())
	require.NoError(t, err)

	// Same final state apart from lastChanged, which always advances.
	require.False(t, second.LastChanged.Before(first.LastChanged))
	first.LastChanged = second.LastChanged
	require.Equal(t, first, second)
}

func TestDeleteEmployee(t *testing.T) {
	board, _, mem, rec := newBoardFixture()
	ctx := context.Background()

	e, err := board.CreateEmployee(ctx, "Eve", "Sales", "")
	require.NoError(t, err)

	require.NoError(t, board.DeleteEmployee(ctx, e.ID))
	_, err = mem.GetEmployee(ctx, e.ID)
	require.ErrorIs(t, err, repository.ErrNotFound)

	last := rec.events[len(rec.events)-1]
	require.Equal(t, hub.EventEmployeeRemoved, last.Type)
	require.Equal(t, e.ID, last.ID)

	require.ErrorIs(t, board.DeleteEmployee(ctx, e.ID), repository.ErrNotFound)
}
