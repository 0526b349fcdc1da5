package service

import (
	"errors"

	"github.com/OutOfFlux/newinoutboard/internal/domain"
	"github.com/OutOfFlux/newinoutboard/internal/repository"
)

// ErrNoFields is returned for an update request that touches no recognized
// field. Detected before any persistence call.
var ErrNoFields = errors.New("no fields to update")

// FinalizePatch turns the caller-supplied partial update into the field set
// that actually gets persisted. Pure: no I/O, no clock.
//
// Rules:
//   - status set to "IN" forces comment and estimated return to "" and the
//     vehicle ref to NULL, overriding any co-supplied values. Stale away
//     detail must never survive a return to the office.
//   - any other status leaves co-supplied fields untouched.
//   - a present-but-zero vehicle id normalizes to NULL.
func FinalizePatch(patch repository.EmployeePatch) (repository.EmployeePatch, error) {
	if patch.Empty() {
		return repository.EmployeePatch{}, ErrNoFields
	}
	if patch.Status != nil && *patch.Status == domain.StatusIn {
		empty := ""
		patch.Comment = &empty
		emptyRet := ""
		patch.EstimatedReturn = &emptyRet
		patch.VehicleSet = true
		patch.VehicleID = nil
	}
	if patch.VehicleSet && patch.VehicleID != nil && *patch.VehicleID == 0 {
		patch.VehicleID = nil
	}
	return patch, nil
}
