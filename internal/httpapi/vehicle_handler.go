package httpapi

import (
	"net/http"
	"strings"

	"github.com/OutOfFlux/newinoutboard/internal/repository"
	"github.com/OutOfFlux/newinoutboard/internal/service"

	"go.uber.org/zap"
)

// VehicleHandler serves the shared vehicle pool mutation surface.
type VehicleHandler struct {
	vehicles *service.VehicleService
	logger   *zap.Logger
}

func NewVehicleHandler(vehicles *service.VehicleService, logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, logger: logger}
}

func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicles.ListVehicles(r.Context())
	if err != nil {
		h.logger.Error("ListVehicles failed", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	name, ok := h.vehicleName(w, r)
	if !ok {
		return
	}
	vehicle, err := h.vehicles.CreateVehicle(r.Context(), name)
	if err != nil {
		h.logger.Error("CreateVehicle failed", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(strings.TrimPrefix(r.URL.Path, "/vehicles/"))
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	name, ok := h.vehicleName(w, r)
	if !ok {
		return
	}
	vehicle, err := h.vehicles.UpdateVehicle(r.Context(), id, name)
	if err != nil {
		if err != repository.ErrNotFound {
			h.logger.Error("UpdateVehicle failed", zap.Int64("id", id), zap.Error(err))
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// DeleteVehicle removes a vehicle; every employee still pointing at it has
// the ref cleared, never deleted.
func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(strings.TrimPrefix(r.URL.Path, "/vehicles/"))
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := h.vehicles.DeleteVehicle(r.Context(), id); err != nil {
		if err != repository.ErrNotFound {
			h.logger.Error("DeleteVehicle failed", zap.Int64("id", id), zap.Error(err))
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

// vehicleName reads and validates the request body shared by create and
// update. Name is required and stored trimmed.
func (h *VehicleHandler) vehicleName(w http.ResponseWriter, r *http.Request) (string, bool) {
	var body struct {
		Name string `json:"name"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return "", false
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return "", false
	}
	return name, true
}
