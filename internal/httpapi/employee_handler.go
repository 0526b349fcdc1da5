package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/OutOfFlux/newinoutboard/internal/repository"
	"github.com/OutOfFlux/newinoutboard/internal/service"

	"go.uber.org/zap"
)

// EmployeeHandler serves the roster mutation surface.
type EmployeeHandler struct {
	board  *service.BoardService
	logger *zap.Logger
}

func NewEmployeeHandler(board *service.BoardService, logger *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{board: board, logger: logger}
}

// ListEmployees returns the roster ordered by name.
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.board.ListEmployees(r.Context())
	if err != nil {
		h.logger.Error("ListEmployees failed", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

// ListDepartments returns the department label set.
func (h *EmployeeHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.board.ListDepartments(r.Context())
	if err != nil {
		h.logger.Error("ListDepartments failed", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, departments)
}

// CreateEmployee adds a roster entry. Name and department are required;
// status defaults to present.
func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name       string `json:"name"`
		Department string `json:"department"`
		Status     string `json:"status"`
	}
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Name == "" || body.Department == "" {
		writeError(w, http.StatusBadRequest, "Name and department are required")
		return
	}

	employee, err := h.board.CreateEmployee(r.Context(), body.Name, body.Department, body.Status)
	if err != nil {
		h.logger.Error("CreateEmployee failed", zap.Error(err))
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, employee)
}

// UpdateEmployee applies a partial update. Field presence matters (absent
// vs null vehicle_id), so the body is decoded as a raw map before turning
// into a patch.
func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(strings.TrimPrefix(r.URL.Path, "/employees/"))
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var body map[string]any
	if err := readBodyJSON(r, 1<<20, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	patch, err := employeePatchFromBody(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	employee, err := h.board.UpdateEmployee(r.Context(), id, patch)
	if err != nil {
		if err != service.ErrNoFields && err != repository.ErrNotFound {
			h.logger.Error("UpdateEmployee failed", zap.Int64("id", id), zap.Error(err))
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employee)
}

// DeleteEmployee removes a roster entry.
func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(strings.TrimPrefix(r.URL.Path, "/employees/"))
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err := h.board.DeleteEmployee(r.Context(), id); err != nil {
		if err != repository.ErrNotFound {
			h.logger.Error("DeleteEmployee failed", zap.Int64("id", id), zap.Error(err))
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

// employeePatchFromBody builds the caller patch from the raw JSON object.
// Only recognized keys are honored; unknown keys are ignored.
func employeePatchFromBody(body map[string]any) (repository.EmployeePatch, error) {
	var patch repository.EmployeePatch

	str := func(key string) (*string, error) {
		v, ok := body[key]
		if !ok {
			return nil, nil
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be a string", key)
		}
		return &s, nil
	}

	var err error
	if patch.Name, err = str("name"); err != nil {
		return patch, err
	}
	if patch.Department, err = str("department"); err != nil {
		return patch, err
	}
	if patch.Status, err = str("status"); err != nil {
		return patch, err
	}
	if patch.Comment, err = str("comment"); err != nil {
		return patch, err
	}
	if patch.EstimatedReturn, err = str("estimated_return"); err != nil {
		return patch, err
	}

	if v, present := body["vehicle_id"]; present {
		patch.VehicleSet = true
		switch t := v.(type) {
		case nil:
			// explicit clear
		case float64:
			id := int64(t)
			if id != 0 {
				patch.VehicleID = &id
			}
		case string:
			if t != "" {
				id, err := strconv.ParseInt(t, 10, 64)
				if err != nil || id < 0 {
					return patch, fmt.Errorf("vehicle_id must be a number")
				}
				if id != 0 {
					patch.VehicleID = &id
				}
			}
		default:
			return patch, fmt.Errorf("vehicle_id must be a number")
		}
	}
	return patch, nil
}
