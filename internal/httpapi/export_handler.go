package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/OutOfFlux/newinoutboard/internal/service"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// rosterExportHeader is the column layout of the roster export.
var rosterExportHeader = []string{
	"Name",
	"Department",
	"Status",
	"Comment",
	"Estimated Return",
	"Vehicle",
	"Last Changed",
}

// ExportHandler produces the admin roster export as an .xlsx download.
type ExportHandler struct {
	board  *service.BoardService
	logger *zap.Logger
}

func NewExportHandler(board *service.BoardService, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{board: board, logger: logger}
}

func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	employees, err := h.board.ListEmployees(r.Context())
	if err != nil {
		h.logger.Error("Export failed", zap.Error(err))
		writeServiceError(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Roster"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		h.logger.Error("failed to create sheet", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		h.logger.Error("failed to create header style", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	for col, header := range rosterExportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, e := range employees {
		vehicle := ""
		if e.VehicleName != nil {
			vehicle = *e.VehicleName
		}
		values := []any{
			e.Name,
			e.Department,
			e.Status,
			e.Comment,
			e.EstimatedReturn,
			vehicle,
			e.LastChanged.Format(time.RFC3339),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	filename := fmt.Sprintf("roster-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := f.WriteTo(w); err != nil {
		h.logger.Error("failed to stream export", zap.Error(err))
	}
}
