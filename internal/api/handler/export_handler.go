package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aubrey-sherman/baby-bootcamp-be/internal/service"
	"github.com/aubrey-sherman/baby-bootcamp-be/pkg/response"
)

// ExportHandler serves feeding log exports.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportBlock streams a block's entries as a spreadsheet or a calendar.
// GET /api/v1/blocks/:blockID/export?format=xlsx|ics
func (h *ExportHandler) ExportBlock(c *gin.Context) {
	username, ok := MustGetUsername(c)
	if !ok {
		return
	}

	blockID := c.Param("blockID")
	zone := GetTimezone(c)

	switch c.DefaultQuery("format", "xlsx") {
	case "xlsx":
		data, filename, err := h.exportSvc.BlockXLSX(c.Request.Context(), blockID, username, zone)
		if err != nil {
			response.FromError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	case "ics":
		body, filename, err := h.exportSvc.BlockICS(c.Request.Context(), blockID, username, zone)
		if err != nil {
			response.FromError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))

	default:
		response.BadRequest(c, 10001, "unknown export format")
	}
}
