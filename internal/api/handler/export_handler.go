package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/internal/service"
	"github.com/RashmiFernando/study-sphere/pkg/response"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeICS  = "text/calendar; charset=utf-8"
)

// ExportHandler 课表导出 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// TimetableXLSX 导出课表 Excel
// GET /api/timetable/export/xlsx
func (h *ExportHandler) TimetableXLSX(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportTimetableXLSX(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentTypeXLSX, buf.Bytes())
}

// TimetableICS 导出课表日历
// GET /api/timetable/export/ics
func (h *ExportHandler) TimetableICS(c *gin.Context) {
	body, filename, err := h.exportSvc.ExportTimetableICS(c.Request.Context())
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	response.Attachment(c, contentTypeICS, filename, body)
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportNoEntries):
		response.NotFound(c, 19005, "No timetable entries to export")
	default:
		response.InternalError(c, "Export failed", err)
	}
}
