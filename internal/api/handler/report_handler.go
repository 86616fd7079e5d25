package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/internal/api/middleware"
	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/service"
	"github.com/RashmiFernando/study-sphere/pkg/response"
)

// ReportHandler 报表模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Utilization 教室使用率报表
// GET /api/reports/utilization-report?format=json|csv|pdf
func (h *ReportHandler) Utilization(c *gin.Context) {
	report, err := h.reportSvc.UtilizationReport(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Error generating report", err)
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "csv":
		body, err := h.reportSvc.RenderCSV(report)
		if err != nil {
			response.InternalError(c, "Error generating report", err)
			return
		}
		response.Attachment(c, "text/csv", "utilization-report.csv", body)
	case "pdf":
		body, err := h.reportSvc.RenderPDF(report)
		if err != nil {
			response.InternalError(c, "Error generating report", err)
			return
		}
		response.Attachment(c, "application/pdf", "utilization-report.pdf", body)
	default:
		response.OK(c, "Utilization report", report)
	}
}

// ChartPDF 带图表的使用率 PDF
// POST /api/reports/utilization-report-pdf-with-charts
func (h *ReportHandler) ChartPDF(c *gin.Context) {
	var req dto.ChartReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if middleware.IsBodyTooLarge(err) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Request body too large")
			return
		}
		response.BadRequest(c, 20001, "Invalid payload: Missing reportData or charts")
		return
	}

	body, err := h.reportSvc.ChartPDF(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidChartPayload) {
			response.BadRequest(c, 20001, "Invalid payload: Missing reportData or charts")
			return
		}
		response.InternalError(c, "Error generating PDF with charts", err)
		return
	}
	response.Attachment(c, "application/pdf", "utilization-report-with-charts.pdf", body)
}
