package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/service"
	"github.com/RashmiFernando/study-sphere/pkg/response"
)

// TimetableHandler 课表模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// List GET /api/timetable
func (h *TimetableHandler) List(c *gin.Context) {
	entries, err := h.timetableSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Error fetching timetable", err)
		return
	}
	response.OK(c, "Timetable", entries)
}

// Get GET /api/timetable/:id
func (h *TimetableHandler) Get(c *gin.Context) {
	entry, err := h.timetableSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}
	response.OK(c, "Timetable entry", entry)
}

// Create POST /api/timetable
func (h *TimetableHandler) Create(c *gin.Context) {
	var req dto.TimetableRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.timetableSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}
	response.Created(c, "Timetable created successfully", entry)
}

// Update PUT /api/timetable/:id
func (h *TimetableHandler) Update(c *gin.Context) {
	var req dto.TimetableRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := h.timetableSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}
	response.OK(c, "Timetable updated successfully", entry)
}

// Delete DELETE /api/timetable/:id
func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.timetableSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleTimetableError(c, err)
		return
	}
	response.OK(c, "Timetable deleted successfully", nil)
}

// GenerateAuto POST /api/timetable/generate-auto
func (h *TimetableHandler) GenerateAuto(c *gin.Context) {
	res, err := h.timetableSvc.GenerateAuto(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrGeneratorInputMissing) {
			response.BadRequest(c, 19002, "Lecturer or room data missing")
			return
		}
		response.InternalError(c, "Failed to auto-generate timetable", err)
		return
	}
	response.Created(c, "Auto timetable generation complete", generationResponse("auto", res))
}

// GenerateManual POST /api/timetable/generate-manual
func (h *TimetableHandler) GenerateManual(c *gin.Context) {
	res, err := h.timetableSvc.GenerateManual(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to generate timetable", err)
		return
	}
	response.OK(c, "Timetable generated successfully", generationResponse("manual", res))
}

func generationResponse(name string, res *service.GenerationResult) dto.GenerationResponse {
	return dto.GenerationResponse{
		Generator: name,
		Created:   len(res.Created),
		Skipped:   res.Skipped,
		Schedules: res.Created,
	}
}

func (h *TimetableHandler) handleTimetableError(c *gin.Context, err error) {
	var missing *service.RoomMissingError
	switch {
	case errors.Is(err, service.ErrTimetableNotFound):
		response.NotFound(c, 19001, "Timetable not found")
	case errors.As(err, &missing):
		response.BadRequest(c, 19003, missing.Error())
	case errors.Is(err, service.ErrDateInPast):
		response.BadRequest(c, 19004, "Date cannot be in the past")
	case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrInvalidTime):
		response.ErrorWithDetails(c, http.StatusBadRequest, 19006, "Invalid timetable entry", err.Error())
	default:
		response.InternalError(c, "Server error", err)
	}
}
