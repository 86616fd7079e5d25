package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/service"
	"github.com/RashmiFernando/study-sphere/pkg/response"
)

// ScheduleHandler 教室预约模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// List GET /api/schedules
func (h *ScheduleHandler) List(c *gin.Context) {
	schedules, err := h.scheduleSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Error fetching schedules", err)
		return
	}
	response.OK(c, "Schedules", schedules)
}

// Get GET /api/schedules/:id
func (h *ScheduleHandler) Get(c *gin.Context) {
	schedule, err := h.scheduleSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err, "Error fetching schedule")
		return
	}
	response.OK(c, "Schedule", schedule)
}

// Create POST /api/schedules
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.ScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := h.scheduleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err, "Error creating schedule")
		return
	}
	response.Created(c, "Schedule created successfully", schedule)
}

// Update PUT /api/schedules/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req dto.ScheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	schedule, err := h.scheduleSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleScheduleError(c, err, "Error updating schedule")
		return
	}
	response.OK(c, "Schedule updated successfully", schedule)
}

// Delete DELETE /api/schedules/:id
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.scheduleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleScheduleError(c, err, "Error deleting schedule")
		return
	}
	response.OK(c, "Schedule deleted successfully", nil)
}

func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error, fallback string) {
	var missing *service.RoomMissingError
	switch {
	case errors.As(err, &missing):
		response.BadRequest(c, 18001, missing.Error())
	case errors.Is(err, service.ErrDateInPast):
		response.BadRequest(c, 18002, "Date cannot be in the past")
	case errors.Is(err, service.ErrInvalidDate), errors.Is(err, service.ErrInvalidTime):
		response.ErrorWithDetails(c, http.StatusBadRequest, 18003, fallback, err.Error())
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 18004, "Schedule not found")
	default:
		response.InternalError(c, fallback, err)
	}
}
