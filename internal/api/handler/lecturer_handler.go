package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/service"
	"github.com/RashmiFernando/study-sphere/pkg/response"
)

// LecturerHandler 讲师模块 HTTP 处理器
type LecturerHandler struct {
	lecturerSvc service.LecturerService
}

// NewLecturerHandler 创建 LecturerHandler
func NewLecturerHandler(lecturerSvc service.LecturerService) *LecturerHandler {
	return &LecturerHandler{lecturerSvc: lecturerSvc}
}

// List GET /api/lecturers
func (h *LecturerHandler) List(c *gin.Context) {
	lecturers, err := h.lecturerSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Server error", err)
		return
	}
	response.OK(c, "Lecturers", lecturers)
}

// Create POST /api/createlecturer
func (h *LecturerHandler) Create(c *gin.Context) {
	var req dto.LecturerRequest
	if !bindJSON(c, &req) {
		return
	}

	lecturer, err := h.lecturerSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c, "Server error", err)
		return
	}
	response.OK(c, "Lecturer added", lecturer)
}

// Update PUT /api/updatelecturer
func (h *LecturerHandler) Update(c *gin.Context) {
	var req dto.LecturerRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.lecturerSvc.Update(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c, "Server error", err)
		return
	}
	response.OK(c, "Lecturer updated", res)
}

// Delete DELETE /api/deletelecturer
func (h *LecturerHandler) Delete(c *gin.Context) {
	var req dto.LecturerIDRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.lecturerSvc.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, service.ErrLecturerNotFound) {
			response.NotFound(c, 13001, "Lecturer not found")
			return
		}
		response.InternalError(c, "Server error", err)
		return
	}
	response.OK(c, "Lecturer deleted and courses updated.", nil)
}
