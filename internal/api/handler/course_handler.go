package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/service"
	"github.com/RashmiFernando/study-sphere/pkg/response"
)

// CourseHandler 课程模块 HTTP 处理器
type CourseHandler struct {
	courseSvc service.CourseService
}

// NewCourseHandler 创建 CourseHandler
func NewCourseHandler(courseSvc service.CourseService) *CourseHandler {
	return &CourseHandler{courseSvc: courseSvc}
}

// List GET /api/courses
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courseSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Failed to fetch courses", err)
		return
	}
	response.OK(c, "Courses", courses)
}

// ListNonEmpty GET /api/all
func (h *CourseHandler) ListNonEmpty(c *gin.Context) {
	courses, err := h.courseSvc.ListNonEmpty(c.Request.Context())
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, "Courses", courses)
}

// Create POST /api/createcourse
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CourseRequest
	if !bindJSON(c, &req) {
		return
	}

	course, err := h.courseSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.Created(c, "Course added successfully", course)
}

// Update PUT /api/updatecourse
func (h *CourseHandler) Update(c *gin.Context) {
	var req dto.CourseRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.courseSvc.Update(c.Request.Context(), &req)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, "Course updated", res)
}

// Delete DELETE /api/deletecourse
func (h *CourseHandler) Delete(c *gin.Context) {
	var req dto.CourseCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.courseSvc.Delete(c.Request.Context(), req.Code)
	if err != nil {
		h.handleCourseError(c, err)
		return
	}
	response.OK(c, "Course deleted", res)
}

func (h *CourseHandler) handleCourseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoAvailableLecturer):
		response.BadRequest(c, 12001, "No available lecturer found in this department.")
	case errors.Is(err, service.ErrNoCourses):
		response.NotFound(c, 12002, "No courses found")
	default:
		response.InternalError(c, "Server error", err)
	}
}
