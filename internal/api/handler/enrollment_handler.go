package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/service"
	"github.com/RashmiFernando/study-sphere/pkg/response"
)

// EnrollmentHandler 选课模块 HTTP 处理器
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
}

// NewEnrollmentHandler 创建 EnrollmentHandler
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc}
}

// Create POST /enrollment/create
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if !bindJSON(c, &req) {
		return
	}

	enrollment, err := h.enrollmentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}
	response.Created(c, "Enrollment created successfully", enrollment)
}

// ListByStudent GET /enrollment/student-enrollments/:studentId
func (h *EnrollmentHandler) ListByStudent(c *gin.Context) {
	enrollments, err := h.enrollmentSvc.ListByStudent(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}
	response.OK(c, "Enrollments", enrollments)
}

// CountByCode GET /enrollment/student-count/:code
func (h *EnrollmentHandler) CountByCode(c *gin.Context) {
	count, err := h.enrollmentSvc.CountByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.InternalError(c, "Failed to fetch student count", err)
		return
	}
	response.OK(c, "Student count", dto.CountResponse{Count: count})
}

func (h *EnrollmentHandler) handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEnrollmentFieldsMissing):
		response.BadRequest(c, 15001, "All fields are required")
	case errors.Is(err, service.ErrNoEnrollments):
		response.NotFound(c, 15002, "No enrollments found for this student.")
	default:
		response.InternalError(c, "An error occurred while processing enrollment", err)
	}
}
