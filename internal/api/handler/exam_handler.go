package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/service"
	"github.com/RashmiFernando/study-sphere/pkg/response"
)

// ExamHandler 考试模块 HTTP 处理器
type ExamHandler struct {
	examSvc service.ExamService
}

// NewExamHandler 创建 ExamHandler
func NewExamHandler(examSvc service.ExamService) *ExamHandler {
	return &ExamHandler{examSvc: examSvc}
}

// Create POST /exam/create
func (h *ExamHandler) Create(c *gin.Context) {
	var req dto.ExamRequest
	if !bindJSON(c, &req) {
		return
	}

	exam, err := h.examSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	response.Created(c, "Exam created successfully", exam)
}

// List GET /exam/view-all
func (h *ExamHandler) List(c *gin.Context) {
	exams, err := h.examSvc.List(c.Request.Context())
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, "Exams fetched successfully", exams)
}

// Get GET /exam/view/:id
func (h *ExamHandler) Get(c *gin.Context) {
	exam, err := h.examSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, "Exam details", exam)
}

// ListForStudent GET /exam/student-exams/:id
func (h *ExamHandler) ListForStudent(c *gin.Context) {
	exams, err := h.examSvc.ListForStudent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, "Exams fetched successfully", exams)
}

// Reschedule PUT /exam/update/:id
func (h *ExamHandler) Reschedule(c *gin.Context) {
	var req dto.ExamRequest
	if !bindJSON(c, &req) {
		return
	}

	exam, err := h.examSvc.Reschedule(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, "Exam rescheduled successfully", exam)
}

// Delete DELETE /exam/delete/:id
func (h *ExamHandler) Delete(c *gin.Context) {
	if err := h.examSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleExamError(c, err)
		return
	}
	response.OK(c, "Exam deleted successfully", nil)
}

func (h *ExamHandler) handleExamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExamFieldsMissing):
		response.BadRequest(c, 16001, "Please provide all required fields")
	case errors.Is(err, service.ErrNoExams):
		response.NotFound(c, 16002, "No exams are available.")
	case errors.Is(err, service.ErrExamNotFound):
		response.NotFound(c, 16003, "Exam not found")
	case errors.Is(err, service.ErrNoEnrollments):
		response.NotFound(c, 16004, "No enrollments found for this student.")
	case errors.Is(err, service.ErrNoStudentExams):
		response.NotFound(c, 16005, "No exams available for your enrolled courses.")
	default:
		response.InternalError(c, "Error processing exam", err)
	}
}
