package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/service"
	"github.com/RashmiFernando/study-sphere/pkg/response"
)

// StudentHandler 学生模块 HTTP 处理器
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler 创建 StudentHandler
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// Register POST /student/register
func (h *StudentHandler) Register(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.studentSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, "Student Registered Successfully", student)
}

// List GET /student/view-all
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.studentSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Unable to get All Students", err)
		return
	}
	response.OK(c, "All Students", students)
}

// Get GET /student/view/:id
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.studentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, "Student Details", student)
}

// Update PUT /student/update/:id
func (h *StudentHandler) Update(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if !bindJSON(c, &req) {
		return
	}

	student, err := h.studentSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, "Student Updated", student)
}

// ChangePassword PUT /student/change-password/:id
func (h *StudentHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.studentSvc.ChangePassword(c.Request.Context(), c.Param("id"), req.Password); err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, "Password updated successfully", nil)
}

// Delete DELETE /student/delete/:id
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.studentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, "Student Deleted", nil)
}

// Login POST /student/login
func (h *StudentHandler) Login(c *gin.Context) {
	var req dto.StudentLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.studentSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleStudentError(c, err)
		return
	}
	response.OK(c, "Login successful", result)
}

func (h *StudentHandler) handleStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentFieldsMissing):
		response.BadRequest(c, 14001, "Please fill all the fields")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 14002, "Student not found")
	case errors.Is(err, service.ErrPasswordRequired):
		response.BadRequest(c, 14003, "Password is required")
	case errors.Is(err, service.ErrCredentialsMissing):
		response.BadRequest(c, 14004, "Please enter username and password")
	case errors.Is(err, service.ErrUsernameNotFound):
		response.NotFound(c, 14005, "Username not found..")
	case errors.Is(err, service.ErrIncorrectPassword):
		response.Unauthorized(c, 14006, "Incorrect password")
	default:
		response.InternalError(c, "Server error", err)
	}
}
