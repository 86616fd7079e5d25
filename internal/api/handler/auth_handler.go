package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/service"
	"github.com/RashmiFernando/study-sphere/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 注册职员账号
// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, "User registered", user)
}

// Login 职员登录
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, "Login successful", result)
}

// Logout 吊销当前令牌
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c, "Logout failed", err)
		return
	}

	response.OK(c, "Logged out", nil)
}

// Me 当前登录用户
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), userID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, "Current user", user)
}

// AdminDashboard GET /api/admin/dashboard
func (h *AuthHandler) AdminDashboard(c *gin.Context) {
	response.OK(c, "Welcome to the Admin Dashboard", nil)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRegistrationFailed):
		response.ErrorWithDetails(c, http.StatusInternalServerError, 11001, "Registration failed", err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.Unauthorized(c, 11002, "User not found")
	case errors.Is(err, service.ErrInvalidPassword):
		response.Unauthorized(c, 11003, "Invalid password")
	default:
		response.InternalError(c, "Server error", err)
	}
}
