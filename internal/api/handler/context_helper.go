package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/internal/api/middleware"
	"github.com/RashmiFernando/study-sphere/pkg/jwt"
	"github.com/RashmiFernando/study-sphere/pkg/response"
	"github.com/RashmiFernando/study-sphere/pkg/validation"
)

// codeValidation is the envelope code for malformed or invalid bodies.
const codeValidation = 10001

// bindJSON 绑定并校验请求体。失败时写入 400（或 413）响应并返回 false，
// 调用方应直接 return
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if middleware.IsBodyTooLarge(err) {
			response.Error(c, http.StatusRequestEntityTooLarge, 10005, "Request body too large")
			return false
		}
		response.ValidationFailed(c, codeValidation, "Validation failed", validation.Translate(err))
		return false
	}
	return true
}

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
func MustGetUserID(c *gin.Context) (string, bool) {
	s := c.GetString(middleware.ContextUserID)
	if s == "" {
		response.Unauthorized(c, 10002, "Invalid token")
		return "", false
	}
	return s, true
}

// MustGetClaims 从 Gin 上下文中提取令牌声明
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ContextClaims)
	if !exists {
		response.Unauthorized(c, 10002, "Invalid token")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, 10002, "Invalid token")
		return nil, false
	}
	return claims, true
}
