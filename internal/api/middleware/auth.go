package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/pkg/jwt"
	"github.com/RashmiFernando/study-sphere/pkg/response"
)

// Context keys set by JWTAuth.
const (
	ContextUserID    = "user_id"
	ContextRole      = "role"
	ContextStudentID = "student_id"
	ContextClaims    = "claims"
)

// TokenChecker reports whether a token id was revoked.
type TokenChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证令牌。
// 没有令牌返回 403，令牌无效或已吊销返回 401。blacklist 为 nil 时不检查吊销
func JWTAuth(jwtMgr *jwt.Manager, blacklist TokenChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Forbidden(c, 10003, "Access denied")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, 10002, "Invalid token")
			c.Abort()
			return
		}

		if blacklist != nil && claims.ID != "" {
			revoked, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			// Redis 出错时降级放行
			if err == nil && revoked {
				response.Unauthorized(c, 10002, "Invalid token")
				c.Abort()
				return
			}
		}

		c.Set(ContextClaims, claims)
		switch claims.TokenType {
		case jwt.TokenTypeStudent:
			c.Set(ContextStudentID, claims.StudentID)
		default:
			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextRole, claims.Role)
		}

		c.Next()
	}
}

// bearerToken returns the part after "Bearer ", or the whole header when no
// scheme is given.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok {
		return header
	}
	if !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RoleAuth 角色权限中间件
// 检查当前用户是否具有指定角色之一，否则以 message 返回 403
func RoleAuth(message string, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, message)
		c.Abort()
	}
}

// AdminOnly allows user tokens with the admin role.
func AdminOnly() gin.HandlerFunc {
	return RoleAuth("Admins only", "admin")
}

// MutatingOnly applies mw to requests that change state and lets reads
// through untouched.
func MutatingOnly(mw gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			mw(c)
		}
	}
}
