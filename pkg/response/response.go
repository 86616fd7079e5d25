package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CodeInternal is the envelope code for unexpected failures.
const CodeInternal = 50000

// Response is the JSON envelope every endpoint answers with.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// ── success ──

// OK 200 with a message and the affected document(s).
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Created 201 with a message and the created document(s).
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Attachment streams a generated file as a download.
func Attachment(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, body)
}

// ── errors ──

// Error writes an error envelope.
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithDetails writes an error envelope with extra detail text.
func ErrorWithDetails(c *gin.Context, httpStatus int, code int, message, details string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest 400
func BadRequest(c *gin.Context, code int, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// ValidationFailed 400 carrying the translated field errors in details.
func ValidationFailed(c *gin.Context, code int, message, details string) {
	ErrorWithDetails(c, http.StatusBadRequest, code, message, details)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404
func NotFound(c *gin.Context, code int, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError 500. The underlying error text is passed through to the
// caller and recorded on the gin context for the request logger.
func InternalError(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
		_ = c.Error(err)
	}
	ErrorWithDetails(c, http.StatusInternalServerError, CodeInternal, message, details)
}
