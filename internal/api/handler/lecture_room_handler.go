package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/service"
	"github.com/RashmiFernando/study-sphere/pkg/response"
)

// LectureRoomHandler 教室模块 HTTP 处理器
type LectureRoomHandler struct {
	roomSvc service.LectureRoomService
}

// NewLectureRoomHandler 创建 LectureRoomHandler
func NewLectureRoomHandler(roomSvc service.LectureRoomService) *LectureRoomHandler {
	return &LectureRoomHandler{roomSvc: roomSvc}
}

// List GET /api/lecture-rooms
func (h *LectureRoomHandler) List(c *gin.Context) {
	rooms, err := h.roomSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Server error", err)
		return
	}
	response.OK(c, "Lecture rooms", rooms)
}

// Get GET /api/lecture-rooms/:id
func (h *LectureRoomHandler) Get(c *gin.Context) {
	room, err := h.roomSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleRoomError(c, err)
		return
	}
	response.OK(c, "Lecture room", room)
}

// Create POST /api/lecture-rooms
func (h *LectureRoomHandler) Create(c *gin.Context) {
	var req dto.LectureRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := h.roomSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}
	response.Created(c, "Lecture room created", room)
}

// Update PUT /api/lecture-rooms/:id
func (h *LectureRoomHandler) Update(c *gin.Context) {
	var req dto.LectureRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	room, err := h.roomSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}
	response.OK(c, "Lecture room updated", room)
}

// Delete DELETE /api/lecture-rooms/:id
func (h *LectureRoomHandler) Delete(c *gin.Context) {
	if err := h.roomSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleRoomError(c, err)
		return
	}
	response.OK(c, "Lecture room deleted", nil)
}

// CheckRoomName GET /api/lecture-rooms/check-room-name?roomName=
func (h *LectureRoomHandler) CheckRoomName(c *gin.Context) {
	var q dto.RoomNameQuery
	_ = c.ShouldBindQuery(&q)

	exists, err := h.roomSvc.RoomNameExists(c.Request.Context(), q.RoomName)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}
	response.OK(c, "Room name checked", dto.ExistsResponse{Exists: exists})
}

// Search GET /api/lecture-rooms/search?query=
func (h *LectureRoomHandler) Search(c *gin.Context) {
	var q dto.RoomSearchQuery
	_ = c.ShouldBindQuery(&q)

	rooms, err := h.roomSvc.Search(c.Request.Context(), q.Query)
	if err != nil {
		response.InternalError(c, "Server error", err)
		return
	}
	response.OK(c, "Lecture rooms", rooms)
}

// Report GET /api/lecture-rooms/report
func (h *LectureRoomHandler) Report(c *gin.Context) {
	report, err := h.roomSvc.Report(c.Request.Context())
	if err != nil {
		response.InternalError(c, "Server error", err)
		return
	}
	response.OK(c, report.Title, report)
}

func (h *LectureRoomHandler) handleRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLectureRoomNotFound):
		response.NotFound(c, 17001, "Lecture room not found")
	case errors.Is(err, service.ErrRoomNameRequired):
		response.BadRequest(c, 17002, "Room name is required")
	default:
		response.InternalError(c, "Server error", err)
	}
}
