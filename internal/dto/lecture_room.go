package dto

import (
	"time"

	"github.com/RashmiFernando/study-sphere/internal/model"
)

// ── lecture room ──

// LectureRoomRequest create and replace body. Utilization is not accepted:
// it is recomputed from schedules by the refresh job.
type LectureRoomRequest struct {
	RoomID              string             `json:"room_id"`
	RoomName            string             `json:"roomName"             binding:"required"`
	Location            string             `json:"location"             binding:"required"`
	Capacity            int                `json:"capacity"             binding:"gte=0"`
	RoomType            string             `json:"room_type"            binding:"required,oneof='Lecture Hall' 'Computer Lab' 'Auditorium' 'BYOD Lab' 'Conference Room'"`
	AvailableEquipments []string           `json:"available_equipments" binding:"dive,oneof='Projectors' 'Whiteboard' 'Smartboard' 'Computers' 'Podium' 'Audio System'"`
	Quantity            map[string]float64 `json:"quantity"`
	SeatingType         string             `json:"seating_type"         binding:"required,oneof='Fixed Seating' 'Flexible Seating' 'Lab Workstations'"`
	AirConditioning     bool               `json:"air_conditioning"`
	PowerOutlets        int                `json:"power_outlets"        binding:"gte=0"`
	Condition           string             `json:"condition"            binding:"required,oneof='Excellent' 'Good' 'Needs to Repair'"`
	Department          string             `json:"department"           binding:"required"`
	AddedBy             string             `json:"addedBy"              binding:"required"`
	Email               string             `json:"email"                binding:"required"`
}

// RoomNameQuery ?roomName=
type RoomNameQuery struct {
	RoomName string `form:"roomName"`
}

// RoomSearchQuery ?query=
type RoomSearchQuery struct {
	Query string `form:"query"`
}

// RoomReport summary of every room.
type RoomReport struct {
	Title       string              `json:"title"`
	GeneratedOn time.Time           `json:"generatedOn"`
	Summary     RoomReportSummary   `json:"summary"`
	Rooms       []model.LectureRoom `json:"rooms"`
}

// RoomReportSummary aggregated room figures.
type RoomReportSummary struct {
	TotalRooms         int            `json:"totalRooms"`
	AvgUtilization     string         `json:"avgUtilization"`
	ConditionBreakdown map[string]int `json:"conditionBreakdown"`
	EquipmentUsage     map[string]int `json:"equipmentUsage"`
}
