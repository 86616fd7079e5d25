package model

import (
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Room conditions.
const (
	ConditionExcellent     = "Excellent"
	ConditionGood          = "Good"
	ConditionNeedsToRepair = "Needs to Repair"
)

// Equipment kinds.
const (
	EquipmentProjectors  = "Projectors"
	EquipmentWhiteboard  = "Whiteboard"
	EquipmentSmartboard  = "Smartboard"
	EquipmentComputers   = "Computers"
	EquipmentPodium      = "Podium"
	EquipmentAudioSystem = "Audio System"
)

// CountedEquipment are the kinds tracked by quantity. Audio System is only
// listed, never counted.
var CountedEquipment = []string{
	EquipmentProjectors,
	EquipmentWhiteboard,
	EquipmentSmartboard,
	EquipmentComputers,
	EquipmentPodium,
}

// LectureRoom collection "lecturerooms".
type LectureRoom struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"        json:"_id"`
	RoomID              string             `bson:"room_id"              json:"room_id"`
	RoomName            string             `bson:"roomName"             json:"roomName"`
	Location            string             `bson:"location"             json:"location"`
	Capacity            int                `bson:"capacity"             json:"capacity"`
	RoomType            string             `bson:"room_type"            json:"room_type"`
	AvailableEquipments []string           `bson:"available_equipments" json:"available_equipments"`
	Quantity            map[string]float64 `bson:"quantity"             json:"quantity"`
	SeatingType         string             `bson:"seating_type"         json:"seating_type"`
	AirConditioning     bool               `bson:"air_conditioning"     json:"air_conditioning"`
	PowerOutlets        int                `bson:"power_outlets"        json:"power_outlets"`
	Condition           string             `bson:"condition"            json:"condition"`
	Department          string             `bson:"department"           json:"department"`
	AddedBy             string             `bson:"addedBy"              json:"addedBy"`
	Email               string             `bson:"email"                json:"email"`
	Utilization         float64            `bson:"utilization"          json:"utilization"`
	CreatedAt           time.Time          `bson:"createdAt"            json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt"            json:"updatedAt"`
}

// NewRoomID returns ROOM-<unix millis>-<0..999>.
func NewRoomID(now time.Time) string {
	return fmt.Sprintf("ROOM-%d-%d", now.UnixMilli(), rand.Intn(1000))
}

// DefaultQuantity has every counted equipment kind at zero.
func DefaultQuantity() map[string]float64 {
	q := make(map[string]float64, len(CountedEquipment))
	for _, e := range CountedEquipment {
		q[e] = 0
	}
	return q
}

// HasEquipment reports whether name is listed in the room's equipment.
func (r *LectureRoom) HasEquipment(name string) bool {
	for _, e := range r.AvailableEquipments {
		if e == name {
			return true
		}
	}
	return false
}
