package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Derived schedule statuses.
const (
	StatusAvailable        = "Available"
	StatusOccupied         = "Occupied"
	StatusUnderMaintenance = "Under Maintenance"
)

// Event type and recurrence values with special handling.
const (
	EventTypeLecture = "Lecture"
	EventTypeOther   = "Other"
	RecurrenceYes    = "Yes"
	RecurrenceNo     = "No"
)

// Schedule collection "schedules". EndTime and Status are derived on every
// save.
type Schedule struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"                 json:"_id"`
	ScheduleID          string             `bson:"scheduleId"                    json:"scheduleId"`
	RoomName            string             `bson:"roomName"                      json:"roomName"`
	EventType           string             `bson:"eventType"                     json:"eventType"`
	CustomEventType     string             `bson:"customEventType,omitempty"     json:"customEventType,omitempty"`
	EventName           string             `bson:"eventName"                     json:"eventName"`
	Faculty             string             `bson:"faculty"                       json:"faculty"`
	Department          string             `bson:"department"                    json:"department"`
	Date                time.Time          `bson:"date"                          json:"date"`
	StartTime           string             `bson:"startTime"                     json:"startTime"`
	Duration            int                `bson:"duration"                      json:"duration"`
	EndTime             string             `bson:"endTime"                       json:"endTime"`
	Recurrence          string             `bson:"recurrence"                    json:"recurrence"`
	RecurrenceFrequency string             `bson:"recurrenceFrequency,omitempty" json:"recurrenceFrequency,omitempty"`
	PriorityLevel       string             `bson:"priorityLevel"                 json:"priorityLevel"`
	Status              string             `bson:"status"                        json:"status"`
	CreatedBy           string             `bson:"createdBy"                     json:"createdBy"`
	Email               string             `bson:"email"                         json:"email"`
	CreatedAt           time.Time          `bson:"createdAt"                     json:"createdAt"`
}
