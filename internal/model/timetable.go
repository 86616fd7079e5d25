package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Timetable collection "timetables". Date is kept as text: generated entries
// carry a weekday label or a timestamp, manual entries an ISO date.
type Timetable struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"                 json:"_id"`
	RoomName            string             `bson:"roomName,omitempty"            json:"roomName,omitempty"`
	EventType           string             `bson:"eventType,omitempty"           json:"eventType,omitempty"`
	CustomEventType     string             `bson:"customEventType,omitempty"     json:"customEventType,omitempty"`
	EventName           string             `bson:"eventName,omitempty"           json:"eventName,omitempty"`
	Code                string             `bson:"code,omitempty"                json:"code,omitempty"`
	Faculty             string             `bson:"faculty,omitempty"             json:"faculty,omitempty"`
	Department          string             `bson:"department,omitempty"          json:"department,omitempty"`
	Date                string             `bson:"date,omitempty"                json:"date,omitempty"`
	StartTime           string             `bson:"startTime,omitempty"           json:"startTime,omitempty"`
	Duration            int                `bson:"duration,omitempty"            json:"duration,omitempty"`
	Recurrence          string             `bson:"recurrence,omitempty"          json:"recurrence,omitempty"`
	RecurrenceFrequency string             `bson:"recurrenceFrequency,omitempty" json:"recurrenceFrequency,omitempty"`
	PriorityLevel       string             `bson:"priorityLevel,omitempty"       json:"priorityLevel,omitempty"`
	CreatedBy           string             `bson:"createdBy,omitempty"           json:"createdBy,omitempty"`
	Email               string             `bson:"email,omitempty"               json:"email,omitempty"`

	// set by the naive generator
	StudentID  string              `bson:"studentId,omitempty"  json:"studentId,omitempty"`
	CourseID   *primitive.ObjectID `bson:"courseId,omitempty"   json:"courseId,omitempty"`
	LecturerID string              `bson:"lecturerId,omitempty" json:"lecturerId,omitempty"`
	RoomID     *primitive.ObjectID `bson:"roomId,omitempty"     json:"roomId,omitempty"`
	TimeSlot   string              `bson:"timeSlot,omitempty"   json:"timeSlot,omitempty"`
}
