package dto

// ── timetable ──

// TimetableRequest manual timetable entry.
type TimetableRequest struct {
	RoomName            string `json:"roomName"  binding:"required"`
	EventType           string `json:"eventType"`
	CustomEventType     string `json:"customEventType"`
	EventName           string `json:"eventName"`
	Code                string `json:"code"`
	Faculty             string `json:"faculty"`
	Department          string `json:"department"`
	Date                string `json:"date"      binding:"required"`
	StartTime           string `json:"startTime" binding:"omitempty,hhmm"`
	Duration            int    `json:"duration"  binding:"omitempty,min=1"`
	Recurrence          string `json:"recurrence"`
	RecurrenceFrequency string `json:"recurrenceFrequency"`
	PriorityLevel       string `json:"priorityLevel"`
	CreatedBy           string `json:"createdBy"`
	Email               string `json:"email"`
}

// GenerationResponse entries created by a generator run.
type GenerationResponse struct {
	Generator string      `json:"generator"`
	Created   int         `json:"created"`
	Skipped   int         `json:"skipped"`
	Schedules interface{} `json:"schedules"`
}
