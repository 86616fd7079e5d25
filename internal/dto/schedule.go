package dto

// ── schedule ──

// ScheduleRequest create and update body. Date accepts YYYY-MM-DD or RFC 3339.
type ScheduleRequest struct {
	RoomName            string `json:"roomName"            binding:"required,roomname"`
	EventType           string `json:"eventType"           binding:"required,oneof='Lecture' 'Exam' 'Meeting' 'Seminar/Workshop' 'Other'"`
	CustomEventType     string `json:"customEventType"     binding:"required_if=EventType Other,max=20"`
	EventName           string `json:"eventName"           binding:"required,max=20,eventname"`
	Faculty             string `json:"faculty"             binding:"required,oneof=Computing Engineering Architecture Science Hospitality Business Arts"`
	Department          string `json:"department"          binding:"required,max=30"`
	Date                string `json:"date"                binding:"required"`
	StartTime           string `json:"startTime"           binding:"required,hhmm"`
	Duration            int    `json:"duration"            binding:"required,min=1"`
	Recurrence          string `json:"recurrence"          binding:"omitempty,oneof=Yes No"`
	RecurrenceFrequency string `json:"recurrenceFrequency" binding:"required_if=Recurrence Yes,omitempty,oneof=Daily Weekly Monthly"`
	PriorityLevel       string `json:"priorityLevel"       binding:"required,oneof=High Medium Low"`
	CreatedBy           string `json:"createdBy"           binding:"required,max=20"`
	Email               string `json:"email"               binding:"required,email,max=50"`
}
