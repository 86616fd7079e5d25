package dto

import "time"

// ── exam ──

// ExamRequest create and reschedule body.
type ExamRequest struct {
	Code         string     `json:"code"`
	ExamName     string     `json:"examName"`
	ExamDate     *time.Time `json:"examDate"`
	ExamDuration int        `json:"examDuration" binding:"omitempty,min=1"`
}
