package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exam collection "exams". StudentCount is the enrollment count for Code at
// the time the exam was created.
type Exam struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	ExamID       string             `bson:"examId"        json:"examId"`
	Code         string             `bson:"code"          json:"code"`
	ExamName     string             `bson:"examName"      json:"examName"`
	ExamDate     time.Time          `bson:"examDate"      json:"examDate"`
	ExamDuration int                `bson:"examDuration"  json:"examDuration"`
	StudentCount int64              `bson:"studentCount"  json:"studentCount"`
}
