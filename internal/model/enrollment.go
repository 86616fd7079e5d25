package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enrollment status values.
const (
	EnrollmentActive   = "Active"
	EnrollmentUnenroll = "Unenroll"
)

// Enrollment collection "enrollments".
type Enrollment struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty"  json:"_id"`
	EnrollmentID   string              `bson:"enrollmentId"   json:"enrollmentId"`
	Code           string              `bson:"code"           json:"code"`
	StudentID      string              `bson:"studentId"      json:"studentId"`
	CourseName     string              `bson:"courseName"     json:"courseName"`
	CourseID       *primitive.ObjectID `bson:"courseId"       json:"courseId"`
	EnrollmentDate time.Time           `bson:"enrollmentDate" json:"enrollmentDate"`
	Status         string              `bson:"status"         json:"status"`
}
