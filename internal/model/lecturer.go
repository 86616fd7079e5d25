package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Lecturer availability values.
const (
	LecturerAvailable    = "Available"
	LecturerNotAvailable = "Not Available"
	// LecturerUnavailable replaces the lecturer name on courses whose
	// lecturer was deleted.
	LecturerUnavailable = "Lecturer Unavailable"
)

// MaxCoursesPerLecturer is the course count at which a lecturer stops being
// auto-assigned.
const MaxCoursesPerLecturer = 3

// Lecturer collection "lecturers".
type Lecturer struct {
	ObjectID           primitive.ObjectID `bson:"_id,omitempty"      json:"_id"`
	ID                 string             `bson:"id"                 json:"id"`
	Name               string             `bson:"name"               json:"name"`
	Department         string             `bson:"department"         json:"department"`
	AssignedCourses    string             `bson:"assignedCourses"    json:"assignedCourses"`
	AvailabilityStatus string             `bson:"availabilityStatus" json:"availabilityStatus"`
	Email              string             `bson:"email"              json:"email"`
}
