package dto

// ── lecturer ──

// LecturerRequest create and update body.
type LecturerRequest struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Department         string `json:"department"`
	AssignedCourses    string `json:"assignedCourses"`
	AvailabilityStatus string `json:"availabilityStatus" binding:"omitempty,oneof='Available' 'Not Available'"`
	Email              string `json:"email"              binding:"omitempty,email"`
}

// LecturerIDRequest identifies a lecturer by business id in the body.
type LecturerIDRequest struct {
	ID string `json:"id" binding:"required"`
}
