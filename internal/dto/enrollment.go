package dto

// ── enrollment ──

// CreateEnrollmentRequest the submitted enrollmentDate is required but the
// stored date is the server time of creation.
type CreateEnrollmentRequest struct {
	Code           string `json:"code"`
	StudentID      string `json:"studentId"`
	CourseName     string `json:"courseName"`
	CourseID       string `json:"courseId"`
	EnrollmentDate string `json:"enrollmentDate"`
}
