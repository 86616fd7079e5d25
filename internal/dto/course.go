package dto

// ── course ──

// CourseRequest create and update body. On create an empty assignedlecturer
// triggers auto-assignment; on update code selects the course.
type CourseRequest struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	CreditHours      string `json:"credithours"`
	Department       string `json:"department"`
	AssignedLecturer string `json:"assignedlecturer"`
}

// CourseCodeRequest identifies a course by code in the body.
type CourseCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
