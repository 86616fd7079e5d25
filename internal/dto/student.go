package dto

import "time"

// ── student ──

// RegisterStudentRequest presence of every field is checked by the service so
// the caller gets one message for any missing field.
type RegisterStudentRequest struct {
	Name     string `json:"name"     binding:"omitempty,max=50"`
	Email    string `json:"email"    binding:"omitempty,email"`
	Phone    string `json:"phone"    binding:"omitempty,phone10"`
	Address  string `json:"address"`
	Username string `json:"username" binding:"omitempty,max=12"`
	Password string `json:"password"`
}

// UpdateStudentRequest partial update. The password is changed through its
// own endpoint only.
type UpdateStudentRequest struct {
	Name     *string `json:"name"     binding:"omitempty,max=50"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Phone    *string `json:"phone"    binding:"omitempty,phone10"`
	Address  *string `json:"address"`
	Username *string `json:"username" binding:"omitempty,max=12"`
}

// ChangePasswordRequest new password for a student.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// StudentLoginRequest student credentials.
type StudentLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// StudentResponse student without credentials.
type StudentResponse struct {
	ID           string    `json:"_id"`
	StudentID    string    `json:"studentId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Username     string    `json:"username"`
	RegisterDate time.Time `json:"registerDate"`
}

// StudentLoginResponse token plus a summary of the student.
type StudentLoginResponse struct {
	Token   string         `json:"token"`
	Student StudentSummary `json:"student"`
}

// StudentSummary identity fields returned at login.
type StudentSummary struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}
