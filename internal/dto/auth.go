package dto

// ── staff accounts ──

// RegisterRequest staff account registration.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"     binding:"omitempty,oneof=admin lecturer user"`
	Email    string `json:"email"    binding:"omitempty,email"`
	Name     string `json:"name"     binding:"omitempty,max=100"`
}

// LoginRequest staff credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse signed token and role.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// UserResponse staff account without credentials.
type UserResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}
