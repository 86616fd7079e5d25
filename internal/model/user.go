package model

import "time"

// User roles.
const (
	RoleAdmin    = "admin"
	RoleLecturer = "lecturer"
	RoleUser     = "user"
)

// User table "users" in PostgreSQL.
type User struct {
	UserID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string    `gorm:"type:varchar(50);not null;uniqueIndex"          json:"username"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'user'"       json:"role"`
	Name         string    `gorm:"type:varchar(100);not null;default:''"          json:"name"`
	Email        string    `gorm:"type:varchar(255);not null;default:''"          json:"email"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName maps User to the users table.
func (User) TableName() string { return "users" }
