package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/RashmiFernando/study-sphere/config"
)

const issuer = "study-sphere"

// Token kinds carried in the token_type claim.
const (
	TokenTypeUser    = "user"
	TokenTypeStudent = "student"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims covers both staff accounts and students. Staff tokens fill UserID and
// Role, student tokens fill StudentID, Username and Name.
type Claims struct {
	UserID    string `json:"user_id,omitempty"`
	Role      string `json:"role,omitempty"`
	StudentID string `json:"studentId,omitempty"`
	Username  string `json:"username,omitempty"`
	Name      string `json:"name,omitempty"`
	TokenType string `json:"token_type"`
	jwtv5.RegisteredClaims
}

// Manager signs and verifies HS256 tokens.
type Manager struct {
	secret          []byte
	userTokenTTL    time.Duration
	studentTokenTTL time.Duration
}

// NewManager creates a Manager from the auth config.
func NewManager(cfg *config.AuthConfig) *Manager {
	return &Manager{
		secret:          []byte(cfg.JWTSecret),
		userTokenTTL:    cfg.AccessTokenTTL,
		studentTokenTTL: cfg.StudentTokenTTL,
	}
}

// GenerateUserToken issues a token for a staff account.
func (m *Manager) GenerateUserToken(userID, role string) (string, error) {
	return m.sign(Claims{
		UserID:    userID,
		Role:      role,
		TokenType: TokenTypeUser,
	}, m.userTokenTTL)
}

// GenerateStudentToken issues a token for a student login.
func (m *Manager) GenerateStudentToken(studentID, username, name string) (string, error) {
	return m.sign(Claims{
		StudentID: studentID,
		Username:  username,
		Name:      name,
		TokenType: TokenTypeStudent,
	}, m.studentTokenTTL)
}

func (m *Manager) sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwtv5.RegisteredClaims{
		ID:        uuid.New().String(),
		IssuedAt:  jwtv5.NewNumericDate(now),
		ExpiresAt: jwtv5.NewNumericDate(now.Add(ttl)),
		Issuer:    issuer,
	}

	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken verifies the signature and expiry and returns the claims.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
