package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/internal/repository"
	"github.com/RashmiFernando/study-sphere/pkg/jwt"
)

// ── auth errors ──

var (
	ErrRegistrationFailed = errors.New("registration failed")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid password")
)

// TokenBlacklist revokes token ids until they expire.
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout revokes the presented token. Without a blacklist it is a no-op.
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService 创建 AuthService 实例。blacklist 可为 nil
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, ErrRegistrationFailed
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Name:         req.Name,
		Email:        req.Email,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Warn("register user failed", zap.String("username", req.Username), zap.Error(err))
		return nil, errors.Join(ErrRegistrationFailed, err)
	}
	return toUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	// 1. 查询用户
	user, err := s.repo.User.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("query user failed", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}

	// 3. 签发 Token
	token, err := s.jwtMgr.GenerateUserToken(user.UserID, user.Role)
	if err != nil {
		s.logger.Error("sign user token failed", zap.Error(err))
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Role: user.Role}, nil
}

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.blacklist == nil || claims == nil || claims.ID == "" {
		return nil
	}
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("blacklist token failed", zap.String("jti", claims.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("query user failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *model.User) *dto.UserResponse {
	return &dto.UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Role:     u.Role,
		Name:     u.Name,
		Email:    u.Email,
	}
}
