package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/pkg/database"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// List returns every account in creation order.
	List(ctx context.Context) ([]model.User, error)
	// FirstByRole returns gorm.ErrRecordNotFound when no account has the role.
	FirstByRole(ctx context.Context, role string) (*model.User, error)
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return database.WrapError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) FirstByRole(ctx context.Context, role string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at ASC").
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
