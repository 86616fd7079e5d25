package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/internal/repository"
)

// ── lecturer errors ──

var (
	ErrLecturerNotFound = errors.New("lecturer not found")
)

// LecturerService 讲师业务接口
type LecturerService interface {
	List(ctx context.Context) ([]model.Lecturer, error)
	Create(ctx context.Context, req *dto.LecturerRequest) (*model.Lecturer, error)
	Update(ctx context.Context, req *dto.LecturerRequest) (*dto.UpdateResult, error)
	// Delete removes the lecturer and marks their courses Lecturer Unavailable.
	Delete(ctx context.Context, id string) error
}

type lecturerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLecturerService 创建 LecturerService 实例
func NewLecturerService(repo *repository.Repository, logger *zap.Logger) LecturerService {
	return &lecturerService{repo: repo, logger: logger}
}

func (s *lecturerService) List(ctx context.Context) ([]model.Lecturer, error) {
	lecturers, err := s.repo.Lecturer.List(ctx)
	if err != nil {
		s.logger.Error("list lecturers failed", zap.Error(err))
		return nil, err
	}
	return lecturers, nil
}

func (s *lecturerService) Create(ctx context.Context, req *dto.LecturerRequest) (*model.Lecturer, error) {
	l := toLecturer(req)
	if err := s.repo.Lecturer.Create(ctx, l); err != nil {
		s.logger.Error("create lecturer failed", zap.String("id", req.ID), zap.Error(err))
		return nil, err
	}
	return l, nil
}

func (s *lecturerService) Update(ctx context.Context, req *dto.LecturerRequest) (*dto.UpdateResult, error) {
	matched, modified, err := s.repo.Lecturer.UpdateByID(ctx, req.ID, toLecturer(req))
	if err != nil {
		s.logger.Error("update lecturer failed", zap.String("id", req.ID), zap.Error(err))
		return nil, err
	}
	return &dto.UpdateResult{MatchedCount: matched, ModifiedCount: modified}, nil
}

// Delete is two independent writes: a failure on the course update leaves the
// lecturer already removed.
func (s *lecturerService) Delete(ctx context.Context, id string) error {
	lecturer, err := s.repo.Lecturer.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrLecturerNotFound
		}
		s.logger.Error("delete lecturer failed", zap.String("id", id), zap.Error(err))
		return err
	}

	n, err := s.repo.Course.ReassignLecturer(ctx, lecturer.Name, model.LecturerUnavailable)
	if err != nil {
		s.logger.Error("release lecturer courses failed", zap.String("lecturer", lecturer.Name), zap.Error(err))
		return err
	}

	s.logger.Info("lecturer deleted", zap.String("id", id), zap.Int64("courses_released", n))
	return nil
}

func toLecturer(req *dto.LecturerRequest) *model.Lecturer {
	return &model.Lecturer{
		ID:                 req.ID,
		Name:               req.Name,
		Department:         req.Department,
		AssignedCourses:    req.AssignedCourses,
		AvailabilityStatus: req.AvailabilityStatus,
		Email:              req.Email,
	}
}
