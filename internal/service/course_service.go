package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/internal/repository"
)

// ── course errors ──

var (
	ErrNoAvailableLecturer = errors.New("no available lecturer in department")
	ErrNoCourses           = errors.New("no courses found")
)

// CourseService 课程业务接口
type CourseService interface {
	List(ctx context.Context) ([]model.Course, error)
	// ListNonEmpty is List that reports ErrNoCourses for an empty catalogue.
	ListNonEmpty(ctx context.Context) ([]model.Course, error)
	Create(ctx context.Context, req *dto.CourseRequest) (*model.Course, error)
	Update(ctx context.Context, req *dto.CourseRequest) (*dto.UpdateResult, error)
	Delete(ctx context.Context, code string) (*dto.DeleteResult, error)
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *courseService) List(ctx context.Context) ([]model.Course, error) {
	courses, err := s.repo.Course.List(ctx)
	if err != nil {
		s.logger.Error("list courses failed", zap.Error(err))
		return nil, err
	}
	return courses, nil
}

func (s *courseService) ListNonEmpty(ctx context.Context) ([]model.Course, error) {
	courses, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, ErrNoCourses
	}
	return courses, nil
}

// ────────────────────── Create ──────────────────────

// Create inserts a course. Without an assigned lecturer it picks an Available
// lecturer of the same department and marks that lecturer Not Available once
// they reach the course limit. The steps are not transactional.
func (s *courseService) Create(ctx context.Context, req *dto.CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Code:             req.Code,
		Name:             req.Name,
		CreditHours:      req.CreditHours,
		Department:       req.Department,
		AssignedLecturer: req.AssignedLecturer,
	}

	if course.AssignedLecturer == "" {
		if err := s.assignLecturer(ctx, course); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Course.Create(ctx, course); err != nil {
		s.logger.Error("create course failed", zap.String("code", course.Code), zap.Error(err))
		return nil, err
	}

	return course, nil
}

func (s *courseService) assignLecturer(ctx context.Context, course *model.Course) error {
	lecturer, err := s.repo.Lecturer.FindAvailableInDepartment(ctx, course.Department)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNoAvailableLecturer
		}
		s.logger.Error("find available lecturer failed", zap.String("department", course.Department), zap.Error(err))
		return err
	}

	course.AssignedLecturer = lecturer.Name

	assigned, err := s.repo.Course.CountByLecturer(ctx, lecturer.Name)
	if err != nil {
		return fmt.Errorf("count courses of %s: %w", lecturer.Name, err)
	}
	if assigned+1 >= model.MaxCoursesPerLecturer {
		if err := s.repo.Lecturer.SetAvailability(ctx, lecturer.ObjectID, model.LecturerNotAvailable); err != nil {
			s.logger.Error("mark lecturer unavailable failed", zap.String("lecturer", lecturer.ID), zap.Error(err))
			return err
		}
	}
	return nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, req *dto.CourseRequest) (*dto.UpdateResult, error) {
	matched, modified, err := s.repo.Course.UpdateByCode(ctx, req.Code, &model.Course{
		Code:             req.Code,
		Name:             req.Name,
		CreditHours:      req.CreditHours,
		Department:       req.Department,
		AssignedLecturer: req.AssignedLecturer,
	})
	if err != nil {
		s.logger.Error("update course failed", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}
	return &dto.UpdateResult{MatchedCount: matched, ModifiedCount: modified}, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, code string) (*dto.DeleteResult, error) {
	n, err := s.repo.Course.DeleteByCode(ctx, code)
	if err != nil {
		s.logger.Error("delete course failed", zap.String("code", code), zap.Error(err))
		return nil, err
	}
	return &dto.DeleteResult{DeletedCount: n}, nil
}
