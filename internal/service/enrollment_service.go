package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/internal/repository"
	"github.com/RashmiFernando/study-sphere/pkg/seqid"
)

// ── enrollment errors ──

var (
	ErrEnrollmentFieldsMissing = errors.New("enrollment fields missing")
	ErrNoEnrollments           = errors.New("no enrollments found for student")
)

// EnrollmentService 选课业务接口
type EnrollmentService interface {
	Create(ctx context.Context, req *dto.CreateEnrollmentRequest) (*model.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error)
	CountByCode(ctx context.Context, code string) (int64, error)
}

type enrollmentService struct {
	repo   *repository.Repository
	ids    seqid.Generator
	logger *zap.Logger
}

// NewEnrollmentService 创建 EnrollmentService 实例
func NewEnrollmentService(repo *repository.Repository, ids seqid.Generator, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, ids: ids, logger: logger}
}

// Create records an enrollment dated now. The submitted enrollmentDate only
// has to be present.
func (s *enrollmentService) Create(ctx context.Context, req *dto.CreateEnrollmentRequest) (*model.Enrollment, error) {
	if req.Code == "" || req.StudentID == "" || req.CourseName == "" || req.EnrollmentDate == "" {
		return nil, ErrEnrollmentFieldsMissing
	}

	enrollmentID, err := s.ids.Next(ctx, seqid.KindEnrollment)
	if err != nil {
		s.logger.Error("generate enrollment id failed", zap.Error(err))
		return nil, err
	}

	e := &model.Enrollment{
		EnrollmentID:   enrollmentID,
		Code:           req.Code,
		StudentID:      req.StudentID,
		CourseName:     req.CourseName,
		EnrollmentDate: time.Now(),
		Status:         model.EnrollmentActive,
	}
	if oid, err := primitive.ObjectIDFromHex(req.CourseID); err == nil {
		e.CourseID = &oid
	}

	if err := s.repo.Enrollment.Create(ctx, e); err != nil {
		s.logger.Error("create enrollment failed",
			zap.String("enrollment_id", enrollmentID),
			zap.String("student_id", req.StudentID),
			zap.Error(err),
		)
		return nil, err
	}
	return e, nil
}

func (s *enrollmentService) ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error) {
	enrollments, err := s.repo.Enrollment.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list enrollments failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if len(enrollments) == 0 {
		return nil, ErrNoEnrollments
	}
	return enrollments, nil
}

func (s *enrollmentService) CountByCode(ctx context.Context, code string) (int64, error) {
	n, err := s.repo.Enrollment.CountByCode(ctx, code)
	if err != nil {
		s.logger.Error("count enrollments failed", zap.String("code", code), zap.Error(err))
		return 0, err
	}
	return n, nil
}
