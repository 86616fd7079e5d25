package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/internal/repository"
	"github.com/RashmiFernando/study-sphere/pkg/seqid"
)

// ── exam errors ──

var (
	ErrExamFieldsMissing = errors.New("exam fields missing")
	ErrNoExams           = errors.New("no exams available")
	ErrExamNotFound      = errors.New("exam not found")
	ErrNoStudentExams    = errors.New("no exams for enrolled courses")
)

// ExamService 考试业务接口
type ExamService interface {
	Create(ctx context.Context, req *dto.ExamRequest) (*model.Exam, error)
	List(ctx context.Context) ([]model.Exam, error)
	Get(ctx context.Context, id string) (*model.Exam, error)
	// ListForStudent returns exams of every course the student is enrolled in.
	ListForStudent(ctx context.Context, studentID string) ([]model.Exam, error)
	Reschedule(ctx context.Context, id string, req *dto.ExamRequest) (*model.Exam, error)
	Delete(ctx context.Context, id string) error
}

type examService struct {
	repo   *repository.Repository
	ids    seqid.Generator
	logger *zap.Logger
}

// NewExamService 创建 ExamService 实例
func NewExamService(repo *repository.Repository, ids seqid.Generator, logger *zap.Logger) ExamService {
	return &examService{repo: repo, ids: ids, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *examService) Create(ctx context.Context, req *dto.ExamRequest) (*model.Exam, error) {
	if req.Code == "" || req.ExamName == "" || req.ExamDate == nil || req.ExamDuration == 0 {
		return nil, ErrExamFieldsMissing
	}

	// snapshot; later enrollments do not change it
	count, err := s.repo.Enrollment.CountByCode(ctx, req.Code)
	if err != nil {
		s.logger.Error("count enrollments failed", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}

	examID, err := s.ids.Next(ctx, seqid.KindExam)
	if err != nil {
		s.logger.Error("generate exam id failed", zap.Error(err))
		return nil, err
	}

	exam := &model.Exam{
		ExamID:       examID,
		Code:         req.Code,
		ExamName:     req.ExamName,
		ExamDate:     *req.ExamDate,
		ExamDuration: req.ExamDuration,
		StudentCount: count,
	}
	if err := s.repo.Exam.Create(ctx, exam); err != nil {
		s.logger.Error("create exam failed", zap.String("exam_id", examID), zap.Error(err))
		return nil, err
	}
	return exam, nil
}

// ────────────────────── Read ──────────────────────

func (s *examService) List(ctx context.Context) ([]model.Exam, error) {
	exams, err := s.repo.Exam.List(ctx)
	if err != nil {
		s.logger.Error("list exams failed", zap.Error(err))
		return nil, err
	}
	if len(exams) == 0 {
		return nil, ErrNoExams
	}
	return exams, nil
}

func (s *examService) Get(ctx context.Context, id string) (*model.Exam, error) {
	exam, err := s.repo.Exam.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err, id)
	}
	return exam, nil
}

func (s *examService) ListForStudent(ctx context.Context, studentID string) ([]model.Exam, error) {
	enrollments, err := s.repo.Enrollment.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list enrollments failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}
	if len(enrollments) == 0 {
		return nil, ErrNoEnrollments
	}

	seen := make(map[string]struct{}, len(enrollments))
	codes := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		if _, ok := seen[e.Code]; ok {
			continue
		}
		seen[e.Code] = struct{}{}
		codes = append(codes, e.Code)
	}

	exams, err := s.repo.Exam.ListByCodes(ctx, codes)
	if err != nil {
		s.logger.Error("list exams by codes failed", zap.Strings("codes", codes), zap.Error(err))
		return nil, err
	}
	if len(exams) == 0 {
		return nil, ErrNoStudentExams
	}
	return exams, nil
}

// ────────────────────── Reschedule ──────────────────────

func (s *examService) Reschedule(ctx context.Context, id string, req *dto.ExamRequest) (*model.Exam, error) {
	fields := make(map[string]interface{})
	if req.Code != "" {
		fields["code"] = req.Code
	}
	if req.ExamName != "" {
		fields["examName"] = req.ExamName
	}
	if req.ExamDate != nil {
		fields["examDate"] = *req.ExamDate
	}
	if req.ExamDuration != 0 {
		fields["examDuration"] = req.ExamDuration
	}

	exam, err := s.repo.Exam.Reschedule(ctx, id, fields)
	if err != nil {
		return nil, s.notFound(err, id)
	}
	return exam, nil
}

// ────────────────────── Delete ──────────────────────

func (s *examService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Exam.Delete(ctx, id); err != nil {
		return s.notFound(err, id)
	}
	return nil
}

func (s *examService) notFound(err error, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrExamNotFound
	}
	s.logger.Error("exam store failed", zap.String("id", id), zap.Error(err))
	return err
}
