package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/internal/repository"
)

// ── timetable errors ──

var (
	ErrTimetableNotFound = errors.New("timetable not found")
)

// TimetableService 课表业务接口
type TimetableService interface {
	List(ctx context.Context) ([]model.Timetable, error)
	Get(ctx context.Context, id string) (*model.Timetable, error)
	Create(ctx context.Context, req *dto.TimetableRequest) (*model.Timetable, error)
	Update(ctx context.Context, id string, req *dto.TimetableRequest) (*model.Timetable, error)
	Delete(ctx context.Context, id string) error
	GenerateAuto(ctx context.Context) (*GenerationResult, error)
	GenerateManual(ctx context.Context) (*GenerationResult, error)
}

type timetableService struct {
	repo   *repository.Repository
	auto   TimetableGenerator
	manual TimetableGenerator
	logger *zap.Logger
	now    func() time.Time
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, auto, manual TimetableGenerator, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, auto: auto, manual: manual, logger: logger, now: time.Now}
}

// ────────────────────── Read ──────────────────────

func (s *timetableService) List(ctx context.Context) ([]model.Timetable, error) {
	entries, err := s.repo.Timetable.List(ctx)
	if err != nil {
		s.logger.Error("list timetables failed", zap.Error(err))
		return nil, err
	}
	return entries, nil
}

func (s *timetableService) Get(ctx context.Context, id string) (*model.Timetable, error) {
	t, err := s.repo.Timetable.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err, id)
	}
	return t, nil
}

// ────────────────────── Write ──────────────────────

func (s *timetableService) Create(ctx context.Context, req *dto.TimetableRequest) (*model.Timetable, error) {
	t, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Timetable.Create(ctx, t); err != nil {
		s.logger.Error("create timetable failed", zap.String("room_name", t.RoomName), zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (s *timetableService) Update(ctx context.Context, id string, req *dto.TimetableRequest) (*model.Timetable, error) {
	t, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	updated, err := s.repo.Timetable.Update(ctx, id, t)
	if err != nil {
		return nil, s.notFound(err, id)
	}
	return updated, nil
}

func (s *timetableService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Timetable.Delete(ctx, id); err != nil {
		return s.notFound(err, id)
	}
	return nil
}

// ────────────────────── Generate ──────────────────────

func (s *timetableService) GenerateAuto(ctx context.Context) (*GenerationResult, error) {
	return s.run(ctx, s.auto)
}

func (s *timetableService) GenerateManual(ctx context.Context) (*GenerationResult, error) {
	return s.run(ctx, s.manual)
}

func (s *timetableService) run(ctx context.Context, g TimetableGenerator) (*GenerationResult, error) {
	res, err := g.Generate(ctx)
	if err != nil {
		if !errors.Is(err, ErrGeneratorInputMissing) {
			s.logger.Error("timetable generation failed", zap.String("generator", g.Name()), zap.Error(err))
		}
		return nil, err
	}
	s.logger.Info("timetable generated",
		zap.String("generator", g.Name()),
		zap.Int("created", len(res.Created)),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

// ── helpers ──

func (s *timetableService) prepare(ctx context.Context, req *dto.TimetableRequest) (*model.Timetable, error) {
	exists, err := s.repo.LectureRoom.ExistsByRoomName(ctx, req.RoomName)
	if err != nil {
		s.logger.Error("find room failed", zap.String("room_name", req.RoomName), zap.Error(err))
		return nil, err
	}
	if !exists {
		return nil, &RoomMissingError{RoomName: req.RoomName}
	}

	date, err := parseBookingDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := checkNotPast(date, s.now()); err != nil {
		return nil, err
	}

	return &model.Timetable{
		RoomName:            req.RoomName,
		EventType:           req.EventType,
		CustomEventType:     req.CustomEventType,
		EventName:           req.EventName,
		Code:                req.Code,
		Faculty:             req.Faculty,
		Department:          req.Department,
		Date:                date.Format(time.RFC3339),
		StartTime:           req.StartTime,
		Duration:            req.Duration,
		Recurrence:          req.Recurrence,
		RecurrenceFrequency: req.RecurrenceFrequency,
		PriorityLevel:       req.PriorityLevel,
		CreatedBy:           req.CreatedBy,
		Email:               req.Email,
	}, nil
}

func (s *timetableService) notFound(err error, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrTimetableNotFound
	}
	s.logger.Error("timetable store failed", zap.String("id", id), zap.Error(err))
	return err
}
