package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/internal/repository"
)

// ── schedule errors ──

var (
	ErrScheduleNotFound = errors.New("schedule not found")
)

// ScheduleService 排课业务接口
type ScheduleService interface {
	List(ctx context.Context) ([]model.Schedule, error)
	Get(ctx context.Context, id string) (*model.Schedule, error)
	Create(ctx context.Context, req *dto.ScheduleRequest) (*model.Schedule, error)
	Update(ctx context.Context, id string, req *dto.ScheduleRequest) (*model.Schedule, error)
	Delete(ctx context.Context, id string) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Read ──────────────────────

func (s *scheduleService) List(ctx context.Context) ([]model.Schedule, error) {
	schedules, err := s.repo.Schedule.List(ctx)
	if err != nil {
		s.logger.Error("list schedules failed", zap.Error(err))
		return nil, err
	}
	return schedules, nil
}

func (s *scheduleService) Get(ctx context.Context, id string) (*model.Schedule, error) {
	sc, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err, id)
	}
	return sc, nil
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context, req *dto.ScheduleRequest) (*model.Schedule, error) {
	sc, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	sc.ScheduleID = uuid.NewString()
	sc.CreatedAt = s.now()

	if err := s.repo.Schedule.Create(ctx, sc); err != nil {
		s.logger.Error("create schedule failed", zap.String("room_name", sc.RoomName), zap.Error(err))
		return nil, err
	}
	return sc, nil
}

// ────────────────────── Update ──────────────────────

func (s *scheduleService) Update(ctx context.Context, id string, req *dto.ScheduleRequest) (*model.Schedule, error) {
	sc, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Schedule.Update(ctx, id, sc)
	if err != nil {
		return nil, s.notFound(err, id)
	}
	return updated, nil
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		return s.notFound(err, id)
	}
	return nil
}

// prepare checks the room and date, then builds the document with its
// derived end time and status.
func (s *scheduleService) prepare(ctx context.Context, req *dto.ScheduleRequest) (*model.Schedule, error) {
	room, err := s.repo.LectureRoom.GetByRoomName(ctx, req.RoomName)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &RoomMissingError{RoomName: req.RoomName}
		}
		s.logger.Error("find room failed", zap.String("room_name", req.RoomName), zap.Error(err))
		return nil, err
	}

	date, err := parseBookingDate(req.Date)
	if err != nil {
		return nil, err
	}
	if err := checkNotPast(date, s.now()); err != nil {
		return nil, err
	}

	end, err := endTime(req.StartTime, req.Duration)
	if err != nil {
		return nil, err
	}

	sc := &model.Schedule{
		RoomName:      req.RoomName,
		EventType:     req.EventType,
		EventName:     strings.TrimSpace(req.EventName),
		Faculty:       req.Faculty,
		Department:    strings.TrimSpace(req.Department),
		Date:          date,
		StartTime:     req.StartTime,
		Duration:      req.Duration,
		EndTime:       end,
		Recurrence:    req.Recurrence,
		PriorityLevel: req.PriorityLevel,
		Status:        roomStatus(room),
		CreatedBy:     strings.TrimSpace(req.CreatedBy),
		Email:         strings.TrimSpace(req.Email),
	}
	if sc.Recurrence == "" {
		sc.Recurrence = model.RecurrenceNo
	}
	if sc.EventType == model.EventTypeOther {
		sc.CustomEventType = req.CustomEventType
	}
	if sc.Recurrence == model.RecurrenceYes {
		sc.RecurrenceFrequency = req.RecurrenceFrequency
	}
	return sc, nil
}

func (s *scheduleService) notFound(err error, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrScheduleNotFound
	}
	s.logger.Error("schedule store failed", zap.String("id", id), zap.Error(err))
	return err
}
