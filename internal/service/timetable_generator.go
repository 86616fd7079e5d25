package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/internal/repository"
)

// ── generator errors ──

var (
	ErrGeneratorInputMissing = errors.New("lecturer or room data missing")
	ErrNoLecturerAccount     = errors.New("no user with role lecturer")
	ErrNoLectureRoom         = errors.New("no lecture room")
)

// Slots and weekdays cycled by the auto generator.
var (
	autoTimeSlots = []string{"09:00", "11:00", "13:00", "15:00"}
	autoWeekdays  = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
)

// Fixed placement used by the naive generator.
const (
	naiveDate     = "Monday"
	naiveTimeSlot = "9:00AM - 10:00AM"
)

// GenerationResult holds what one generator run produced.
type GenerationResult struct {
	Created []model.Timetable
	Skipped int
}

// TimetableGenerator builds timetable entries from the enrollments on file.
type TimetableGenerator interface {
	Name() string
	Generate(ctx context.Context) (*GenerationResult, error)
}

// ────────────────────── cycling, conflict aware ──────────────────────

// CyclingConflictAwareGenerator walks enrollments and assigns lecturer, room,
// weekday and slot round robin. The cursor only advances when an entry is
// written, and an entry whose room/weekday/slot is already taken is skipped.
// Entries are written one at a time; a failed write stops the run and keeps
// what was already written.
type CyclingConflictAwareGenerator struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCyclingConflictAwareGenerator 创建自动排课生成器
func NewCyclingConflictAwareGenerator(repo *repository.Repository, logger *zap.Logger) *CyclingConflictAwareGenerator {
	return &CyclingConflictAwareGenerator{repo: repo, logger: logger, now: time.Now}
}

// Name implements TimetableGenerator.
func (g *CyclingConflictAwareGenerator) Name() string { return "cycling-conflict-aware" }

// Generate implements TimetableGenerator.
func (g *CyclingConflictAwareGenerator) Generate(ctx context.Context) (*GenerationResult, error) {
	enrollments, err := g.repo.Enrollment.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	lecturers, err := g.repo.User.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lecturers: %w", err)
	}
	rooms, err := g.repo.LectureRoom.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	g.logger.Info("auto timetable inputs",
		zap.Int("enrollments", len(enrollments)),
		zap.Int("lecturers", len(lecturers)),
		zap.Int("rooms", len(rooms)),
	)

	if len(lecturers) == 0 || len(rooms) == 0 {
		return nil, ErrGeneratorInputMissing
	}

	result := &GenerationResult{Created: make([]model.Timetable, 0, len(enrollments))}
	i := 0
	for _, enr := range enrollments {
		courseName := strings.TrimSpace(enr.CourseName)
		if courseName == "" {
			result.Skipped++
			continue
		}

		lecturer := lecturers[i%len(lecturers)]
		room := rooms[i%len(rooms)]
		day := autoWeekdays[i%len(autoWeekdays)]
		slot := autoTimeSlots[i%len(autoTimeSlots)]

		taken, err := g.repo.Timetable.SlotTaken(ctx, room.RoomName, day, slot)
		if err != nil {
			return result, fmt.Errorf("check slot %s %s %s: %w", room.RoomName, day, slot, err)
		}
		if taken {
			g.logger.Debug("slot conflict, enrollment skipped",
				zap.String("course", courseName),
				zap.String("room", room.RoomName),
				zap.String("day", day),
				zap.String("slot", slot),
			)
			result.Skipped++
			continue
		}

		email := lecturer.Email
		if email == "" {
			email = "noreply@system.com"
		}

		entry := model.Timetable{
			RoomName:      room.RoomName,
			EventType:     model.EventTypeLecture,
			EventName:     strings.ToLower(courseName),
			Code:          enr.Code,
			Faculty:       "Auto-Generated",
			Department:    "Default",
			Date:          g.now().Format(time.RFC3339),
			StartTime:     slot,
			Duration:      2,
			PriorityLevel: "Normal",
			CreatedBy:     "System",
			Email:         email,
		}
		if err := g.repo.Timetable.Create(ctx, &entry); err != nil {
			return result, fmt.Errorf("save timetable entry for %s: %w", courseName, err)
		}
		result.Created = append(result.Created, entry)
		i++
	}

	return result, nil
}

// ────────────────────── naive, first match ──────────────────────

// NaiveFirstMatchGenerator places every enrollment with the first lecturer
// account and the first room on Monday 9:00AM. It does no conflict checks and
// writes all entries in one batch.
type NaiveFirstMatchGenerator struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNaiveFirstMatchGenerator 创建手动排课生成器
func NewNaiveFirstMatchGenerator(repo *repository.Repository, logger *zap.Logger) *NaiveFirstMatchGenerator {
	return &NaiveFirstMatchGenerator{repo: repo, logger: logger}
}

// Name implements TimetableGenerator.
func (g *NaiveFirstMatchGenerator) Name() string { return "naive-first-match" }

// Generate implements TimetableGenerator.
func (g *NaiveFirstMatchGenerator) Generate(ctx context.Context) (*GenerationResult, error) {
	enrollments, err := g.repo.Enrollment.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}

	result := &GenerationResult{Created: make([]model.Timetable, 0, len(enrollments))}
	if len(enrollments) == 0 {
		return result, nil
	}

	lecturer, err := g.repo.User.FirstByRole(ctx, model.RoleLecturer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoLecturerAccount
		}
		return nil, fmt.Errorf("find lecturer: %w", err)
	}
	rooms, err := g.repo.LectureRoom.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil, ErrNoLectureRoom
	}
	roomID := rooms[0].ID

	for _, enr := range enrollments {
		result.Created = append(result.Created, model.Timetable{
			StudentID:  enr.StudentID,
			CourseID:   enr.CourseID,
			LecturerID: lecturer.UserID,
			RoomID:     &roomID,
			Date:       naiveDate,
			TimeSlot:   naiveTimeSlot,
		})
	}

	if err := g.repo.Timetable.InsertMany(ctx, result.Created); err != nil {
		return nil, fmt.Errorf("insert timetable entries: %w", err)
	}
	return result, nil
}
