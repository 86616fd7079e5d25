package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/model"
)

var testToday = time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)

func setupTestScheduleService() (*scheduleService, *mockRepos) {
	repo, mocks := newMockRepos()
	svc := NewScheduleService(repo, testLogger).(*scheduleService)
	svc.now = fixedClock(testToday)
	return svc, mocks
}

func scheduleReq(room, date, start string, duration int) *dto.ScheduleRequest {
	return &dto.ScheduleRequest{
		RoomName:      room,
		EventType:     model.EventTypeLecture,
		EventName:     " Intro Lecture ",
		Faculty:       "Computing",
		Department:    "Software",
		Date:          date,
		StartTime:     start,
		Duration:      duration,
		PriorityLevel: "High",
		CreatedBy:     "maya",
		Email:         "maya@campus.test",
	}
}

func TestEndTime(t *testing.T) {
	tests := []struct {
		start    string
		duration int
		want     string
	}{
		{"09:00", 90, "10:30"},
		{"23:30", 60, "00:30"},
		{"8:05", 10, "08:15"},
		{"00:00", 24 * 60, "00:00"},
		{"13:45", 0, "13:45"},
	}
	for _, tt := range tests {
		got, err := endTime(tt.start, tt.duration)
		if err != nil {
			t.Fatalf("%s+%d: %v", tt.start, tt.duration, err)
		}
		if got != tt.want {
			t.Errorf("%s+%d: 期望 %s，实际 %s", tt.start, tt.duration, tt.want, got)
		}
	}

	if _, err := endTime("25:00", 10); !errors.Is(err, ErrInvalidTime) {
		t.Errorf("期望 ErrInvalidTime，实际 %v", err)
	}
}

func TestRoomStatus(t *testing.T) {
	broken := roomFixture("A101")
	broken.Condition = model.ConditionNeedsToRepair

	tests := []struct {
		name string
		room *model.LectureRoom
		want string
	}{
		{"needs repair", broken, model.StatusUnderMaintenance},
		{"good", roomFixture("B202"), model.StatusOccupied},
		{"missing room", nil, model.StatusOccupied},
	}
	for _, tt := range tests {
		if got := roomStatus(tt.room); got != tt.want {
			t.Errorf("%s: 期望 %s，实际 %s", tt.name, tt.want, got)
		}
	}
}

func TestCheckNotPast(t *testing.T) {
	startOfToday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	if err := checkNotPast(startOfToday, testToday); err != nil {
		t.Errorf("today must be accepted, got %v", err)
	}
	if err := checkNotPast(startOfToday.Add(-time.Nanosecond), testToday); !errors.Is(err, ErrDateInPast) {
		t.Errorf("期望 ErrDateInPast，实际 %v", err)
	}
}

func TestScheduleCreate_Derivations(t *testing.T) {
	svc, mocks := setupTestScheduleService()
	broken := roomFixture("A101")
	broken.Condition = model.ConditionNeedsToRepair
	mocks.lectureRoom.add(broken)
	mocks.lectureRoom.add(roomFixture("B202"))
	ctx := context.Background()

	sc, err := svc.Create(ctx, scheduleReq("A101", "2026-03-02", "09:00", 90))
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if sc.EndTime != "10:30" {
		t.Errorf("期望 endTime=10:30，实际 %s", sc.EndTime)
	}
	if sc.Status != model.StatusUnderMaintenance {
		t.Errorf("期望 %s，实际 %s", model.StatusUnderMaintenance, sc.Status)
	}
	if sc.ScheduleID == "" || sc.CreatedAt.IsZero() {
		t.Error("scheduleId and createdAt should be assigned")
	}
	if sc.EventName != "Intro Lecture" {
		t.Errorf("eventName should be trimmed, got %q", sc.EventName)
	}
	if sc.Recurrence != model.RecurrenceNo {
		t.Errorf("期望 recurrence=No，实际 %q", sc.Recurrence)
	}

	late, err := svc.Create(ctx, scheduleReq("B202", "2026-03-05", "23:30", 60))
	if err != nil {
		t.Fatal(err)
	}
	if late.EndTime != "00:30" || late.Status != model.StatusOccupied {
		t.Errorf("unexpected derived fields %s/%s", late.EndTime, late.Status)
	}
}

func TestScheduleCreate_DropsIrrelevantFields(t *testing.T) {
	svc, mocks := setupTestScheduleService()
	mocks.lectureRoom.add(roomFixture("A101"))

	req := scheduleReq("A101", "2026-04-01", "10:00", 60)
	req.CustomEventType = "Hackathon"
	req.RecurrenceFrequency = "Weekly"
	sc, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if sc.CustomEventType != "" || sc.RecurrenceFrequency != "" {
		t.Errorf("custom type and frequency should be dropped: %+v", sc)
	}

	req.EventType = model.EventTypeOther
	req.Recurrence = model.RecurrenceYes
	sc, err = svc.Create(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if sc.CustomEventType != "Hackathon" || sc.RecurrenceFrequency != "Weekly" {
		t.Errorf("custom type and frequency should be kept: %+v", sc)
	}
}

func TestScheduleCreate_Rejections(t *testing.T) {
	svc, mocks := setupTestScheduleService()
	mocks.lectureRoom.add(roomFixture("A101"))
	ctx := context.Background()

	_, err := svc.Create(ctx, scheduleReq("Z999", "2026-04-01", "10:00", 60))
	var missing *RoomMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("期望 RoomMissingError，实际 %v", err)
	}
	if missing.Error() != "Room Z999 does not exist" {
		t.Errorf("unexpected message %q", missing.Error())
	}

	if _, err := svc.Create(ctx, scheduleReq("A101", "2026-03-01", "10:00", 60)); !errors.Is(err, ErrDateInPast) {
		t.Errorf("期望 ErrDateInPast，实际 %v", err)
	}
	if _, err := svc.Create(ctx, scheduleReq("A101", "next week", "10:00", 60)); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("期望 ErrInvalidDate，实际 %v", err)
	}
	if len(mocks.schedule.schedules) != 0 {
		t.Error("rejected schedules must not be stored")
	}
}

func TestScheduleUpdateAndDelete(t *testing.T) {
	svc, mocks := setupTestScheduleService()
	room := mocks.lectureRoom.add(roomFixture("A101"))
	ctx := context.Background()

	sc, err := svc.Create(ctx, scheduleReq("A101", "2026-04-01", "10:00", 60))
	if err != nil {
		t.Fatal(err)
	}

	// status follows the room condition at save time
	room.Condition = model.ConditionNeedsToRepair
	updated, err := svc.Update(ctx, sc.ID.Hex(), scheduleReq("A101", "2026-04-01", "11:15", 30))
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.EndTime != "11:45" || updated.Status != model.StatusUnderMaintenance {
		t.Errorf("unexpected derived fields %s/%s", updated.EndTime, updated.Status)
	}
	if updated.ScheduleID != sc.ScheduleID {
		t.Error("scheduleId must survive an update")
	}

	if _, err := svc.Update(ctx, "ffffffffffffffffffffffff", scheduleReq("A101", "2026-04-01", "10:00", 60)); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("期望 ErrScheduleNotFound，实际 %v", err)
	}
	if err := svc.Delete(ctx, sc.ID.Hex()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, sc.ID.Hex()); !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("期望 ErrScheduleNotFound，实际 %v", err)
	}
}
