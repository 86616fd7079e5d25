package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/model"
)

func setupTestGenerators() (*CyclingConflictAwareGenerator, *NaiveFirstMatchGenerator, *mockRepos) {
	repo, mocks := newMockRepos()
	auto := NewCyclingConflictAwareGenerator(repo, testLogger)
	auto.now = fixedClock(testToday)
	return auto, NewNaiveFirstMatchGenerator(repo, testLogger), mocks
}

func addEnrollments(m *mockRepos, courseNames ...string) {
	for i, name := range courseNames {
		oid := primitive.NewObjectID()
		m.enrollment.enrollments = append(m.enrollment.enrollments, model.Enrollment{
			ID:         primitive.NewObjectID(),
			Code:       "C" + string(rune('A'+i)),
			StudentID:  "ST-0001",
			CourseName: name,
			CourseID:   &oid,
		})
	}
}

// ── cycling, conflict aware ──

func TestCyclingGenerator_MissingInputs(t *testing.T) {
	auto, _, mocks := setupTestGenerators()
	addEnrollments(mocks, "Programming")

	if _, err := auto.Generate(context.Background()); !errors.Is(err, ErrGeneratorInputMissing) {
		t.Errorf("no lecturers: 期望 ErrGeneratorInputMissing，实际 %v", err)
	}

	_ = mocks.user.Create(context.Background(), &model.User{Username: "lec", Role: model.RoleLecturer})
	if _, err := auto.Generate(context.Background()); !errors.Is(err, ErrGeneratorInputMissing) {
		t.Errorf("no rooms: 期望 ErrGeneratorInputMissing，实际 %v", err)
	}
}

func TestCyclingGenerator_CyclesAndSkipsBlankNames(t *testing.T) {
	auto, _, mocks := setupTestGenerators()
	ctx := context.Background()

	_ = mocks.user.Create(ctx, &model.User{Username: "a", Role: model.RoleLecturer, Email: "a@campus.test"})
	_ = mocks.user.Create(ctx, &model.User{Username: "b", Role: model.RoleAdmin})
	mocks.lectureRoom.add(roomFixture("A101"))
	mocks.lectureRoom.add(roomFixture("B202"))
	mocks.lectureRoom.add(roomFixture("C303"))
	addEnrollments(mocks, "Programming", "   ", "Databases", "Networks", "Security", "AI", "Maths")

	res, err := auto.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}
	if len(res.Created) != 6 || res.Skipped != 1 {
		t.Fatalf("期望 6 created / 1 skipped，实际 %d / %d", len(res.Created), res.Skipped)
	}

	// the blank enrollment does not advance the cursor
	wantRooms := []string{"A101", "B202", "C303", "A101", "B202", "C303"}
	wantSlots := []string{"09:00", "11:00", "13:00", "15:00", "09:00", "11:00"}
	wantEmails := []string{"a@campus.test", "noreply@system.com", "a@campus.test", "noreply@system.com", "a@campus.test", "noreply@system.com"}
	for i, e := range res.Created {
		if e.RoomName != wantRooms[i] || e.StartTime != wantSlots[i] || e.Email != wantEmails[i] {
			t.Errorf("entry %d: 期望 %s %s %s，实际 %s %s %s",
				i, wantRooms[i], wantSlots[i], wantEmails[i], e.RoomName, e.StartTime, e.Email)
		}
	}

	first := res.Created[0]
	if first.EventName != "programming" || first.EventType != model.EventTypeLecture {
		t.Errorf("unexpected event fields %q/%q", first.EventName, first.EventType)
	}
	if first.Faculty != "Auto-Generated" || first.Department != "Default" || first.PriorityLevel != "Normal" ||
		first.CreatedBy != "System" || first.Duration != 2 || first.Code != "CA" {
		t.Errorf("unexpected fixed fields %+v", first)
	}
	if first.Date != testToday.Format(time.RFC3339) {
		t.Errorf("date should be the run date, got %q", first.Date)
	}
	if len(mocks.timetable.entries) != 6 {
		t.Errorf("期望保存 6 条，实际 %d", len(mocks.timetable.entries))
	}
}

func TestCyclingGenerator_SkipsTakenSlot(t *testing.T) {
	auto, _, mocks := setupTestGenerators()
	ctx := context.Background()

	_ = mocks.user.Create(ctx, &model.User{Username: "a", Role: model.RoleLecturer})
	mocks.lectureRoom.add(roomFixture("A101"))
	// A101 on Monday 09:00 is already booked by a weekday labelled entry
	mocks.timetable.entries = append(mocks.timetable.entries, &model.Timetable{
		ID: primitive.NewObjectID(), RoomName: "A101", Date: "Monday", StartTime: "09:00",
	})
	addEnrollments(mocks, "Programming", "Databases")

	res, err := auto.Generate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// i stays at 0, so both enrollments land on the taken slot
	if len(res.Created) != 0 || res.Skipped != 2 {
		t.Errorf("期望 0 created / 2 skipped，实际 %d / %d", len(res.Created), res.Skipped)
	}
}

func TestCyclingGenerator_AbortKeepsWrittenEntries(t *testing.T) {
	auto, _, mocks := setupTestGenerators()
	ctx := context.Background()

	_ = mocks.user.Create(ctx, &model.User{Username: "a", Role: model.RoleLecturer})
	mocks.lectureRoom.add(roomFixture("A101"))
	addEnrollments(mocks, "Programming", "Databases", "Networks")
	mocks.timetable.createErrAt = 2

	res, err := auto.Generate(ctx)
	if err == nil {
		t.Fatal("a failed save should abort the run")
	}
	if res == nil || len(res.Created) != 1 {
		t.Fatalf("partial result should hold the first entry: %+v", res)
	}
	if len(mocks.timetable.entries) != 1 {
		t.Errorf("already written entries stay, have %d", len(mocks.timetable.entries))
	}
}

// ── naive, first match ──

func TestNaiveGenerator(t *testing.T) {
	_, naive, mocks := setupTestGenerators()
	ctx := context.Background()

	_ = mocks.user.Create(ctx, &model.User{Username: "admin", Role: model.RoleAdmin})
	_ = mocks.user.Create(ctx, &model.User{Username: "lec1", Role: model.RoleLecturer})
	_ = mocks.user.Create(ctx, &model.User{Username: "lec2", Role: model.RoleLecturer})
	first := mocks.lectureRoom.add(roomFixture("A101"))
	mocks.lectureRoom.add(roomFixture("B202"))
	addEnrollments(mocks, "Programming", "", "Databases")

	res, err := naive.Generate(ctx)
	if err != nil {
		t.Fatalf("Generate 应成功: %v", err)
	}
	if len(res.Created) != 3 {
		t.Fatalf("every enrollment gets an entry, 期望 3，实际 %d", len(res.Created))
	}
	for _, e := range res.Created {
		if e.LecturerID != "user-2" || e.RoomID == nil || *e.RoomID != first.ID {
			t.Errorf("entry should use the first lecturer and room: %+v", e)
		}
		if e.Date != "Monday" || e.TimeSlot != "9:00AM - 10:00AM" || e.StudentID != "ST-0001" || e.CourseID == nil {
			t.Errorf("unexpected entry %+v", e)
		}
	}

	// no conflict check: a second run doubles the entries
	if _, err := naive.Generate(ctx); err != nil {
		t.Fatal(err)
	}
	if len(mocks.timetable.entries) != 6 {
		t.Errorf("期望 6 条，实际 %d", len(mocks.timetable.entries))
	}
}

func TestNaiveGenerator_MissingInputs(t *testing.T) {
	_, naive, mocks := setupTestGenerators()
	ctx := context.Background()

	res, err := naive.Generate(ctx)
	if err != nil || len(res.Created) != 0 {
		t.Fatalf("no enrollments is an empty success: %+v %v", res, err)
	}

	addEnrollments(mocks, "Programming")
	if _, err := naive.Generate(ctx); !errors.Is(err, ErrNoLecturerAccount) {
		t.Errorf("期望 ErrNoLecturerAccount，实际 %v", err)
	}
	_ = mocks.user.Create(ctx, &model.User{Username: "lec", Role: model.RoleLecturer})
	if _, err := naive.Generate(ctx); !errors.Is(err, ErrNoLectureRoom) {
		t.Errorf("期望 ErrNoLectureRoom，实际 %v", err)
	}
}

// ── timetable CRUD ──

type stubGenerator struct {
	name string
	res  *GenerationResult
	err  error
}

func (g *stubGenerator) Name() string { return g.name }

func (g *stubGenerator) Generate(context.Context) (*GenerationResult, error) { return g.res, g.err }

func setupTestTimetableService(auto, manual TimetableGenerator) (*timetableService, *mockRepos) {
	repo, mocks := newMockRepos()
	svc := NewTimetableService(repo, auto, manual, testLogger).(*timetableService)
	svc.now = fixedClock(testToday)
	return svc, mocks
}

func TestTimetableCRUD(t *testing.T) {
	svc, mocks := setupTestTimetableService(&stubGenerator{}, &stubGenerator{})
	mocks.lectureRoom.add(roomFixture("A101"))
	ctx := context.Background()

	req := &dto.TimetableRequest{RoomName: "A101", Date: "2026-03-10", StartTime: "10:00", Duration: 60, EventName: "Lab"}
	entry, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local).Format(time.RFC3339)
	if entry.Date != want {
		t.Errorf("期望 %s，实际 %s", want, entry.Date)
	}

	req.StartTime = "14:00"
	updated, err := svc.Update(ctx, entry.ID.Hex(), req)
	if err != nil || updated.StartTime != "14:00" {
		t.Fatalf("Update: %+v %v", updated, err)
	}

	var missing *RoomMissingError
	if _, err := svc.Create(ctx, &dto.TimetableRequest{RoomName: "Z999", Date: "2026-03-10"}); !errors.As(err, &missing) {
		t.Errorf("期望 RoomMissingError，实际 %v", err)
	}
	if _, err := svc.Update(ctx, entry.ID.Hex(), &dto.TimetableRequest{RoomName: "A101", Date: "2026-02-01"}); !errors.Is(err, ErrDateInPast) {
		t.Errorf("期望 ErrDateInPast，实际 %v", err)
	}

	if err := svc.Delete(ctx, entry.ID.Hex()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(ctx, entry.ID.Hex()); !errors.Is(err, ErrTimetableNotFound) {
		t.Errorf("期望 ErrTimetableNotFound，实际 %v", err)
	}
}

func TestTimetableGenerate_Dispatch(t *testing.T) {
	auto := &stubGenerator{name: "auto", res: &GenerationResult{Created: make([]model.Timetable, 2)}}
	manual := &stubGenerator{name: "manual", err: ErrNoLectureRoom}
	svc, _ := setupTestTimetableService(auto, manual)
	ctx := context.Background()

	res, err := svc.GenerateAuto(ctx)
	if err != nil || len(res.Created) != 2 {
		t.Errorf("GenerateAuto: %+v %v", res, err)
	}
	if _, err := svc.GenerateManual(ctx); !errors.Is(err, ErrNoLectureRoom) {
		t.Errorf("期望 ErrNoLectureRoom，实际 %v", err)
	}
}
