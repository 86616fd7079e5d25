package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/internal/repository"
	apperrors "github.com/RashmiFernando/study-sphere/pkg/errors"
	"github.com/RashmiFernando/study-sphere/pkg/seqid"
)

// ── Mock aggregate ──

type mockRepos struct {
	user        *mockUserRepo
	course      *mockCourseRepo
	lecturer    *mockLecturerRepo
	student     *mockStudentRepo
	enrollment  *mockEnrollmentRepo
	exam        *mockExamRepo
	lectureRoom *mockLectureRoomRepo
	schedule    *mockScheduleRepo
	timetable   *mockTimetableRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		user:        newMockUserRepo(),
		course:      &mockCourseRepo{},
		lecturer:    &mockLecturerRepo{},
		student:     &mockStudentRepo{},
		enrollment:  &mockEnrollmentRepo{},
		exam:        &mockExamRepo{},
		lectureRoom: &mockLectureRoomRepo{},
		schedule:    &mockScheduleRepo{},
		timetable:   &mockTimetableRepo{},
	}
	repo := &repository.Repository{
		User:        m.user,
		Course:      m.course,
		Lecturer:    m.lecturer,
		Student:     m.student,
		Enrollment:  m.enrollment,
		Exam:        m.exam,
		LectureRoom: m.lectureRoom,
		Schedule:    m.schedule,
		Timetable:   m.timetable,
	}
	return repo, m
}

var testLogger = zap.NewNop()

// fixedClock returns a clock stuck at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// ── Mock seqid.Generator ──

type mockIDGenerator struct {
	mu   sync.Mutex
	last map[seqid.Kind]int64
	err  error
}

func newMockIDGenerator() *mockIDGenerator {
	return &mockIDGenerator{last: make(map[seqid.Kind]int64)}
}

func (g *mockIDGenerator) Next(_ context.Context, kind seqid.Kind) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last[kind]++
	return seqid.Format(kind.Prefix(), g.last[kind]), nil
}

func (g *mockIDGenerator) Strategy() string { return "mock" }

// ── Mock UserRepository ──

type mockUserRepo struct {
	users   []*model.User
	listErr error
}

func newMockUserRepo() *mockUserRepo { return &mockUserRepo{} }

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return apperrors.ErrDuplicateKey
		}
	}
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("user-%d", len(m.users)+1)
	}
	m.users = append(m.users, user)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range m.users {
		if u.UserID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) FirstByRole(_ context.Context, role string) (*model.User, error) {
	for _, u := range m.users {
		if u.Role == role {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock CourseRepository ──

type mockCourseRepo struct {
	courses   []*model.Course
	createErr error
}

func (m *mockCourseRepo) List(_ context.Context) ([]model.Course, error) {
	result := make([]model.Course, 0, len(m.courses))
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	if m.createErr != nil {
		return m.createErr
	}
	course.ID = primitive.NewObjectID()
	m.courses = append(m.courses, course)
	return nil
}

func (m *mockCourseRepo) UpdateByCode(_ context.Context, code string, course *model.Course) (int64, int64, error) {
	for _, c := range m.courses {
		if c.Code == code {
			modified := int64(0)
			if *c != (model.Course{ID: c.ID, Code: course.Code, Name: course.Name, CreditHours: course.CreditHours,
				Department: course.Department, AssignedLecturer: course.AssignedLecturer}) {
				modified = 1
			}
			id := c.ID
			*c = *course
			c.ID = id
			return 1, modified, nil
		}
	}
	return 0, 0, nil
}

func (m *mockCourseRepo) DeleteByCode(_ context.Context, code string) (int64, error) {
	for i, c := range m.courses {
		if c.Code == code {
			m.courses = append(m.courses[:i], m.courses[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockCourseRepo) CountByLecturer(_ context.Context, lecturerName string) (int64, error) {
	var n int64
	for _, c := range m.courses {
		if c.AssignedLecturer == lecturerName {
			n++
		}
	}
	return n, nil
}

func (m *mockCourseRepo) ReassignLecturer(_ context.Context, from, to string) (int64, error) {
	var n int64
	for _, c := range m.courses {
		if c.AssignedLecturer == from {
			c.AssignedLecturer = to
			n++
		}
	}
	return n, nil
}

// ── Mock LecturerRepository ──

type mockLecturerRepo struct {
	lecturers []*model.Lecturer
}

func (m *mockLecturerRepo) add(l *model.Lecturer) *model.Lecturer {
	l.ObjectID = primitive.NewObjectID()
	m.lecturers = append(m.lecturers, l)
	return l
}

func (m *mockLecturerRepo) List(_ context.Context) ([]model.Lecturer, error) {
	result := make([]model.Lecturer, 0, len(m.lecturers))
	for _, l := range m.lecturers {
		result = append(result, *l)
	}
	return result, nil
}

func (m *mockLecturerRepo) Create(_ context.Context, l *model.Lecturer) error {
	m.add(l)
	return nil
}

func (m *mockLecturerRepo) UpdateByID(_ context.Context, id string, l *model.Lecturer) (int64, int64, error) {
	for _, cur := range m.lecturers {
		if cur.ID == id {
			oid := cur.ObjectID
			*cur = *l
			cur.ObjectID = oid
			return 1, 1, nil
		}
	}
	return 0, 0, nil
}

func (m *mockLecturerRepo) FindAvailableInDepartment(_ context.Context, department string) (*model.Lecturer, error) {
	for _, l := range m.lecturers {
		if l.Department == department && l.AvailabilityStatus == model.LecturerAvailable {
			return l, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockLecturerRepo) SetAvailability(_ context.Context, oid primitive.ObjectID, status string) error {
	for _, l := range m.lecturers {
		if l.ObjectID == oid {
			l.AvailabilityStatus = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *mockLecturerRepo) DeleteByID(_ context.Context, id string) (*model.Lecturer, error) {
	for i, l := range m.lecturers {
		if l.ID == id {
			m.lecturers = append(m.lecturers[:i], m.lecturers[i+1:]...)
			return l, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students []*model.Student
}

func (m *mockStudentRepo) find(studentID string) *model.Student {
	for _, s := range m.students {
		if s.StudentID == studentID {
			return s
		}
	}
	return nil
}

func (m *mockStudentRepo) Create(_ context.Context, st *model.Student) error {
	for _, s := range m.students {
		if s.StudentID == st.StudentID || s.Username == st.Username || s.Email == st.Email {
			return apperrors.ErrDuplicateKey
		}
	}
	st.ID = primitive.NewObjectID()
	m.students = append(m.students, st)
	return nil
}

func (m *mockStudentRepo) List(_ context.Context) ([]model.Student, error) {
	result := make([]model.Student, 0, len(m.students))
	for _, s := range m.students {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockStudentRepo) GetByStudentID(_ context.Context, studentID string) (*model.Student, error) {
	if s := m.find(studentID); s != nil {
		return s, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockStudentRepo) GetByUsername(_ context.Context, username string) (*model.Student, error) {
	for _, s := range m.students {
		if s.Username == username {
			return s, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockStudentRepo) Update(_ context.Context, studentID string, fields map[string]interface{}) (*model.Student, error) {
	s := m.find(studentID)
	if s == nil {
		return nil, mongo.ErrNoDocuments
	}
	for k, v := range fields {
		switch k {
		case "name":
			s.Name = v.(string)
		case "email":
			s.Email = v.(string)
		case "phone":
			s.Phone = v.(string)
		case "address":
			s.Address = v.(string)
		case "username":
			s.Username = v.(string)
		}
	}
	return s, nil
}

func (m *mockStudentRepo) UpdatePassword(_ context.Context, studentID, hash string) error {
	s := m.find(studentID)
	if s == nil {
		return mongo.ErrNoDocuments
	}
	s.Password = hash
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, studentID string) error {
	for i, s := range m.students {
		if s.StudentID == studentID {
			m.students = append(m.students[:i], m.students[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments []model.Enrollment
}

func (m *mockEnrollmentRepo) Create(_ context.Context, e *model.Enrollment) error {
	e.ID = primitive.NewObjectID()
	m.enrollments = append(m.enrollments, *e)
	return nil
}

func (m *mockEnrollmentRepo) List(_ context.Context) ([]model.Enrollment, error) {
	return append([]model.Enrollment{}, m.enrollments...), nil
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.StudentID == studentID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockEnrollmentRepo) CountByCode(_ context.Context, code string) (int64, error) {
	var n int64
	for _, e := range m.enrollments {
		if e.Code == code {
			n++
		}
	}
	return n, nil
}

// ── Mock ExamRepository ──

type mockExamRepo struct {
	exams []*model.Exam
}

func (m *mockExamRepo) find(id string) *model.Exam {
	for _, e := range m.exams {
		if e.ID.Hex() == id {
			return e
		}
	}
	return nil
}

func (m *mockExamRepo) Create(_ context.Context, exam *model.Exam) error {
	exam.ID = primitive.NewObjectID()
	m.exams = append(m.exams, exam)
	return nil
}

func (m *mockExamRepo) List(_ context.Context) ([]model.Exam, error) {
	result := make([]model.Exam, 0, len(m.exams))
	for _, e := range m.exams {
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockExamRepo) GetByID(_ context.Context, id string) (*model.Exam, error) {
	if e := m.find(id); e != nil {
		return e, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockExamRepo) ListByCodes(_ context.Context, codes []string) ([]model.Exam, error) {
	var result []model.Exam
	for _, e := range m.exams {
		for _, c := range codes {
			if e.Code == c {
				result = append(result, *e)
				break
			}
		}
	}
	return result, nil
}

func (m *mockExamRepo) Reschedule(_ context.Context, id string, fields map[string]interface{}) (*model.Exam, error) {
	e := m.find(id)
	if e == nil {
		return nil, mongo.ErrNoDocuments
	}
	for k, v := range fields {
		switch k {
		case "code":
			e.Code = v.(string)
		case "examName":
			e.ExamName = v.(string)
		case "examDate":
			e.ExamDate = v.(time.Time)
		case "examDuration":
			e.ExamDuration = v.(int)
		}
	}
	return e, nil
}

func (m *mockExamRepo) Delete(_ context.Context, id string) error {
	for i, e := range m.exams {
		if e.ID.Hex() == id {
			m.exams = append(m.exams[:i], m.exams[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// ── Mock LectureRoomRepository ──

type mockLectureRoomRepo struct {
	rooms []*model.LectureRoom
}

func (m *mockLectureRoomRepo) add(r *model.LectureRoom) *model.LectureRoom {
	r.ID = primitive.NewObjectID()
	m.rooms = append(m.rooms, r)
	return r
}

func (m *mockLectureRoomRepo) List(_ context.Context) ([]model.LectureRoom, error) {
	result := make([]model.LectureRoom, 0, len(m.rooms))
	for _, r := range m.rooms {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockLectureRoomRepo) GetByID(_ context.Context, id string) (*model.LectureRoom, error) {
	for _, r := range m.rooms {
		if r.ID.Hex() == id {
			return r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockLectureRoomRepo) GetByRoomName(_ context.Context, roomName string) (*model.LectureRoom, error) {
	for _, r := range m.rooms {
		if r.RoomName == roomName {
			return r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockLectureRoomRepo) ExistsByRoomName(ctx context.Context, roomName string) (bool, error) {
	_, err := m.GetByRoomName(ctx, roomName)
	return err == nil, nil
}

func (m *mockLectureRoomRepo) Create(_ context.Context, room *model.LectureRoom) error {
	m.add(room)
	return nil
}

func (m *mockLectureRoomRepo) Replace(_ context.Context, id string, room *model.LectureRoom) (*model.LectureRoom, error) {
	for _, r := range m.rooms {
		if r.ID.Hex() == id {
			oid := r.ID
			*r = *room
			r.ID = oid
			return r, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockLectureRoomRepo) Delete(_ context.Context, id string) error {
	for i, r := range m.rooms {
		if r.ID.Hex() == id {
			m.rooms = append(m.rooms[:i], m.rooms[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *mockLectureRoomRepo) SetUtilization(_ context.Context, oid primitive.ObjectID, utilization float64) error {
	for _, r := range m.rooms {
		if r.ID == oid {
			r.Utilization = utilization
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules []*model.Schedule
}

func (m *mockScheduleRepo) List(_ context.Context) ([]model.Schedule, error) {
	result := make([]model.Schedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.Schedule, error) {
	for _, s := range m.schedules {
		if s.ID.Hex() == id {
			return s, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockScheduleRepo) Create(_ context.Context, s *model.Schedule) error {
	s.ID = primitive.NewObjectID()
	m.schedules = append(m.schedules, s)
	return nil
}

func (m *mockScheduleRepo) Update(_ context.Context, id string, s *model.Schedule) (*model.Schedule, error) {
	for _, cur := range m.schedules {
		if cur.ID.Hex() == id {
			oid, sid, created := cur.ID, cur.ScheduleID, cur.CreatedAt
			*cur = *s
			cur.ID, cur.ScheduleID, cur.CreatedAt = oid, sid, created
			return cur, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	for i, s := range m.schedules {
		if s.ID.Hex() == id {
			m.schedules = append(m.schedules[:i], m.schedules[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	entries []*model.Timetable
	// createErrAt fails the nth Create call, counting from 1
	createErrAt int
	creates     int
}

func (m *mockTimetableRepo) List(_ context.Context) ([]model.Timetable, error) {
	result := make([]model.Timetable, 0, len(m.entries))
	for _, t := range m.entries {
		result = append(result, *t)
	}
	return result, nil
}

func (m *mockTimetableRepo) GetByID(_ context.Context, id string) (*model.Timetable, error) {
	for _, t := range m.entries {
		if t.ID.Hex() == id {
			return t, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockTimetableRepo) Create(_ context.Context, t *model.Timetable) error {
	m.creates++
	if m.createErrAt > 0 && m.creates == m.createErrAt {
		return fmt.Errorf("insert timetable: connection reset")
	}
	t.ID = primitive.NewObjectID()
	m.entries = append(m.entries, t)
	return nil
}

func (m *mockTimetableRepo) InsertMany(_ context.Context, entries []model.Timetable) error {
	for i := range entries {
		entries[i].ID = primitive.NewObjectID()
		e := entries[i]
		m.entries = append(m.entries, &e)
	}
	return nil
}

func (m *mockTimetableRepo) Update(_ context.Context, id string, t *model.Timetable) (*model.Timetable, error) {
	for _, cur := range m.entries {
		if cur.ID.Hex() == id {
			oid := cur.ID
			*cur = *t
			cur.ID = oid
			return cur, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockTimetableRepo) Delete(_ context.Context, id string) error {
	for i, t := range m.entries {
		if t.ID.Hex() == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (m *mockTimetableRepo) SlotTaken(_ context.Context, roomName, date, startTime string) (bool, error) {
	for _, t := range m.entries {
		if t.RoomName == roomName && t.Date == date && t.StartTime == startTime {
			return true, nil
		}
	}
	return false, nil
}

// ── fixtures ──

func roomFixture(name string, equipments ...string) *model.LectureRoom {
	return &model.LectureRoom{
		RoomID:              "ROOM-" + name,
		RoomName:            name,
		Location:            "Main Building",
		Capacity:            60,
		RoomType:            "Lecture Hall",
		AvailableEquipments: equipments,
		Quantity:            model.DefaultQuantity(),
		SeatingType:         "Fixed Seating",
		Condition:           model.ConditionGood,
		Department:          "Computing",
		AddedBy:             "admin",
		Email:               "rooms@campus.test",
	}
}

func roomNames(rooms []model.LectureRoom) []string {
	names := make([]string, 0, len(rooms))
	for _, r := range rooms {
		names = append(names, r.RoomName)
	}
	sort.Strings(names)
	return names
}

func joinNames(names []string) string { return strings.Join(names, ",") }
