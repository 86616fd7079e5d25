package service

import (
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/internal/repository"
	"github.com/RashmiFernando/study-sphere/pkg/jwt"
	"github.com/RashmiFernando/study-sphere/pkg/seqid"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth        AuthService
	Course      CourseService
	Lecturer    LecturerService
	Student     StudentService
	Enrollment  EnrollmentService
	Exam        ExamService
	LectureRoom LectureRoomService
	Schedule    ScheduleService
	Timetable   TimetableService
	Report      ReportService
	Export      ExportService
}

// NewService 创建 Service 聚合。blacklist 为 nil 时登出不吊销令牌
func NewService(
	repo *repository.Repository,
	ids seqid.Generator,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	timetable := NewTimetableService(repo,
		NewCyclingConflictAwareGenerator(repo, logger),
		NewNaiveFirstMatchGenerator(repo, logger),
		logger,
	)

	return &Service{
		Auth:        NewAuthService(repo, jwtMgr, blacklist, logger),
		Course:      NewCourseService(repo, logger),
		Lecturer:    NewLecturerService(repo, logger),
		Student:     NewStudentService(repo, ids, jwtMgr, logger),
		Enrollment:  NewEnrollmentService(repo, ids, logger),
		Exam:        NewExamService(repo, ids, logger),
		LectureRoom: NewLectureRoomService(repo, logger),
		Schedule:    NewScheduleService(repo, logger),
		Timetable:   timetable,
		Report:      NewReportService(repo, logger),
		Export:      NewExportService(repo, logger),
	}
}
