package handler

import "github.com/RashmiFernando/study-sphere/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth        *AuthHandler
	Course      *CourseHandler
	Lecturer    *LecturerHandler
	Student     *StudentHandler
	Enrollment  *EnrollmentHandler
	Exam        *ExamHandler
	LectureRoom *LectureRoomHandler
	Schedule    *ScheduleHandler
	Timetable   *TimetableHandler
	Export      *ExportHandler
	Report      *ReportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Course:      NewCourseHandler(svc.Course),
		Lecturer:    NewLecturerHandler(svc.Lecturer),
		Student:     NewStudentHandler(svc.Student),
		Enrollment:  NewEnrollmentHandler(svc.Enrollment),
		Exam:        NewExamHandler(svc.Exam),
		LectureRoom: NewLectureRoomHandler(svc.LectureRoom),
		Schedule:    NewScheduleHandler(svc.Schedule),
		Timetable:   NewTimetableHandler(svc.Timetable),
		Export:      NewExportHandler(svc.Export),
		Report:      NewReportHandler(svc.Report),
	}
}
