package repository

import (
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User        UserRepository
	Course      CourseRepository
	Lecturer    LecturerRepository
	Student     StudentRepository
	Enrollment  EnrollmentRepository
	Exam        ExamRepository
	LectureRoom LectureRoomRepository
	Schedule    ScheduleRepository
	Timetable   TimetableRepository
	Sequence    *SequenceRepo
}

// NewRepository wires the PostgreSQL account store and the Mongo academic
// collections into one aggregate.
func NewRepository(db *gorm.DB, mdb *mongo.Database) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		Course:      NewCourseRepo(mdb),
		Lecturer:    NewLecturerRepo(mdb),
		Student:     NewStudentRepo(mdb),
		Enrollment:  NewEnrollmentRepo(mdb),
		Exam:        NewExamRepo(mdb),
		LectureRoom: NewLectureRoomRepo(mdb),
		Schedule:    NewScheduleRepo(mdb),
		Timetable:   NewTimetableRepo(mdb),
		Sequence:    NewSequenceRepo(mdb),
	}
}
