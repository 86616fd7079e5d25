package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/RashmiFernando/study-sphere/internal/dto"
	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/internal/repository"
	"github.com/RashmiFernando/study-sphere/pkg/jwt"
	"github.com/RashmiFernando/study-sphere/pkg/seqid"
)

// ── student errors ──

var (
	ErrStudentFieldsMissing = errors.New("student fields missing")
	ErrStudentNotFound      = errors.New("student not found")
	ErrPasswordRequired     = errors.New("password is required")
	ErrCredentialsMissing   = errors.New("username and password are required")
	ErrUsernameNotFound     = errors.New("username not found")
	ErrIncorrectPassword    = errors.New("incorrect password")
)

// StudentService 学生业务接口
type StudentService interface {
	Register(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.StudentResponse, error)
	List(ctx context.Context) ([]dto.StudentResponse, error)
	Get(ctx context.Context, studentID string) (*dto.StudentResponse, error)
	Update(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	ChangePassword(ctx context.Context, studentID, password string) error
	Delete(ctx context.Context, studentID string) error
	Login(ctx context.Context, req *dto.StudentLoginRequest) (*dto.StudentLoginResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	ids    seqid.Generator
	jwtMgr *jwt.Manager
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, ids seqid.Generator, jwtMgr *jwt.Manager, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, ids: ids, jwtMgr: jwtMgr, logger: logger}
}

// ────────────────────── Register ──────────────────────

func (s *studentService) Register(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.StudentResponse, error) {
	address := strings.TrimSpace(req.Address)
	if req.Name == "" || req.Email == "" || req.Phone == "" || address == "" || req.Username == "" || req.Password == "" {
		return nil, ErrStudentFieldsMissing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	studentID, err := s.ids.Next(ctx, seqid.KindStudent)
	if err != nil {
		s.logger.Error("generate student id failed", zap.Error(err))
		return nil, err
	}

	student := &model.Student{
		StudentID:    studentID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      address,
		Username:     req.Username,
		Password:     string(hash),
		RegisterDate: time.Now(),
	}

	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Error("register student failed", zap.String("username", req.Username), zap.Error(err))
		return nil, err
	}

	return toStudentResponse(student), nil
}

// ────────────────────── Read ──────────────────────

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.Student.List(ctx)
	if err != nil {
		s.logger.Error("list students failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		result = append(result, *toStudentResponse(&students[i]))
	}
	return result, nil
}

func (s *studentService) Get(ctx context.Context, studentID string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, s.notFound(err, studentID)
	}
	return toStudentResponse(student), nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = strings.TrimSpace(*req.Address)
	}
	if req.Username != nil {
		fields["username"] = *req.Username
	}

	student, err := s.repo.Student.Update(ctx, studentID, fields)
	if err != nil {
		return nil, s.notFound(err, studentID)
	}
	return toStudentResponse(student), nil
}

func (s *studentService) ChangePassword(ctx context.Context, studentID, password string) error {
	if password == "" {
		return ErrPasswordRequired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.Student.UpdatePassword(ctx, studentID, string(hash)); err != nil {
		return s.notFound(err, studentID)
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, studentID string) error {
	if err := s.repo.Student.Delete(ctx, studentID); err != nil {
		return s.notFound(err, studentID)
	}
	return nil
}

// ────────────────────── Login ──────────────────────

func (s *studentService) Login(ctx context.Context, req *dto.StudentLoginRequest) (*dto.StudentLoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, ErrCredentialsMissing
	}

	student, err := s.repo.Student.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUsernameNotFound
		}
		s.logger.Error("find student by username failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)); err != nil {
		return nil, ErrIncorrectPassword
	}

	token, err := s.jwtMgr.GenerateStudentToken(student.StudentID, student.Username, student.Name)
	if err != nil {
		s.logger.Error("sign student token failed", zap.Error(err))
		return nil, err
	}

	return &dto.StudentLoginResponse{
		Token: token,
		Student: dto.StudentSummary{
			StudentID: student.StudentID,
			Name:      student.Name,
			Username:  student.Username,
			Email:     student.Email,
		},
	}, nil
}

// ── helpers ──

func (s *studentService) notFound(err error, studentID string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrStudentNotFound
	}
	s.logger.Error("student store failed", zap.String("student_id", studentID), zap.Error(err))
	return err
}

func toStudentResponse(st *model.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:           st.ID.Hex(),
		StudentID:    st.StudentID,
		Name:         st.Name,
		Email:        st.Email,
		Phone:        st.Phone,
		Address:      st.Address,
		Username:     st.Username,
		RegisterDate: st.RegisterDate,
	}
}
