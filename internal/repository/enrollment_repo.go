package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/pkg/mongodb"
)

// EnrollmentRepository 选课数据访问接口
type EnrollmentRepository interface {
	Create(ctx context.Context, e *model.Enrollment) error
	List(ctx context.Context) ([]model.Enrollment, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error)
	CountByCode(ctx context.Context, code string) (int64, error)
}

type enrollmentRepo struct {
	coll *mongo.Collection
}

// NewEnrollmentRepo 创建 EnrollmentRepository 实例
func NewEnrollmentRepo(mdb *mongo.Database) EnrollmentRepository {
	return &enrollmentRepo{coll: mdb.Collection(CollEnrollments)}
}

func (r *enrollmentRepo) Create(ctx context.Context, e *model.Enrollment) error {
	res, err := r.coll.InsertOne(ctx, e)
	if err != nil {
		return mongodb.WrapWriteError(err)
	}
	e.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *enrollmentRepo) List(ctx context.Context) ([]model.Enrollment, error) {
	return findAll[model.Enrollment](ctx, r.coll, bson.M{})
}

func (r *enrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Enrollment, error) {
	return findAll[model.Enrollment](ctx, r.coll, bson.M{"studentId": studentID})
}

func (r *enrollmentRepo) CountByCode(ctx context.Context, code string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"code": code})
}
