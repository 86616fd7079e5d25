package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/pkg/mongodb"
)

// ExamRepository 考试数据访问接口
type ExamRepository interface {
	Create(ctx context.Context, exam *model.Exam) error
	List(ctx context.Context) ([]model.Exam, error)
	GetByID(ctx context.Context, id string) (*model.Exam, error)
	ListByCodes(ctx context.Context, codes []string) ([]model.Exam, error)
	// Reschedule applies fields with $set and returns the updated exam.
	Reschedule(ctx context.Context, id string, fields map[string]interface{}) (*model.Exam, error)
	Delete(ctx context.Context, id string) error
}

type examRepo struct {
	coll *mongo.Collection
}

// NewExamRepo 创建 ExamRepository 实例
func NewExamRepo(mdb *mongo.Database) ExamRepository {
	return &examRepo{coll: mdb.Collection(CollExams)}
}

func (r *examRepo) Create(ctx context.Context, exam *model.Exam) error {
	res, err := r.coll.InsertOne(ctx, exam)
	if err != nil {
		return mongodb.WrapWriteError(err)
	}
	exam.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *examRepo) List(ctx context.Context) ([]model.Exam, error) {
	return findAll[model.Exam](ctx, r.coll, bson.M{})
}

func (r *examRepo) GetByID(ctx context.Context, id string) (*model.Exam, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[model.Exam](ctx, r.coll, bson.M{"_id": oid})
}

func (r *examRepo) ListByCodes(ctx context.Context, codes []string) ([]model.Exam, error) {
	return findAll[model.Exam](ctx, r.coll, bson.M{"code": bson.M{"$in": codes}})
}

func (r *examRepo) Reschedule(ctx context.Context, id string, fields map[string]interface{}) (*model.Exam, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return findOne[model.Exam](ctx, r.coll, bson.M{"_id": oid})
	}
	return findOneAndSet[model.Exam](ctx, r.coll, bson.M{"_id": oid}, bson.M(fields))
}

func (r *examRepo) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	return deleteOne(ctx, r.coll, bson.M{"_id": oid})
}
