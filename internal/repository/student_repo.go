package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/pkg/mongodb"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	List(ctx context.Context) ([]model.Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*model.Student, error)
	GetByUsername(ctx context.Context, username string) (*model.Student, error)
	// Update applies fields with $set and returns the updated student.
	Update(ctx context.Context, studentID string, fields map[string]interface{}) (*model.Student, error)
	UpdatePassword(ctx context.Context, studentID, hash string) error
	Delete(ctx context.Context, studentID string) error
}

type studentRepo struct {
	coll *mongo.Collection
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(mdb *mongo.Database) StudentRepository {
	return &studentRepo{coll: mdb.Collection(CollStudents)}
}

func (r *studentRepo) Create(ctx context.Context, s *model.Student) error {
	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return mongodb.WrapWriteError(err)
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *studentRepo) List(ctx context.Context) ([]model.Student, error) {
	return findAll[model.Student](ctx, r.coll, bson.M{})
}

func (r *studentRepo) GetByStudentID(ctx context.Context, studentID string) (*model.Student, error) {
	return findOne[model.Student](ctx, r.coll, bson.M{"studentId": studentID})
}

func (r *studentRepo) GetByUsername(ctx context.Context, username string) (*model.Student, error) {
	return findOne[model.Student](ctx, r.coll, bson.M{"username": username})
}

func (r *studentRepo) Update(ctx context.Context, studentID string, fields map[string]interface{}) (*model.Student, error) {
	if len(fields) == 0 {
		return r.GetByStudentID(ctx, studentID)
	}
	s, err := findOneAndSet[model.Student](ctx, r.coll, bson.M{"studentId": studentID}, bson.M(fields))
	return s, mongodb.WrapWriteError(err)
}

func (r *studentRepo) UpdatePassword(ctx context.Context, studentID, hash string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"studentId": studentID},
		bson.M{"$set": bson.M{"password": hash}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *studentRepo) Delete(ctx context.Context, studentID string) error {
	return deleteOne(ctx, r.coll, bson.M{"studentId": studentID})
}
