package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/pkg/mongodb"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	List(ctx context.Context) ([]model.Course, error)
	Create(ctx context.Context, course *model.Course) error
	UpdateByCode(ctx context.Context, code string, course *model.Course) (matched, modified int64, err error)
	DeleteByCode(ctx context.Context, code string) (int64, error)
	CountByLecturer(ctx context.Context, lecturerName string) (int64, error)
	ReassignLecturer(ctx context.Context, from, to string) (int64, error)
}

type courseRepo struct {
	coll *mongo.Collection
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(mdb *mongo.Database) CourseRepository {
	return &courseRepo{coll: mdb.Collection(CollCourses)}
}

func (r *courseRepo) List(ctx context.Context) ([]model.Course, error) {
	return findAll[model.Course](ctx, r.coll, bson.M{})
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	res, err := r.coll.InsertOne(ctx, course)
	if err != nil {
		return mongodb.WrapWriteError(err)
	}
	course.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *courseRepo) UpdateByCode(ctx context.Context, code string, course *model.Course) (int64, int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"code": code}, bson.M{"$set": bson.M{
		"code":             course.Code,
		"name":             course.Name,
		"credithours":      course.CreditHours,
		"department":       course.Department,
		"assignedlecturer": course.AssignedLecturer,
	}})
	if err != nil {
		return 0, 0, mongodb.WrapWriteError(err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (r *courseRepo) DeleteByCode(ctx context.Context, code string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"code": code})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *courseRepo) CountByLecturer(ctx context.Context, lecturerName string) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"assignedlecturer": lecturerName})
}

func (r *courseRepo) ReassignLecturer(ctx context.Context, from, to string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"assignedlecturer": from},
		bson.M{"$set": bson.M{"assignedlecturer": to}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
