package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/pkg/mongodb"
)

// LecturerRepository 讲师数据访问接口
type LecturerRepository interface {
	List(ctx context.Context) ([]model.Lecturer, error)
	Create(ctx context.Context, lecturer *model.Lecturer) error
	UpdateByID(ctx context.Context, id string, lecturer *model.Lecturer) (matched, modified int64, err error)
	// FindAvailableInDepartment returns mongo.ErrNoDocuments when no lecturer
	// of the department is Available.
	FindAvailableInDepartment(ctx context.Context, department string) (*model.Lecturer, error)
	SetAvailability(ctx context.Context, oid primitive.ObjectID, status string) error
	// DeleteByID removes the lecturer with business id and returns it.
	DeleteByID(ctx context.Context, id string) (*model.Lecturer, error)
}

type lecturerRepo struct {
	coll *mongo.Collection
}

// NewLecturerRepo 创建 LecturerRepository 实例
func NewLecturerRepo(mdb *mongo.Database) LecturerRepository {
	return &lecturerRepo{coll: mdb.Collection(CollLecturers)}
}

func (r *lecturerRepo) List(ctx context.Context) ([]model.Lecturer, error) {
	return findAll[model.Lecturer](ctx, r.coll, bson.M{})
}

func (r *lecturerRepo) Create(ctx context.Context, lecturer *model.Lecturer) error {
	res, err := r.coll.InsertOne(ctx, lecturer)
	if err != nil {
		return mongodb.WrapWriteError(err)
	}
	lecturer.ObjectID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *lecturerRepo) UpdateByID(ctx context.Context, id string, l *model.Lecturer) (int64, int64, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"name":               l.Name,
		"department":         l.Department,
		"assignedCourses":    l.AssignedCourses,
		"availabilityStatus": l.AvailabilityStatus,
		"email":              l.Email,
	}})
	if err != nil {
		return 0, 0, mongodb.WrapWriteError(err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (r *lecturerRepo) FindAvailableInDepartment(ctx context.Context, department string) (*model.Lecturer, error) {
	return findOne[model.Lecturer](ctx, r.coll, bson.M{
		"department":         department,
		"availabilityStatus": model.LecturerAvailable,
	})
}

func (r *lecturerRepo) SetAvailability(ctx context.Context, oid primitive.ObjectID, status string) error {
	_, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"availabilityStatus": status}})
	return err
}

func (r *lecturerRepo) DeleteByID(ctx context.Context, id string) (*model.Lecturer, error) {
	var l model.Lecturer
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"id": id}).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}
