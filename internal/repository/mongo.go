package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/RashmiFernando/study-sphere/pkg/errors"
)

// Collection names.
const (
	CollCourses      = "courses"
	CollLecturers    = "lecturers"
	CollStudents     = "students"
	CollEnrollments  = "enrollments"
	CollExams        = "exams"
	CollLectureRooms = "lecturerooms"
	CollSchedules    = "schedules"
	CollTimetables   = "timetables"
	CollCounters     = "counters"
)

// EnsureIndexes creates the unique indexes the collections rely on.
func EnsureIndexes(ctx context.Context, mdb *mongo.Database) error {
	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	plain := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
	}

	specs := map[string][]mongo.IndexModel{
		CollStudents:     {unique("studentId"), unique("email"), unique("username")},
		CollEnrollments:  {unique("enrollmentId"), plain("studentId"), plain("code")},
		CollExams:        {unique("examId"), plain("code")},
		CollLectureRooms: {unique("room_id"), plain("roomName")},
		CollSchedules:    {unique("scheduleId"), plain("roomName")},
		CollTimetables: {{
			Keys: bson.D{{Key: "roomName", Value: 1}, {Key: "date", Value: 1}, {Key: "startTime", Value: 1}},
		}},
		CollCourses:   {plain("code"), plain("assignedlecturer")},
		CollLecturers: {plain("id"), plain("department")},
	}

	for coll, models := range specs {
		if _, err := mdb.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// objectID parses a hex document id. An invalid id reads as not found.
func objectID(hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %w", mongo.ErrNoDocuments, apperrors.ErrInvalidID)
	}
	return oid, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOneOptions) (*T, error) {
	var v T
	if err := coll.FindOne(ctx, filter, opts...).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// findOneAndSet applies $set to the document matching filter and returns the
// updated document.
func findOneAndSet[T any](ctx context.Context, coll *mongo.Collection, filter, set interface{}) (*T, error) {
	var v T
	err := coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, returnAfter()).Decode(&v)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// deleteOne removes the matching document, reporting mongo.ErrNoDocuments when
// nothing matched.
func deleteOne(ctx context.Context, coll *mongo.Collection, filter interface{}) error {
	res, err := coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}
