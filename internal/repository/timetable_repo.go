package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/pkg/mongodb"
)

// TimetableRepository 课表数据访问接口
type TimetableRepository interface {
	List(ctx context.Context) ([]model.Timetable, error)
	GetByID(ctx context.Context, id string) (*model.Timetable, error)
	Create(ctx context.Context, t *model.Timetable) error
	InsertMany(ctx context.Context, entries []model.Timetable) error
	Update(ctx context.Context, id string, t *model.Timetable) (*model.Timetable, error)
	Delete(ctx context.Context, id string) error
	// SlotTaken reports whether an entry already holds the room at the date
	// label and start time.
	SlotTaken(ctx context.Context, roomName, date, startTime string) (bool, error)
}

type timetableRepo struct {
	coll *mongo.Collection
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(mdb *mongo.Database) TimetableRepository {
	return &timetableRepo{coll: mdb.Collection(CollTimetables)}
}

func (r *timetableRepo) List(ctx context.Context) ([]model.Timetable, error) {
	return findAll[model.Timetable](ctx, r.coll, bson.M{})
}

func (r *timetableRepo) GetByID(ctx context.Context, id string) (*model.Timetable, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[model.Timetable](ctx, r.coll, bson.M{"_id": oid})
}

func (r *timetableRepo) Create(ctx context.Context, t *model.Timetable) error {
	res, err := r.coll.InsertOne(ctx, t)
	if err != nil {
		return mongodb.WrapWriteError(err)
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *timetableRepo) InsertMany(ctx context.Context, entries []model.Timetable) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i := range entries {
		docs[i] = entries[i]
	}
	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return mongodb.WrapWriteError(err)
	}
	for i, id := range res.InsertedIDs {
		entries[i].ID = id.(primitive.ObjectID)
	}
	return nil
}

func (r *timetableRepo) Update(ctx context.Context, id string, t *model.Timetable) (*model.Timetable, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	// marshal through the model so omitempty fields stay untouched
	set, err := bson.Marshal(t)
	if err != nil {
		return nil, err
	}
	var fields bson.M
	if err := bson.Unmarshal(set, &fields); err != nil {
		return nil, err
	}
	delete(fields, "_id")
	updated, err := findOneAndSet[model.Timetable](ctx, r.coll, bson.M{"_id": oid}, fields)
	return updated, mongodb.WrapWriteError(err)
}

func (r *timetableRepo) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	return deleteOne(ctx, r.coll, bson.M{"_id": oid})
}

func (r *timetableRepo) SlotTaken(ctx context.Context, roomName, date, startTime string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{
		"roomName":  roomName,
		"date":      date,
		"startTime": startTime,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
