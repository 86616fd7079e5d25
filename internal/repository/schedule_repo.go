package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/pkg/mongodb"
)

// ScheduleRepository 排课数据访问接口
type ScheduleRepository interface {
	List(ctx context.Context) ([]model.Schedule, error)
	GetByID(ctx context.Context, id string) (*model.Schedule, error)
	Create(ctx context.Context, s *model.Schedule) error
	Update(ctx context.Context, id string, s *model.Schedule) (*model.Schedule, error)
	Delete(ctx context.Context, id string) error
}

type scheduleRepo struct {
	coll *mongo.Collection
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(mdb *mongo.Database) ScheduleRepository {
	return &scheduleRepo{coll: mdb.Collection(CollSchedules)}
}

func (r *scheduleRepo) List(ctx context.Context) ([]model.Schedule, error) {
	return findAll[model.Schedule](ctx, r.coll, bson.M{})
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.Schedule, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[model.Schedule](ctx, r.coll, bson.M{"_id": oid})
}

func (r *scheduleRepo) Create(ctx context.Context, s *model.Schedule) error {
	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return mongodb.WrapWriteError(err)
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *scheduleRepo) Update(ctx context.Context, id string, s *model.Schedule) (*model.Schedule, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	set := bson.M{
		"roomName":      s.RoomName,
		"eventType":     s.EventType,
		"eventName":     s.EventName,
		"faculty":       s.Faculty,
		"department":    s.Department,
		"date":          s.Date,
		"startTime":     s.StartTime,
		"duration":      s.Duration,
		"endTime":       s.EndTime,
		"recurrence":    s.Recurrence,
		"priorityLevel": s.PriorityLevel,
		"status":        s.Status,
		"createdBy":     s.CreatedBy,
		"email":         s.Email,
	}
	unset := bson.M{}
	if s.CustomEventType != "" {
		set["customEventType"] = s.CustomEventType
	} else {
		unset["customEventType"] = ""
	}
	if s.RecurrenceFrequency != "" {
		set["recurrenceFrequency"] = s.RecurrenceFrequency
	} else {
		unset["recurrenceFrequency"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var updated model.Schedule
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, returnAfter()).Decode(&updated)
	if err != nil {
		return nil, mongodb.WrapWriteError(err)
	}
	return &updated, nil
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	return deleteOne(ctx, r.coll, bson.M{"_id": oid})
}
