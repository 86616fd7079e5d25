package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/pkg/mongodb"
)

// LectureRoomRepository 教室数据访问接口
type LectureRoomRepository interface {
	List(ctx context.Context) ([]model.LectureRoom, error)
	GetByID(ctx context.Context, id string) (*model.LectureRoom, error)
	// GetByRoomName returns the first room with the name.
	GetByRoomName(ctx context.Context, roomName string) (*model.LectureRoom, error)
	ExistsByRoomName(ctx context.Context, roomName string) (bool, error)
	Create(ctx context.Context, room *model.LectureRoom) error
	Replace(ctx context.Context, id string, room *model.LectureRoom) (*model.LectureRoom, error)
	Delete(ctx context.Context, id string) error
	SetUtilization(ctx context.Context, oid primitive.ObjectID, utilization float64) error
}

type lectureRoomRepo struct {
	coll *mongo.Collection
}

// NewLectureRoomRepo 创建 LectureRoomRepository 实例
func NewLectureRoomRepo(mdb *mongo.Database) LectureRoomRepository {
	return &lectureRoomRepo{coll: mdb.Collection(CollLectureRooms)}
}

func (r *lectureRoomRepo) List(ctx context.Context) ([]model.LectureRoom, error) {
	return findAll[model.LectureRoom](ctx, r.coll, bson.M{})
}

func (r *lectureRoomRepo) GetByID(ctx context.Context, id string) (*model.LectureRoom, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return findOne[model.LectureRoom](ctx, r.coll, bson.M{"_id": oid})
}

func (r *lectureRoomRepo) GetByRoomName(ctx context.Context, roomName string) (*model.LectureRoom, error) {
	return findOne[model.LectureRoom](ctx, r.coll, bson.M{"roomName": roomName})
}

func (r *lectureRoomRepo) ExistsByRoomName(ctx context.Context, roomName string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"roomName": roomName})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *lectureRoomRepo) Create(ctx context.Context, room *model.LectureRoom) error {
	now := time.Now()
	room.CreatedAt = now
	room.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, room)
	if err != nil {
		return mongodb.WrapWriteError(err)
	}
	room.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *lectureRoomRepo) Replace(ctx context.Context, id string, room *model.LectureRoom) (*model.LectureRoom, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	updated, err := findOneAndSet[model.LectureRoom](ctx, r.coll, bson.M{"_id": oid}, bson.M{
		"roomName":             room.RoomName,
		"location":             room.Location,
		"capacity":             room.Capacity,
		"room_type":            room.RoomType,
		"available_equipments": room.AvailableEquipments,
		"quantity":             room.Quantity,
		"seating_type":         room.SeatingType,
		"air_conditioning":     room.AirConditioning,
		"power_outlets":        room.PowerOutlets,
		"condition":            room.Condition,
		"department":           room.Department,
		"addedBy":              room.AddedBy,
		"email":                room.Email,
		"utilization":          room.Utilization,
		"updatedAt":            time.Now(),
	})
	return updated, mongodb.WrapWriteError(err)
}

func (r *lectureRoomRepo) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	return deleteOne(ctx, r.coll, bson.M{"_id": oid})
}

func (r *lectureRoomRepo) SetUtilization(ctx context.Context, oid primitive.ObjectID, utilization float64) error {
	_, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"utilization": utilization,
		"updatedAt":   time.Now(),
	}})
	return err
}
