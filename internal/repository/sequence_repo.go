package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/RashmiFernando/study-sphere/internal/model"
	"github.com/RashmiFernando/study-sphere/pkg/seqid"
)

// sequenceSource is where the identifiers of one kind live.
type sequenceSource struct {
	collection string
	field      string
}

var sequenceSources = map[seqid.Kind]sequenceSource{
	seqid.KindStudent:    {CollStudents, "studentId"},
	seqid.KindEnrollment: {CollEnrollments, "enrollmentId"},
	seqid.KindExam:       {CollExams, "examId"},
}

// SequenceRepo backs seqid generators with the Mongo collections and the
// counters collection.
type SequenceRepo struct {
	mdb      *mongo.Database
	counters *mongo.Collection
}

// NewSequenceRepo 创建 SequenceRepo 实例
func NewSequenceRepo(mdb *mongo.Database) *SequenceRepo {
	return &SequenceRepo{mdb: mdb, counters: mdb.Collection(CollCounters)}
}

var _ seqid.Store = (*SequenceRepo)(nil)

// LastID returns the greatest identifier of kind in string order.
func (r *SequenceRepo) LastID(ctx context.Context, kind seqid.Kind) (string, error) {
	src, ok := sequenceSources[kind]
	if !ok {
		return "", fmt.Errorf("no identifier source for %s", kind)
	}

	var doc bson.M
	err := r.mdb.Collection(src.collection).FindOne(ctx,
		bson.M{src.field: bson.M{"$exists": true}},
		options.FindOne().
			SetSort(bson.D{{Key: src.field, Value: -1}}).
			SetProjection(bson.M{src.field: 1}),
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	id, _ := doc[src.field].(string)
	return id, nil
}

// Advance raises the counter to floor, then increments it. Both steps are
// single document atomic updates.
func (r *SequenceRepo) Advance(ctx context.Context, kind seqid.Kind, floor int64) (int64, error) {
	key := string(kind)
	upsert := options.Update().SetUpsert(true)
	if _, err := r.counters.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$max": bson.M{"seq": floor}},
		upsert,
	); err != nil && !mongo.IsDuplicateKeyError(err) {
		return 0, fmt.Errorf("seed counter: %w", err)
	}

	var c model.Counter
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return 0, fmt.Errorf("increment counter: %w", err)
	}
	return c.Seq, nil
}
