package model

// Counter collection "counters": one document per identifier kind.
type Counter struct {
	ID  string `bson:"_id" json:"_id"`
	Seq int64  `bson:"seq" json:"seq"`
}
