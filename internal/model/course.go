package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Course collection "courses". All fields are free text as stored.
type Course struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"    json:"_id"`
	Code             string             `bson:"code"             json:"code"`
	Name             string             `bson:"name"             json:"name"`
	CreditHours      string             `bson:"credithours"      json:"credithours"`
	Department       string             `bson:"department"       json:"department"`
	AssignedLecturer string             `bson:"assignedlecturer" json:"assignedlecturer"`
}
