package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student collection "students". The password hash never leaves the server.
type Student struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	StudentID    string             `bson:"studentId"     json:"studentId"`
	Name         string             `bson:"name"          json:"name"`
	Email        string             `bson:"email"         json:"email"`
	Phone        string             `bson:"phone"         json:"phone"`
	Address      string             `bson:"address"       json:"address"`
	Username     string             `bson:"username"      json:"username"`
	Password     string             `bson:"password"      json:"-"`
	RegisterDate time.Time          `bson:"registerDate"  json:"registerDate"`
}
