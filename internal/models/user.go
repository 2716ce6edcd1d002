package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered account. The password hash never leaves the server.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password" json:"-"`
}
