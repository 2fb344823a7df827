package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserModel represents a registered account.
type UserModel struct {
	ID        primitive.ObjectID `json:"id"               bson:"_id,omitempty"`
	Name      string             `json:"name"             bson:"name"`
	Email     string             `json:"email"            bson:"email"`
	Password  string             `json:"-"                bson:"password"`
	Photo     string             `json:"photo,omitempty"  bson:"photo,omitempty"`
	Role      string             `json:"role"             bson:"role"`
	Active    bool               `json:"-"                bson:"active"`
	CreatedAt time.Time          `json:"created_at"       bson:"createdAt"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
