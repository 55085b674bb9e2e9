package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subject is a top-level study category owned by a single user.
type Subject struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Description *string            `bson:"description,omitempty" json:"description,omitempty"`
	TargetScore *int               `bson:"targetScore,omitempty" json:"targetScore,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
