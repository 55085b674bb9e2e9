package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StudySession is an immutable log entry: one sitting of work against a goal.
// Sessions are never edited or deleted once written.
type StudySession struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"userId" json:"userId"`
	GoalID    string             `bson:"goalId" json:"goalId"`
	StartTime time.Time          `bson:"startTime" json:"startTime"`
	Duration  int                `bson:"duration" json:"duration"` // minutes
	Amount    float64            `bson:"amount" json:"amount"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
