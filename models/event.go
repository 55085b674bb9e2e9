package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventTypeExam     = "exam"
	EventTypeTest     = "test"
	EventTypeDeadline = "deadline"
	EventTypeGoal     = "goal"
)

// Event is a calendar entry (exam date, deadline, ...).
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      string             `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Date        time.Time          `bson:"date" json:"date"`
	Type        string             `bson:"type" json:"type"`
	Description *string            `bson:"description,omitempty" json:"description,omitempty"`
	TargetScore *int               `bson:"targetScore,omitempty" json:"targetScore,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ValidEventType reports whether t is one of the supported calendar entry types.
func ValidEventType(t string) bool {
	switch t {
	case EventTypeExam, EventTypeTest, EventTypeDeadline, EventTypeGoal:
		return true
	}
	return false
}
