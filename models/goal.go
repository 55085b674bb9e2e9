package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal is a unit of study work ("material") belonging to a Subject, together
// with its pacing plan. TargetAmount and DailyTarget are derived from the
// pacing inputs once, at creation time; the pacing inputs are immutable
// afterwards (only Title may be edited), so the derived fields never go stale.
type Goal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"userId" json:"userId"`
	SubjectID    string             `bson:"subjectId" json:"subjectId"`
	Title        string             `bson:"title" json:"title"`
	BaseAmount   float64            `bson:"baseAmount" json:"baseAmount"`
	Repetitions  int                `bson:"repetitions" json:"repetitions"`
	TargetAmount float64            `bson:"targetAmount" json:"targetAmount"`
	StartDate    time.Time          `bson:"startDate" json:"startDate"`
	EndDate      time.Time          `bson:"endDate" json:"endDate"`
	Frequency    int                `bson:"frequency" json:"frequency"` // once every N days
	DailyTarget  float64            `bson:"dailyTarget" json:"dailyTarget"`
	Progress     float64            `bson:"progress" json:"progress"` // cumulative, append-only
	Purpose      string             `bson:"purpose" json:"purpose"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
