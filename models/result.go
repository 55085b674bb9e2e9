package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TestTypeRegular = "regular"
	TestTypeMock    = "mock"
)

// SubjectScore is one per-subject line of a test result.
type SubjectScore struct {
	SubjectID string `bson:"subjectId" json:"subjectId"`
	MaxScore  int    `bson:"maxScore" json:"maxScore"`
	Score     int    `bson:"score" json:"score"`
}

// TestResult is a scored assessment. Deviation and SchoolRank only apply to
// mock exams.
type TestResult struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userId" json:"userId"`
	Date       time.Time          `bson:"date" json:"date"`
	Type       string             `bson:"type" json:"type"` // "regular" or "mock"
	Subjects   []SubjectScore     `bson:"subjects" json:"subjects"`
	Deviation  *float64           `bson:"deviation,omitempty" json:"deviation,omitempty"`
	SchoolRank *string            `bson:"schoolRank,omitempty" json:"schoolRank,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
