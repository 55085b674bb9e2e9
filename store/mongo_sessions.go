package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/f-kazuma/smardy1210/models"
)

type mongoSessions MongoStore

func (s *mongoSessions) coll() *mongo.Collection {
	return s.db.Collection(collSessions)
}

func (s *mongoSessions) Create(ctx context.Context, session *models.StudySession) (string, error) {
	now := time.Now()
	session.ID = primitive.NewObjectID()
	session.CreatedAt = now
	session.UpdatedAt = now

	if _, err := s.coll().InsertOne(ctx, session); err != nil {
		return "", err
	}
	return session.ID.Hex(), nil
}

func (s *mongoSessions) ListByUser(ctx context.Context, userID string) ([]models.StudySession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: -1}})
	cursor, err := s.coll().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []models.StudySession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
