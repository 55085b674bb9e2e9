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

type mongoResults MongoStore

func (s *mongoResults) coll() *mongo.Collection {
	return s.db.Collection(collResults)
}

func (s *mongoResults) Create(ctx context.Context, result *models.TestResult) (string, error) {
	now := time.Now()
	result.ID = primitive.NewObjectID()
	result.CreatedAt = now
	result.UpdatedAt = now

	if _, err := s.coll().InsertOne(ctx, result); err != nil {
		return "", err
	}
	return result.ID.Hex(), nil
}

func (s *mongoResults) ListByUser(ctx context.Context, userID string) ([]models.TestResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := s.coll().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []models.TestResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
