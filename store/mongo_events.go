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

type mongoEvents MongoStore

func (s *mongoEvents) coll() *mongo.Collection {
	return s.db.Collection(collEvents)
}

func (s *mongoEvents) Create(ctx context.Context, event *models.Event) (string, error) {
	now := time.Now()
	event.ID = primitive.NewObjectID()
	event.CreatedAt = now
	event.UpdatedAt = now

	if _, err := s.coll().InsertOne(ctx, event); err != nil {
		return "", err
	}
	return event.ID.Hex(), nil
}

func (s *mongoEvents) ListByUser(ctx context.Context, userID string) ([]models.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := s.coll().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *mongoEvents) Update(ctx context.Context, userID, id string, event *models.Event) error {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return err
	}

	res, err := s.coll().UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"title":       event.Title,
		"date":        event.Date,
		"type":        event.Type,
		"description": event.Description,
		"targetScore": event.TargetScore,
		"updatedAt":   time.Now(),
	}})
	if err != nil {
		return err
	}
	return notFoundOnZero(res.MatchedCount, nil)
}

func (s *mongoEvents) Delete(ctx context.Context, userID, id string) error {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return err
	}

	res, err := s.coll().DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	return notFoundOnZero(res.DeletedCount, nil)
}
