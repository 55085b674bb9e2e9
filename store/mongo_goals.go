package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/f-kazuma/smardy1210/models"
)

type mongoGoals MongoStore

func (s *mongoGoals) coll() *mongo.Collection {
	return s.db.Collection(collGoals)
}

func (s *mongoGoals) Create(ctx context.Context, goal *models.Goal) (string, error) {
	now := time.Now()
	goal.ID = primitive.NewObjectID()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	if _, err := s.coll().InsertOne(ctx, goal); err != nil {
		return "", err
	}
	return goal.ID.Hex(), nil
}

func (s *mongoGoals) ListByUser(ctx context.Context, userID string) ([]models.Goal, error) {
	return s.list(ctx, bson.M{"userId": userID})
}

func (s *mongoGoals) ListBySubject(ctx context.Context, userID, subjectID string) ([]models.Goal, error) {
	return s.list(ctx, bson.M{"userId": userID, "subjectId": subjectID})
}

func (s *mongoGoals) list(ctx context.Context, filter bson.M) ([]models.Goal, error) {
	cursor, err := s.coll().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var goals []models.Goal
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

func (s *mongoGoals) Get(ctx context.Context, userID, id string) (*models.Goal, error) {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return nil, err
	}

	var goal models.Goal
	err = s.coll().FindOne(ctx, filter).Decode(&goal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *mongoGoals) UpdateTitle(ctx context.Context, userID, id, title string) error {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return err
	}

	res, err := s.coll().UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"title":     title,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return err
	}
	return notFoundOnZero(res.MatchedCount, nil)
}

func (s *mongoGoals) AddProgress(ctx context.Context, userID, id string, amount float64) error {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return err
	}

	res, err := s.coll().UpdateOne(ctx, filter, bson.M{
		"$inc": bson.M{"progress": amount},
		"$set": bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return err
	}
	return notFoundOnZero(res.MatchedCount, nil)
}

func (s *mongoGoals) Delete(ctx context.Context, userID, id string) error {
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
