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

type mongoSubjects MongoStore

func (s *mongoSubjects) coll() *mongo.Collection {
	return s.db.Collection(collSubjects)
}

func (s *mongoSubjects) Create(ctx context.Context, subject *models.Subject) (string, error) {
	now := time.Now()
	subject.ID = primitive.NewObjectID()
	subject.CreatedAt = now
	subject.UpdatedAt = now

	if _, err := s.coll().InsertOne(ctx, subject); err != nil {
		return "", err
	}
	return subject.ID.Hex(), nil
}

func (s *mongoSubjects) ListByUser(ctx context.Context, userID string) ([]models.Subject, error) {
	cursor, err := s.coll().Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subjects []models.Subject
	if err := cursor.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (s *mongoSubjects) Get(ctx context.Context, userID, id string) (*models.Subject, error) {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return nil, err
	}

	var subject models.Subject
	err = s.coll().FindOne(ctx, filter).Decode(&subject)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (s *mongoSubjects) Update(ctx context.Context, userID, id string, upd SubjectUpdate) error {
	filter, err := ownedFilter(userID, id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"name":        upd.Name,
		"description": upd.Description,
		"targetScore": upd.TargetScore,
		"updatedAt":   time.Now(),
	}}

	res, err := s.coll().UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	return notFoundOnZero(res.MatchedCount, nil)
}

func (s *mongoSubjects) Delete(ctx context.Context, userID, id string) error {
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
