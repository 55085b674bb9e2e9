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

type mongoUsers MongoStore

func (s *mongoUsers) coll() *mongo.Collection {
	return s.db.Collection(collUsers)
}

func (s *mongoUsers) Create(ctx context.Context, user *models.User) (string, error) {
	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := s.coll().InsertOne(ctx, user); err != nil {
		return "", err
	}
	return user.ID.Hex(), nil
}

func (s *mongoUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *mongoUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.coll().FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
