package store

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	collUsers    = "users"
	collSubjects = "subjects"
	collGoals    = "goals"
	collSessions = "studySessions"
	collResults  = "testResults"
	collEvents   = "events"
)

// MongoStore implements Store on top of a MongoDB database. Creation and
// update timestamps are attached here, not by callers.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) Users() UserStore       { return (*mongoUsers)(s) }
func (s *MongoStore) Subjects() SubjectStore { return (*mongoSubjects)(s) }
func (s *MongoStore) Goals() GoalStore       { return (*mongoGoals)(s) }
func (s *MongoStore) Sessions() SessionStore { return (*mongoSessions)(s) }
func (s *MongoStore) Results() ResultStore   { return (*mongoResults)(s) }
func (s *MongoStore) Events() EventStore     { return (*mongoEvents)(s) }

// objectID parses a hex id. Malformed ids map to ErrNotFound so callers get
// one uniform "no such record" behavior.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

func ownedFilter(userID, id string) (bson.M, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return bson.M{"_id": oid, "userId": userID}, nil
}

func notFoundOnZero(matched int64, err error) error {
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}
