// Package store holds the record-store contract the application is written
// against, with a MongoDB implementation and an in-memory implementation.
// Every operation is scoped by the owning user's id; records belonging to
// other users behave as if they do not exist.
package store

import (
	"context"
	"errors"

	"github.com/f-kazuma/smardy1210/models"
)

// ErrNotFound is returned when a record id does not exist for the given user.
var ErrNotFound = errors.New("record not found")

type UserStore interface {
	Create(ctx context.Context, user *models.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// SubjectUpdate carries the editable fields of a subject. Nil description and
// target score clear the stored values, matching the form semantics.
type SubjectUpdate struct {
	Name        string
	Description *string
	TargetScore *int
}

type SubjectStore interface {
	Create(ctx context.Context, subject *models.Subject) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.Subject, error)
	Get(ctx context.Context, userID, id string) (*models.Subject, error)
	Update(ctx context.Context, userID, id string, upd SubjectUpdate) error
	Delete(ctx context.Context, userID, id string) error
}

type GoalStore interface {
	Create(ctx context.Context, goal *models.Goal) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.Goal, error)
	ListBySubject(ctx context.Context, userID, subjectID string) ([]models.Goal, error)
	Get(ctx context.Context, userID, id string) (*models.Goal, error)
	// UpdateTitle is the only post-creation edit; pacing inputs and derived
	// fields are immutable once written.
	UpdateTitle(ctx context.Context, userID, id, title string) error
	// AddProgress increments the cumulative progress by amount.
	AddProgress(ctx context.Context, userID, id string, amount float64) error
	Delete(ctx context.Context, userID, id string) error
}

// SessionStore has no update or delete: study sessions are an append-only log.
type SessionStore interface {
	Create(ctx context.Context, session *models.StudySession) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.StudySession, error)
}

type ResultStore interface {
	Create(ctx context.Context, result *models.TestResult) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.TestResult, error)
}

type EventStore interface {
	Create(ctx context.Context, event *models.Event) (string, error)
	ListByUser(ctx context.Context, userID string) ([]models.Event, error)
	// Update replaces the editable fields (title, date, type, description,
	// target score) of an existing event.
	Update(ctx context.Context, userID, id string, event *models.Event) error
	Delete(ctx context.Context, userID, id string) error
}

// Store bundles the per-entity stores behind one handle.
type Store interface {
	Users() UserStore
	Subjects() SubjectStore
	Goals() GoalStore
	Sessions() SessionStore
	Results() ResultStore
	Events() EventStore
}
