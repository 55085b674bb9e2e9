package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/f-kazuma/smardy1210/models"
)

// MemoryStore implements Store with mutex-guarded maps. It backs the tests
// and the STORE_DRIVER=memory mode for running without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]models.User
	subjects map[string]models.Subject
	goals    map[string]models.Goal
	sessions map[string][]models.StudySession // userID -> log
	results  map[string][]models.TestResult   // userID -> results
	events   map[string]models.Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]models.User),
		subjects: make(map[string]models.Subject),
		goals:    make(map[string]models.Goal),
		sessions: make(map[string][]models.StudySession),
		results:  make(map[string][]models.TestResult),
		events:   make(map[string]models.Event),
	}
}

func (s *MemoryStore) Users() UserStore       { return (*memUsers)(s) }
func (s *MemoryStore) Subjects() SubjectStore { return (*memSubjects)(s) }
func (s *MemoryStore) Goals() GoalStore       { return (*memGoals)(s) }
func (s *MemoryStore) Sessions() SessionStore { return (*memSessions)(s) }
func (s *MemoryStore) Results() ResultStore   { return (*memResults)(s) }
func (s *MemoryStore) Events() EventStore     { return (*memEvents)(s) }

type memUsers MemoryStore

func (s *memUsers) Create(_ context.Context, user *models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	s.users[user.ID.Hex()] = *user
	return user.ID.Hex(), nil
}

func (s *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := user
	return &u, nil
}

type memSubjects MemoryStore

func (s *memSubjects) Create(_ context.Context, subject *models.Subject) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	subject.ID = primitive.NewObjectID()
	subject.CreatedAt = now
	subject.UpdatedAt = now

	s.subjects[subject.ID.Hex()] = *subject
	return subject.ID.Hex(), nil
}

func (s *memSubjects) ListByUser(_ context.Context, userID string) ([]models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var subjects []models.Subject
	for _, subject := range s.subjects {
		if subject.UserID == userID {
			subjects = append(subjects, subject)
		}
	}
	return subjects, nil
}

func (s *memSubjects) Get(_ context.Context, userID, id string) (*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subject, ok := s.subjects[id]
	if !ok || subject.UserID != userID {
		return nil, ErrNotFound
	}
	sub := subject
	return &sub, nil
}

func (s *memSubjects) Update(_ context.Context, userID, id string, upd SubjectUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subject, ok := s.subjects[id]
	if !ok || subject.UserID != userID {
		return ErrNotFound
	}

	subject.Name = upd.Name
	subject.Description = upd.Description
	subject.TargetScore = upd.TargetScore
	subject.UpdatedAt = time.Now()
	s.subjects[id] = subject
	return nil
}

func (s *memSubjects) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	subject, ok := s.subjects[id]
	if !ok || subject.UserID != userID {
		return ErrNotFound
	}
	delete(s.subjects, id)
	return nil
}

type memGoals MemoryStore

func (s *memGoals) Create(_ context.Context, goal *models.Goal) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	goal.ID = primitive.NewObjectID()
	goal.CreatedAt = now
	goal.UpdatedAt = now

	s.goals[goal.ID.Hex()] = *goal
	return goal.ID.Hex(), nil
}

func (s *memGoals) ListByUser(_ context.Context, userID string) ([]models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var goals []models.Goal
	for _, goal := range s.goals {
		if goal.UserID == userID {
			goals = append(goals, goal)
		}
	}
	return goals, nil
}

func (s *memGoals) ListBySubject(_ context.Context, userID, subjectID string) ([]models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var goals []models.Goal
	for _, goal := range s.goals {
		if goal.UserID == userID && goal.SubjectID == subjectID {
			goals = append(goals, goal)
		}
	}
	return goals, nil
}

func (s *memGoals) Get(_ context.Context, userID, id string) (*models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	goal, ok := s.goals[id]
	if !ok || goal.UserID != userID {
		return nil, ErrNotFound
	}
	g := goal
	return &g, nil
}

func (s *memGoals) UpdateTitle(_ context.Context, userID, id, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, ok := s.goals[id]
	if !ok || goal.UserID != userID {
		return ErrNotFound
	}

	goal.Title = title
	goal.UpdatedAt = time.Now()
	s.goals[id] = goal
	return nil
}

func (s *memGoals) AddProgress(_ context.Context, userID, id string, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, ok := s.goals[id]
	if !ok || goal.UserID != userID {
		return ErrNotFound
	}

	goal.Progress += amount
	goal.UpdatedAt = time.Now()
	s.goals[id] = goal
	return nil
}

func (s *memGoals) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal, ok := s.goals[id]
	if !ok || goal.UserID != userID {
		return ErrNotFound
	}
	delete(s.goals, id)
	return nil
}

type memSessions MemoryStore

func (s *memSessions) Create(_ context.Context, session *models.StudySession) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	session.ID = primitive.NewObjectID()
	session.CreatedAt = now
	session.UpdatedAt = now

	s.sessions[session.UserID] = append(s.sessions[session.UserID], *session)
	return session.ID.Hex(), nil
}

func (s *memSessions) ListByUser(_ context.Context, userID string) ([]models.StudySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]models.StudySession, len(s.sessions[userID]))
	copy(sessions, s.sessions[userID])

	// Newest first, like the mongo driver's startTime sort.
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartTime.After(sessions[j].StartTime)
	})
	return sessions, nil
}

type memResults MemoryStore

func (s *memResults) Create(_ context.Context, result *models.TestResult) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	result.ID = primitive.NewObjectID()
	result.CreatedAt = now
	result.UpdatedAt = now

	s.results[result.UserID] = append(s.results[result.UserID], *result)
	return result.ID.Hex(), nil
}

func (s *memResults) ListByUser(_ context.Context, userID string) ([]models.TestResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.TestResult, len(s.results[userID]))
	copy(results, s.results[userID])
	return results, nil
}

type memEvents MemoryStore

func (s *memEvents) Create(_ context.Context, event *models.Event) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	event.ID = primitive.NewObjectID()
	event.CreatedAt = now
	event.UpdatedAt = now

	s.events[event.ID.Hex()] = *event
	return event.ID.Hex(), nil
}

func (s *memEvents) ListByUser(_ context.Context, userID string) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []models.Event
	for _, event := range s.events {
		if event.UserID == userID {
			events = append(events, event)
		}
	}
	return events, nil
}

func (s *memEvents) Update(_ context.Context, userID, id string, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.events[id]
	if !ok || stored.UserID != userID {
		return ErrNotFound
	}

	stored.Title = event.Title
	stored.Date = event.Date
	stored.Type = event.Type
	stored.Description = event.Description
	stored.TargetScore = event.TargetScore
	stored.UpdatedAt = time.Now()
	s.events[id] = stored
	return nil
}

func (s *memEvents) Delete(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok || event.UserID != userID {
		return ErrNotFound
	}
	delete(s.events, id)
	return nil
}
