// Package memstore keeps every repository in process memory. It backs the
// memory storage driver and the service tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"luxetickets/internal/status"
	"luxetickets/models"
)

type UserStore struct {
	mu      sync.Mutex
	byEmail map[string]models.Credential
	emails  map[string]string
}

func NewUserStore() *UserStore {
	return &UserStore{
		byEmail: make(map[string]models.Credential),
		emails:  make(map[string]string),
	}
}

func (s *UserStore) Create(_ context.Context, cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := models.NormalizeEmail(cred.User.Email)
	if _, exists := s.byEmail[email]; exists {
		return status.ErrEmailTaken
	}
	s.byEmail[email] = cred
	s.emails[cred.User.ID] = email
	return nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, ok := s.byEmail[models.NormalizeEmail(email)]
	if !ok {
		return models.Credential{}, status.ErrAccountNotFound
	}
	return cred, nil
}

func (s *UserStore) FindByID(_ context.Context, id string) (models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.emails[id]
	if !ok {
		return models.Credential{}, status.ErrUserNotFound
	}
	return s.byEmail[email], nil
}

func (s *UserStore) UpdateUser(_ context.Context, user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email, ok := s.emails[user.ID]
	if !ok {
		return status.ErrUserNotFound
	}
	cred := s.byEmail[email]
	user.Email = cred.User.Email
	cred.User = user
	s.byEmail[email] = cred
	return nil
}

type session struct {
	userID    string
	expiresAt time.Time
}

type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	now      func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]session), now: time.Now}
}

func (s *SessionStore) Create(_ context.Context, sessionID, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = session{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *SessionStore) Lookup(_ context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return "", status.ErrInvalidSession
	}
	if !s.now().Before(sess.expiresAt) {
		delete(s.sessions, sessionID)
		return "", status.ErrInvalidSession
	}
	return sess.userID, nil
}

func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
