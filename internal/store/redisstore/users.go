package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"luxetickets/internal/status"
	"luxetickets/models"
)

type UserStore struct {
	redis *redis.Client
}

func NewUserStore(client *redis.Client) *UserStore {
	return &UserStore{redis: client}
}

// Create claims the email with HSETNX so two registrations of the same
// address cannot both succeed.
func (s *UserStore) Create(ctx context.Context, cred models.Credential) error {
	email := models.NormalizeEmail(cred.User.Email)
	cred.User.Email = email

	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	created, err := s.redis.HSetNX(ctx, usersKey, email, string(data)).Result()
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	if !created {
		return status.ErrEmailTaken
	}

	if err := s.redis.HSet(ctx, usersIndexKey, cred.User.ID, email).Err(); err != nil {
		return fmt.Errorf("index user: %w", err)
	}
	return nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (models.Credential, error) {
	return s.load(ctx, s.redis, models.NormalizeEmail(email), status.ErrAccountNotFound)
}

func (s *UserStore) FindByID(ctx context.Context, id string) (models.Credential, error) {
	email, err := s.redis.HGet(ctx, usersIndexKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return models.Credential{}, status.ErrUserNotFound
	}
	if err != nil {
		return models.Credential{}, fmt.Errorf("find user: %w", err)
	}
	return s.load(ctx, s.redis, email, status.ErrUserNotFound)
}

func (s *UserStore) load(ctx context.Context, c redis.Cmdable, email string, notFound error) (models.Credential, error) {
	raw, err := c.HGet(ctx, usersKey, email).Result()
	if errors.Is(err, redis.Nil) {
		return models.Credential{}, notFound
	}
	if err != nil {
		return models.Credential{}, fmt.Errorf("load user: %w", err)
	}

	var cred models.Credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil {
		return models.Credential{}, fmt.Errorf("decode credential: %w", err)
	}
	return cred, nil
}

// UpdateUser rewrites the profile inside the credential record. The
// stored email and password hash are kept.
func (s *UserStore) UpdateUser(ctx context.Context, user models.User) error {
	email, err := s.redis.HGet(ctx, usersIndexKey, user.ID).Result()
	if errors.Is(err, redis.Nil) {
		return status.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	version := userVersionKey(user.ID)
	return watchWithRetry(ctx, s.redis, func(tx *redis.Tx) error {
		cred, err := s.load(ctx, tx, email, status.ErrUserNotFound)
		if err != nil {
			return err
		}
		user.Email = cred.User.Email
		cred.User = user

		data, err := json.Marshal(cred)
		if err != nil {
			return fmt.Errorf("encode credential: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, usersKey, email, string(data))
			pipe.Incr(ctx, version)
			return nil
		})
		return err
	}, version)
}

type SessionStore struct {
	redis *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{redis: client}
}

func (s *SessionStore) Create(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	return s.redis.Set(ctx, sessionPrefix+sessionID, userID, ttl).Err()
}

func (s *SessionStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.redis.Get(ctx, sessionPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return "", status.ErrInvalidSession
	}
	if err != nil {
		return "", fmt.Errorf("lookup session: %w", err)
	}
	return userID, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.redis.Del(ctx, sessionPrefix+sessionID).Err()
}
