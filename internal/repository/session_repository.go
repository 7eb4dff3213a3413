package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/d60-Lab/festive-table/internal/policy"
)

// SessionRepository remembers which author tokens belong to a browser
// session. The value is a JSON-encoded token set under one key per session,
// expiring with the session TTL.
type SessionRepository interface {
	// Tokens returns the remembered set; an unknown session is an empty set.
	Tokens(ctx context.Context, sessionID string) (policy.SessionState, error)

	// Remember overwrites the remembered set.
	Remember(ctx context.Context, sessionID string, state policy.SessionState) error

	// Release drops the remembered set entirely.
	Release(ctx context.Context, sessionID string) error
}

type sessionRepository struct {
	cache *redis.Client
	ttl   time.Duration
}

func NewSessionRepository(cache *redis.Client, ttl time.Duration) SessionRepository {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &sessionRepository{cache: cache, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:tokens:%s", sessionID)
}

func (r *sessionRepository) Tokens(ctx context.Context, sessionID string) (policy.SessionState, error) {
	data, err := r.cache.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return policy.SessionState{}, nil
		}
		return nil, err
	}
	var state policy.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt value is unrecoverable; treat it as a fresh session.
		return policy.SessionState{}, nil
	}
	return state, nil
}

func (r *sessionRepository) Remember(ctx context.Context, sessionID string, state policy.SessionState) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return r.cache.Set(ctx, sessionKey(sessionID), payload, r.ttl).Err()
}

func (r *sessionRepository) Release(ctx context.Context, sessionID string) error {
	return r.cache.Del(ctx, sessionKey(sessionID)).Err()
}
