package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gridworks/roadnet/common/models"
	"github.com/gridworks/roadnet/common/redis"
)

const sessionKeyPrefix = "session:"

// SessionRepository stores session token -> identity mappings in Redis with
// a TTL. It backs the identity resolver; an absent or expired token is an
// anonymous caller, not an error.
type SessionRepository struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		redis: client,
		ttl:   ttl,
	}
}

// Put stores the identity under the given token for the configured TTL.
func (r *SessionRepository) Put(ctx context.Context, token string, identity *models.Identity) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	return r.redis.SetWithExpiry(ctx, sessionKeyPrefix+token, string(payload), r.ttl)
}

// Get resolves a token to an identity. Returns (nil, nil) when the token is
// unknown or expired.
func (r *SessionRepository) Get(ctx context.Context, token string) (*models.Identity, error) {
	payload, err := r.redis.Get(ctx, sessionKeyPrefix+token)
	if errors.Is(err, redis.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	identity := &models.Identity{}
	if err := json.Unmarshal([]byte(payload), identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// Delete removes a session token.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	return r.redis.Delete(ctx, sessionKeyPrefix+token)
}
