// Package session keeps each browser session's durable key/value data in Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Well-known keys inside one session.
const (
	KeyUserToken  = "userToken"
	KeyTheme      = "theme"
	KeyState      = "state"
	KeyBanner     = "banner"
	KeyOAuthState = "oauthState"
)

const keyPrefix = "vf:session:"

var ErrNotFound = errors.New("session key not found")

// Store is a string key/value store scoped to one browser session.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	// Set stores value; ttl <= 0 uses the store's default session TTL.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisStore hands out per-session views over one Redis database.
type RedisStore struct {
	client     *redis.Client
	sessionTTL time.Duration
}

func NewRedisStore(client *redis.Client, sessionTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, sessionTTL: sessionTTL}
}

// Scope returns the Store for one session id.
func (s *RedisStore) Scope(sessionID string) Store {
	return &scopedStore{parent: s, prefix: keyPrefix + sessionID + ":"}
}

type scopedStore struct {
	parent *RedisStore
	prefix string
}

func (s *scopedStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.parent.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session key %q: %w", key, err)
	}
	return val, nil
}

func (s *scopedStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.parent.sessionTTL
	}
	if err := s.parent.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session key %q: %w", key, err)
	}
	return nil
}

func (s *scopedStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}
	if err := s.parent.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to delete session keys: %w", err)
	}
	return nil
}

// GetJSON decodes the value under key into v. It reports false when the key is absent.
func GetJSON(ctx context.Context, store Store, key string, v interface{}) (bool, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("failed to unmarshal session key %q: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, store Store, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal session key %q: %w", key, err)
	}
	return store.Set(ctx, key, string(data), ttl)
}
