package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrNoSession = errors.New("no active session")

// Store keeps server-side login sessions in Redis, keyed by an opaque id
// carried in the session cookie. Used by the Google sign-in flow; bearer
// tokens do not touch it.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStore connects to Redis and verifies the connection.
func NewStore(addr, password string, db int, ttl time.Duration) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Store{rdb: rdb, ttl: ttl}, nil
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Create opens a session for the user and returns its id.
func (s *Store) Create(ctx context.Context, userID int64) (string, error) {
	id := uuid.New().String()
	if err := s.rdb.Set(ctx, key(id), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// Get resolves a session id to the user id it was created for, sliding the
// expiry forward on each hit.
func (s *Store) Get(ctx context.Context, id string) (int64, error) {
	val, err := s.rdb.Get(ctx, key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read session: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session value: %w", err)
	}

	// Sliding expiration; a lost EXPIRE only shortens the session.
	_ = s.rdb.Expire(ctx, key(id), s.ttl).Err()

	return userID, nil
}

// Destroy removes a session.
func (s *Store) Destroy(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, key(id)).Err()
}

func key(id string) string {
	return "session:" + id
}
