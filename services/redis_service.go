package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/bako110/Sonaby/config"
)

// InterfaceTokenStore persists issued refresh tokens. A refresh token
// is accepted only while its entry exists; logout and rotation revoke
// the entry, which invalidates the token before its JWT expiry.
type InterfaceTokenStore interface {
	SaveRefreshToken(ctx context.Context, userID uint, token string, ttl time.Duration) error
	RefreshTokenMatches(ctx context.Context, userID uint, token string) (bool, error)
	RevokeRefreshToken(ctx context.Context, userID uint) error
}

// RedisTokenStore is the production token store
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore builds a token store over an existing client
func NewRedisTokenStore(client *redis.Client) InterfaceTokenStore {
	return &RedisTokenStore{client: client}
}

// NewRedisClient connects to the Redis server described by the config
func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

func refreshTokenKey(userID uint) string {
	return fmt.Sprintf("sonaby:refresh_token:%d", userID)
}

// SaveRefreshToken stores the latest refresh token for a user. One
// token per user: issuing a new one invalidates the previous.
func (s *RedisTokenStore) SaveRefreshToken(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshTokenKey(userID), token, ttl).Err()
}

// RefreshTokenMatches reports whether token is the live token for the user
func (s *RedisTokenStore) RefreshTokenMatches(ctx context.Context, userID uint, token string) (bool, error) {
	stored, err := s.client.Get(ctx, refreshTokenKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return stored == token, nil
}

// RevokeRefreshToken deletes the user's live token
func (s *RedisTokenStore) RevokeRefreshToken(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, refreshTokenKey(userID)).Err()
}

// MemoryTokenStore backs the auth service tests
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[uint]string
}

// NewMemoryTokenStore returns an empty in-memory token store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[uint]string)}
}

func (s *MemoryTokenStore) SaveRefreshToken(_ context.Context, userID uint, token string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = token
	return nil
}

func (s *MemoryTokenStore) RefreshTokenMatches(_ context.Context, userID uint, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.tokens[userID]
	return ok && stored == token, nil
}

func (s *MemoryTokenStore) RevokeRefreshToken(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	return nil
}
