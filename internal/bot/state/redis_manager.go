package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

const (
	stateTTL     = 24 * time.Hour
	redisTimeout = 3 * time.Second
)

// RedisManager manages user states using Redis
type RedisManager struct {
	client redis.UniversalClient
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(addr, password string, db int) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ReadTimeout:  redisTimeout,
		WriteTimeout: redisTimeout,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisManagerWithClient(client), nil
}

// NewRedisManagerWithClient wraps an existing client
func NewRedisManagerWithClient(client redis.UniversalClient) *RedisManager {
	return &RedisManager{client: client}
}

func stateKey(userID int64) string {
	return fmt.Sprintf("user:%d:state", userID)
}

func tempKey(userID int64) string {
	return fmt.Sprintf("user:%d:temp", userID)
}

func reminderKey(userID int64, kind, key string) string {
	return fmt.Sprintf("user:%d:reminder:%s:%s", userID, kind, key)
}

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(userID int64, state string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	// Inactive dialogs expire on their own
	if err := m.client.Set(ctx, stateKey(userID), state, stateTTL).Err(); err != nil {
		logger.Warn("Failed to save user state", "user_id", userID, "error", err)
	}
}

// GetUserState gets the state for a user
func (m *RedisManager) GetUserState(userID int64) string {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	result, err := m.client.Get(ctx, stateKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return None
	}
	if err != nil {
		logger.Warn("Failed to load user state", "user_id", userID, "error", err)
		return None
	}
	return result
}

// ClearUserState clears the state for a user
func (m *RedisManager) ClearUserState(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	m.client.Del(ctx, stateKey(userID))
}

// SetTempData sets temporary data for a user. The hash shares the state TTL.
func (m *RedisManager) SetTempData(userID int64, key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	pipe := m.client.TxPipeline()
	pipe.HSet(ctx, tempKey(userID), key, value)
	pipe.Expire(ctx, tempKey(userID), stateTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("Failed to save temp data", "user_id", userID, "key", key, "error", err)
	}
}

// GetTempData gets temporary data for a user
func (m *RedisManager) GetTempData(userID int64, key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	value, err := m.client.HGet(ctx, tempKey(userID), key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// ClearTempData clears all temporary data for a user
func (m *RedisManager) ClearTempData(userID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	m.client.Del(ctx, tempKey(userID))
}

// MarkSent sets the marker only if absent, so concurrent bot instances
// deliver a reminder once.
func (m *RedisManager) MarkSent(ctx context.Context, userID int64, key string, ttl time.Duration) (bool, error) {
	ok, err := m.client.SetNX(ctx, reminderKey(userID, "sent", key), 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark reminder sent: %w", err)
	}
	return ok, nil
}

func (m *RedisManager) Dismiss(ctx context.Context, userID int64, key string, ttl time.Duration) error {
	if err := m.client.Set(ctx, reminderKey(userID, "dismissed", key), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to dismiss reminder: %w", err)
	}
	return nil
}

func (m *RedisManager) IsDismissed(ctx context.Context, userID int64, key string) (bool, error) {
	n, err := m.client.Exists(ctx, reminderKey(userID, "dismissed", key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check dismissal: %w", err)
	}
	return n > 0, nil
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
