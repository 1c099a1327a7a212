package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/dialog-engine/pkg/actor"
	"github.com/redis/go-redis/v9"
)

// RedisStateStore implements StateStore on Redis. States are stored as
// their text form under "npc:<id>:state" with no expiry.
type RedisStateStore struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStateStore implements StateStore interface
var _ StateStore = (*RedisStateStore)(nil)

// NewRedisStateStore creates a store from a redis:// URL. It does not
// connect; call Ping or WaitForConnection.
func NewRedisStateStore(redisURL string, logger *slog.Logger) (*RedisStateStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &RedisStateStore{
		client: redis.NewClient(opt),
		logger: logger,
	}, nil
}

func npcStateKey(npcID string) string {
	return "npc:" + npcID + ":state"
}

// Health and lifecycle methods

func (r *RedisStateStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStateStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Debug("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStateStore) WaitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

func (r *RedisStateStore) SaveNPCState(ctx context.Context, npcID string, s actor.RelationshipState) error {
	if err := r.client.Set(ctx, npcStateKey(npcID), s.String(), 0).Err(); err != nil {
		r.logger.Error("Failed to save NPC state", "npc", npcID, "error", err)
		return fmt.Errorf("failed to save npc state: %w", err)
	}
	return nil
}

func (r *RedisStateStore) LoadNPCState(ctx context.Context, npcID string) (actor.RelationshipState, bool, error) {
	val, err := r.client.Get(ctx, npcStateKey(npcID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return actor.Stranger, false, nil
		}
		r.logger.Error("Failed to load NPC state", "npc", npcID, "error", err)
		return actor.Stranger, false, fmt.Errorf("failed to load npc state: %w", err)
	}

	s, err := actor.ParseRelationshipState(val)
	if err != nil {
		r.logger.Warn("Stored NPC state is invalid", "npc", npcID, "value", val)
		return actor.Stranger, false, fmt.Errorf("failed to parse npc state: %w", err)
	}
	return s, true, nil
}
