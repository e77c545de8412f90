package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultSessionTTL = 24 * time.Hour

// RedisStore persists session state in Redis with a rolling TTL, so sessions
// survive process restarts and idle conversations eventually expire.
type RedisStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if client == nil {
		panic("conversation: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisStore{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("hvac.internal.conversation.sessions"),
	}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*State, error) {
	ctx, span := s.tracer.Start(ctx, "conversation.load_session")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: failed to load session: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("conversation: failed to decode session: %w", err)
	}
	return &state, nil
}

func (s *RedisStore) Put(ctx context.Context, state *State) error {
	if state == nil || state.SessionID == "" {
		return errors.New("conversation: state with session id is required")
	}

	ctx, span := s.tracer.Start(ctx, "conversation.save_session")
	defer span.End()

	data, err := json.Marshal(state)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(state.SessionID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to persist session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "conversation.delete_session")
	defer span.End()

	if err := s.redis.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("conversation: failed to delete session: %w", err)
	}
	return nil
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}
