package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/fanzone/config"
	"github.com/Domenick1991/fanzone/internal/domain"
	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

// ListCache keeps the unfiltered listing of one catalog variant.
type ListCache[T any] struct {
	client *redis.Client
	kind   domain.ItemKind
	ttl    time.Duration
}

func NewListCache[T any](client *redis.Client, kind domain.ItemKind, ttl time.Duration) *ListCache[T] {
	return &ListCache[T]{client: client, kind: kind, ttl: ttl}
}

// Get returns nil, nil on a miss.
func (c *ListCache[T]) Get(ctx context.Context) ([]T, error) {
	data, err := c.client.Get(ctx, listKey(c.kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode cached %s list: %w", c.kind, err)
	}
	return items, nil
}

func (c *ListCache[T]) Set(ctx context.Context, items []T) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listKey(c.kind), payload, c.ttl).Err()
}

func (c *ListCache[T]) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, listKey(c.kind)).Err()
}

// RedisSessionStore keeps chat sessions as JSON with a sliding TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *domain.Session) error {
	session.UpdatedAt = time.Now()
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(session.ID), payload, s.ttl).Err()
}

func listKey(kind domain.ItemKind) string {
	return "cache:catalog:" + string(kind)
}

func sessionKey(id string) string {
	return "chat:session:" + id
}
