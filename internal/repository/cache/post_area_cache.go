// Package cache decorates repositories with a Redis read-through cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"job-posting-backend/internal/domain"
	"job-posting-backend/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache: miss")

// Store is the byte level cache used by the decorators.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return val, err
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// cachedArea is PostArea with its parent, which PostArea hides from JSON.
type cachedArea struct {
	domain.PostArea
	Parent *domain.PostArea `json:"parent,omitempty"`
}

// PostAreaRepository caches name lookups. Misses are not cached so that new
// areas become visible at once; cache failures fall back to the wrapped
// repository.
type PostAreaRepository struct {
	next  domain.PostAreaRepository
	store Store
	ttl   time.Duration
}

func NewPostAreaRepository(next domain.PostAreaRepository, store Store, ttl time.Duration) *PostAreaRepository {
	return &PostAreaRepository{next: next, store: store, ttl: ttl}
}

func areaKey(name string) string {
	return "post_area:name:" + name
}

func (r *PostAreaRepository) FindByName(ctx context.Context, name string) (*domain.PostArea, error) {
	key := areaKey(name)
	raw, err := r.store.Get(ctx, key)
	switch {
	case err == nil:
		var cached cachedArea
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			area := cached.PostArea
			area.Parent = cached.Parent
			return &area, nil
		}
	case !errors.Is(err, ErrMiss):
		logger.Log.Warn("Post area cache read failed", "key", key, "error", err)
	}

	area, err := r.next.FindByName(ctx, name)
	if err != nil || area == nil {
		return area, err
	}

	if raw, err := json.Marshal(cachedArea{PostArea: *area, Parent: area.Parent}); err == nil {
		if err := r.store.Set(ctx, key, raw, r.ttl); err != nil {
			logger.Log.Warn("Post area cache write failed", "key", key, "error", err)
		}
	}
	return area, nil
}

func (r *PostAreaRepository) FetchRoots(ctx context.Context) ([]domain.PostArea, error) {
	return r.next.FetchRoots(ctx)
}

func (r *PostAreaRepository) FetchChildren(ctx context.Context, parentID uuid.UUID) ([]domain.PostArea, error) {
	return r.next.FetchChildren(ctx, parentID)
}
