package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"shophub/models"
)

// CartStore holds session carts. Carts are ephemeral: they disappear on
// explicit clear, successful checkout, or when the session TTL lapses.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (models.Cart, error)
	Save(ctx context.Context, sessionID string, cart models.Cart) error
	Clear(ctx context.Context, sessionID string) error
}

const cartKeyPrefix = "cart:"

type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func (s *RedisCartStore) Get(ctx context.Context, sessionID string) (models.Cart, error) {
	raw, err := s.client.Get(ctx, cartKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return models.Cart{}, nil
	}
	if err != nil {
		return nil, err
	}

	cart := models.Cart{}
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// corrupt blob, treat as empty
		return models.Cart{}, nil
	}
	return cart, nil
}

func (s *RedisCartStore) Save(ctx context.Context, sessionID string, cart models.Cart) error {
	if len(cart) == 0 {
		return s.Clear(ctx, sessionID)
	}

	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKeyPrefix+sessionID, raw, s.ttl).Err()
}

func (s *RedisCartStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKeyPrefix+sessionID).Err()
}

// MemoryCartStore backs tests and redis-less development. Not for multi
// instance deployments.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]models.Cart
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: map[string]models.Cart{}}
}

func (s *MemoryCartStore) Get(ctx context.Context, sessionID string) (models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart := models.Cart{}
	for id, entry := range s.carts[sessionID] {
		cart[id] = entry
	}
	return cart, nil
}

func (s *MemoryCartStore) Save(ctx context.Context, sessionID string, cart models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(cart) == 0 {
		delete(s.carts, sessionID)
		return nil
	}

	copied := models.Cart{}
	for id, entry := range cart {
		copied[id] = entry
	}
	s.carts[sessionID] = copied
	return nil
}

func (s *MemoryCartStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}
