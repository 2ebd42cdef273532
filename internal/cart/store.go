package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/maisonvela/vela-backend/pkg/redis"
)

// snapshotLine is the persisted form of a cart line. Only identity and
// quantity are stored; pricing resolves from the live catalog on load.
type snapshotLine struct {
	ProductID uuid.UUID `json:"product_id"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
	Quantity  int       `json:"quantity"`
}

type redisStore interface {
	CartKey(userID string) string
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

// Store persists cart snapshots per user in Redis.
type Store struct {
	redis redisStore
	ttl   time.Duration
}

// NewStore builds a cart store. TTL bounds how long abandoned carts survive.
func NewStore(client redisStore, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		return nil, errors.New("cart ttl must be positive")
	}
	return &Store{redis: client, ttl: ttl}, nil
}

// Save writes the snapshot for a user's cart. An empty snapshot deletes the
// key instead of storing an empty list.
func (s *Store) Save(ctx context.Context, userID uuid.UUID, lines []snapshotLine) error {
	key := s.redis.CartKey(userID.String())
	if len(lines) == 0 {
		return s.redis.Del(ctx, key)
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, key, data, s.ttl)
}

// Load reads the snapshot for a user's cart. A missing key is an empty cart.
func (s *Store) Load(ctx context.Context, userID uuid.UUID) ([]snapshotLine, error) {
	raw, err := s.redis.Get(ctx, s.redis.CartKey(userID.String()))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var lines []snapshotLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Delete removes a user's cart snapshot.
func (s *Store) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.redis.Del(ctx, s.redis.CartKey(userID.String()))
}
