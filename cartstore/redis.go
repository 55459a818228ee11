package cartstore

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

const (
	cartKeyPrefix    = "techfix:cart:"
	compareKeyPrefix = "techfix:compare:"
)

// RedisStore persists cart and compare lists as JSON blobs with no TTL; they
// live until explicitly cleared or the keyspace is wiped.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetCart(ctx context.Context, clientID string) ([]CartItem, error) {
	var items []CartItem
	if err := s.load(ctx, cartKeyPrefix+clientID, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *RedisStore) SetCart(ctx context.Context, clientID string, items []CartItem) error {
	return s.save(ctx, cartKeyPrefix+clientID, items)
}

func (s *RedisStore) ClearCart(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, cartKeyPrefix+clientID).Err()
}

func (s *RedisStore) GetCompare(ctx context.Context, clientID string) ([]ProductSnapshot, error) {
	var snapshots []ProductSnapshot
	if err := s.load(ctx, compareKeyPrefix+clientID, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (s *RedisStore) AddCompare(ctx context.Context, clientID string, snapshot ProductSnapshot) error {
	snapshots, err := s.GetCompare(ctx, clientID)
	if err != nil {
		return err
	}
	for _, existing := range snapshots {
		if existing.ProductID == snapshot.ProductID {
			return nil
		}
	}
	return s.save(ctx, compareKeyPrefix+clientID, append(snapshots, snapshot))
}

func (s *RedisStore) RemoveCompare(ctx context.Context, clientID string, productID uint) error {
	snapshots, err := s.GetCompare(ctx, clientID)
	if err != nil {
		return err
	}
	out := snapshots[:0]
	for _, snapshot := range snapshots {
		if snapshot.ProductID != productID {
			out = append(out, snapshot)
		}
	}
	return s.save(ctx, compareKeyPrefix+clientID, out)
}

func (s *RedisStore) ClearCompare(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, compareKeyPrefix+clientID).Err()
}

// load treats a missing key or a corrupt payload as an empty collection.
func (s *RedisStore) load(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return nil
	}
	return nil
}

func (s *RedisStore) save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, 0).Err()
}
