package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/bannersmith/pkg/banner"
	"github.com/matzehuels/bannersmith/pkg/errors"
)

// RedisStore persists compositions as JSON values in Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at addr (host:port) and verifies the
// connection with a ping.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connecting to redis at %s", addr)
	}
	return &RedisStore{client: client}, nil
}

// Load fetches and decodes the banner's document.
func (s *RedisStore) Load(ctx context.Context, bannerID string) (comp *banner.Composition, err error) {
	defer func() { observeLoad(ctx, bannerID, err) }()

	data, err := s.client.Get(ctx, redisKey(bannerID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "reading banner %s", bannerID)
	}

	var doc banner.Composition
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decoding banner %s", bannerID)
	}
	return &doc, nil
}

// Save encodes the document and overwrites the banner's key. Documents do
// not expire.
func (s *RedisStore) Save(ctx context.Context, bannerID string, comp *banner.Composition) (err error) {
	defer func() { observeSave(ctx, bannerID, err) }()

	data, err := json.Marshal(comp)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "encoding banner %s", bannerID)
	}
	if err := s.client.Set(ctx, redisKey(bannerID), data, 0).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "writing banner %s", bannerID)
	}
	return nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func redisKey(bannerID string) string {
	return fmt.Sprintf("banner:%s", bannerID)
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
