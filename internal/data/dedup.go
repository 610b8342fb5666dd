package data

import (
	"context"
	"time"

	"go-promoter/internal/domain"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const dedupPrefix = "dedup:"

// Compile-time interface checks
var (
	_ domain.DedupStore = (*RedisDedupStore)(nil)
	_ domain.DedupStore = (*MemoryDedupStore)(nil)
)

func dedupKey(code, fingerprint string) string {
	return dedupPrefix + code + ":" + fingerprint
}

// NewDedupStore returns the redis dedup store, or an in-process one when redis is disabled.
func NewDedupStore(data *Data, logger log.Logger) domain.DedupStore {
	if data.rdb == nil {
		log.NewHelper(logger).Warn("redis disabled, unique views are deduplicated per process")
		return NewMemoryDedupStore()
	}
	return NewRedisDedupStore(data.rdb)
}

// RedisDedupStore marks visitors with SET NX and a TTL, so concurrent workers
// and instances agree on which click was first.
type RedisDedupStore struct {
	rdb *redis.Client
}

// NewRedisDedupStore creates a redis backed dedup store.
func NewRedisDedupStore(rdb *redis.Client) *RedisDedupStore {
	return &RedisDedupStore{rdb: rdb}
}

func (s *RedisDedupStore) MarkIfAbsent(ctx context.Context, code, fingerprint string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, dedupKey(code, fingerprint), 1, ttl).Result()
}

func (s *RedisDedupStore) Forget(ctx context.Context, code, fingerprint string) error {
	return s.rdb.Del(ctx, dedupKey(code, fingerprint)).Err()
}

// MemoryDedupStore is an in-process TTL set used when redis is disabled.
type MemoryDedupStore struct {
	items *cache.Cache
}

// NewMemoryDedupStore creates an empty in-process dedup store.
func NewMemoryDedupStore() *MemoryDedupStore {
	return &MemoryDedupStore{
		items: cache.New(cache.NoExpiration, 10*time.Minute),
	}
}

// MarkIfAbsent relies on cache.Add failing while an unexpired key exists.
func (s *MemoryDedupStore) MarkIfAbsent(_ context.Context, code, fingerprint string, ttl time.Duration) (bool, error) {
	if err := s.items.Add(dedupKey(code, fingerprint), struct{}{}, ttl); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *MemoryDedupStore) Forget(_ context.Context, code, fingerprint string) error {
	s.items.Delete(dedupKey(code, fingerprint))
	return nil
}
