package data

import (
	"context"
	"errors"

	"go-promoter/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Compile-time interface checks
var (
	_ domain.ClickCounter = (*RedisClickCounter)(nil)
	_ domain.ClickCounter = (*noopClickCounter)(nil)
)

func linkClicksKey(code string) string {
	return "stats:link:" + code + ":clicks"
}

func agentClicksKey(agentID string) string {
	return "stats:agent:" + agentID + ":clicks"
}

// NewClickCounter returns the redis realtime counters, or no-op counters when redis is disabled.
func NewClickCounter(data *Data) domain.ClickCounter {
	if data.rdb == nil {
		return noopClickCounter{}
	}
	return &RedisClickCounter{rdb: data.rdb}
}

// RedisClickCounter keeps best effort INCR counters next to the durable ones.
type RedisClickCounter struct {
	rdb *redis.Client
}

func (c *RedisClickCounter) IncrLink(ctx context.Context, code string) error {
	return c.rdb.Incr(ctx, linkClicksKey(code)).Err()
}

func (c *RedisClickCounter) IncrAgent(ctx context.Context, agentID string) error {
	return c.rdb.Incr(ctx, agentClicksKey(agentID)).Err()
}

func (c *RedisClickCounter) LinkClicks(ctx context.Context, code string) (int64, error) {
	n, err := c.rdb.Get(ctx, linkClicksKey(code)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

type noopClickCounter struct{}

func (noopClickCounter) IncrLink(context.Context, string) error { return nil }
func (noopClickCounter) IncrAgent(context.Context, string) error { return nil }
func (noopClickCounter) LinkClicks(context.Context, string) (int64, error) { return 0, nil }
