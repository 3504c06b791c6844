package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	json "github.com/goccy/go-json"

	"github.com/BruksfildServices01/virtual-queue/internal/dto"
	"github.com/BruksfildServices01/virtual-queue/internal/logging"
)

const keyPrefix = "vq:public-project:"

type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

type RedisPublicProjects struct {
	client RedisClient
	ttl    time.Duration
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func NewRedisPublicProjects(client RedisClient, ttl time.Duration) *RedisPublicProjects {
	return &RedisPublicProjects{client: client, ttl: ttl}
}

func key(username string) string {
	return keyPrefix + username
}

func (c *RedisPublicProjects) Get(ctx context.Context, username string) (*dto.PublicProjectDTO, bool) {
	raw, err := c.client.Get(ctx, key(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("username", username).Msg("public project cache read failed")
		return nil, false
	}

	var p dto.PublicProjectDTO
	if err := json.Unmarshal(raw, &p); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("username", username).Msg("public project cache entry corrupt")
		c.Invalidate(ctx, username)
		return nil, false
	}
	return &p, true
}

func (c *RedisPublicProjects) Set(ctx context.Context, username string, p dto.PublicProjectDTO) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(username), raw, c.ttl).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("username", username).Msg("public project cache write failed")
	}
}

func (c *RedisPublicProjects) Invalidate(ctx context.Context, usernames ...string) {
	if len(usernames) == 0 {
		return
	}
	keys := make([]string, len(usernames))
	for i, u := range usernames {
		keys[i] = key(u)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Strs("usernames", usernames).Msg("public project cache invalidation failed")
	}
}

func (c *RedisPublicProjects) Close() error {
	return c.client.Close()
}

var _ PublicProjects = (*RedisPublicProjects)(nil)
