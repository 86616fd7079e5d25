package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/RashmiFernando/study-sphere/config"
)

// Client wraps go-redis for the token blacklist and login rate limiting.
type Client struct {
	rdb    goredis.UniversalClient
	logger *zap.Logger
}

// NewClient connects and pings Redis.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// NewFromUniversal wraps an existing go-redis client.
func NewFromUniversal(rdb goredis.UniversalClient, logger *zap.Logger) *Client {
	return &Client{rdb: rdb, logger: logger}
}

// ── token blacklist ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken stores a jti until the token would have expired anyway.
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted reports whether the jti was revoked.
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── rate limiting ──

// CheckRateLimit records one hit for key and reports whether the number of
// hits inside the sliding window is still within limit.
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	windowStart := now.Add(-window).UnixNano()
	member := strconv.FormatInt(now.UnixNano(), 10)

	var card *goredis.IntCmd
	_, err := c.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart, 10))
		pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixNano()), Member: member})
		card = pipe.ZCard(ctx, key)
		pipe.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return false, err
	}

	return card.Val() <= int64(limit), nil
}

// Close closes the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
