package connections

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xrpscan/explorer/config"
	"github.com/xrpscan/explorer/logger"
)

var ErrCacheMiss = errors.New("cache miss")

// RedisClient backs the summary cache. Nil when REDIS_URL is empty.
var RedisClient *redis.Client

func NewRedisClient() error {
	url := config.EnvRedisURL()
	if url == "" {
		logger.Log.Info().Msg("REDIS_URL not set; summary cache disabled")
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("ping redis: %w", err)
	}
	RedisClient = client
	logger.Log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("Connected to Redis")
	return nil
}

// Cache stores JSON encoded values under a key prefix. A Cache without a
// client misses every lookup and drops every write.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// LedgerKey is the cache key of a ledger summary.
func LedgerKey(index uint32) string {
	return fmt.Sprintf("ledger:%d", index)
}

// TransactionKey is the cache key of a transaction summary.
func TransactionKey(hash string) string {
	return "tx:" + strings.ToUpper(hash)
}

func NewCache(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

func (c *Cache) key(k string) string {
	return c.prefix + ":" + k
}

func (c *Cache) Get(ctx context.Context, key string, target interface{}) error {
	if c == nil || c.client == nil {
		return ErrCacheMiss
	}
	val, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(val, target)
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil || c.client == nil {
		return nil
	}
	val, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), val, c.ttl).Err()
}
