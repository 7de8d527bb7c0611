// internal/cache/classification.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/gestio-app/backend-go/internal/config"
	"github.com/gestio-app/backend-go/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	quadrantKeyPrefix  = "analytics:quadrants"
	scanBatchSize      = 100
	defaultQuadrantTTL = time.Minute
)

// QuadrantCache stores classification results per tenant and period. The
// classifier is cheap but the ledger scan behind it is not, so results are
// kept for a short TTL.
type QuadrantCache interface {
	Get(ctx context.Context, filter domain.PeriodFilter) ([]domain.ItemPerformance, bool, error)
	Set(ctx context.Context, filter domain.PeriodFilter, items []domain.ItemPerformance) error
	InvalidateAll(ctx context.Context) error
}

type redisQuadrantCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopQuadrantCache struct{}

func NewQuadrantCache(cfg config.CacheConfig) (QuadrantCache, error) {
	if !cfg.Enabled {
		return &noopQuadrantCache{}, nil
	}

	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.QuadrantTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultQuadrantTTL
	}

	return &redisQuadrantCache{client: client, ttl: ttl}, nil
}

func NewNoopQuadrantCache() QuadrantCache {
	return &noopQuadrantCache{}
}

func (c *redisQuadrantCache) Get(ctx context.Context, filter domain.PeriodFilter) ([]domain.ItemPerformance, bool, error) {
	key := buildQuadrantKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var items []domain.ItemPerformance
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, false, fmt.Errorf("decode quadrant cache: %w", err)
	}

	return items, true, nil
}

func (c *redisQuadrantCache) Set(ctx context.Context, filter domain.PeriodFilter, items []domain.ItemPerformance) error {
	key := buildQuadrantKey(filter)
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode quadrant cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisQuadrantCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, quadrantKeyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis scan failed: %w", err)
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis delete failed: %w", err)
			}
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return nil
}

func (n *noopQuadrantCache) Get(ctx context.Context, filter domain.PeriodFilter) ([]domain.ItemPerformance, bool, error) {
	return nil, false, nil
}

func (n *noopQuadrantCache) Set(ctx context.Context, filter domain.PeriodFilter, items []domain.ItemPerformance) error {
	return nil
}

func (n *noopQuadrantCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}

func buildQuadrantKey(filter domain.PeriodFilter) string {
	raw := fmt.Sprintf("tenant=%d|from=%s|to=%s",
		filter.TenantID,
		filter.From.Format("2006-01-02"),
		filter.To.Format("2006-01-02"))
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", quadrantKeyPrefix, hex.EncodeToString(hash[:]))
}
