package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	appnotif "github.com/stokku/backend/internal/application/notification"
	"github.com/stokku/backend/internal/domain/notification"
	"go.uber.org/zap"
)

// RedisSummaryCache caches per-tenant alert summaries in Redis. Entries are
// plain JSON maps keyed per tenant; a lost or evicted entry only costs one
// extra COUNT query.
type RedisSummaryCache struct {
	client     *redis.Client
	ownsClient bool
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisSummaryCacheOption is a functional option for configuring the cache
type RedisSummaryCacheOption func(*RedisSummaryCache)

// WithSummaryTTL sets the entry lifetime
func WithSummaryTTL(ttl time.Duration) RedisSummaryCacheOption {
	return func(c *RedisSummaryCache) {
		c.ttl = ttl
	}
}

// WithSummaryLogger sets the logger for the cache
func WithSummaryLogger(logger *zap.Logger) RedisSummaryCacheOption {
	return func(c *RedisSummaryCache) {
		c.logger = logger
	}
}

// NewRedisSummaryCache creates a summary cache connecting to the given address
func NewRedisSummaryCache(addr, password string, db int, opts ...RedisSummaryCacheOption) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisSummaryCache{
		client:     client,
		ownsClient: true,
		ttl:        5 * time.Minute,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisSummaryCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisSummaryCacheWithClient(client *redis.Client, opts ...RedisSummaryCacheOption) *RedisSummaryCache {
	cache := &RedisSummaryCache{
		client:     client,
		ownsClient: false,
		ttl:        5 * time.Minute,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// summaryKey generates the cache key for a tenant's alert summary
func (c *RedisSummaryCache) summaryKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("alert_summary:%s", tenantID)
}

// Get retrieves a tenant's alert summary from cache
func (c *RedisSummaryCache) Get(ctx context.Context, tenantID uuid.UUID) (map[notification.Type]int64, bool, error) {
	key := c.summaryKey(tenantID)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get summary from cache: %w", err)
	}

	var summary map[notification.Type]int64
	if err := json.Unmarshal(data, &summary); err != nil {
		c.logger.Warn("Dropping corrupted summary cache entry",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil, false, nil
	}

	return summary, true, nil
}

// Set stores a tenant's alert summary in cache
func (c *RedisSummaryCache) Set(ctx context.Context, tenantID uuid.UUID, summary map[notification.Type]int64) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := c.client.Set(ctx, c.summaryKey(tenantID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set summary in cache: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary for a tenant
func (c *RedisSummaryCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Del(ctx, c.summaryKey(tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to delete summary from cache: %w", err)
	}
	return nil
}

// Close releases the Redis client if this cache owns it
func (c *RedisSummaryCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisSummaryCache implements SummaryCache
var _ appnotif.SummaryCache = (*RedisSummaryCache)(nil)

// MemorySummaryCache is a process-local SummaryCache for deployments without
// Redis and for tests. Entries never expire; Invalidate is the only eviction.
type MemorySummaryCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]map[notification.Type]int64
}

// NewMemorySummaryCache creates an empty in-memory summary cache
func NewMemorySummaryCache() *MemorySummaryCache {
	return &MemorySummaryCache{
		entries: make(map[uuid.UUID]map[notification.Type]int64),
	}
}

// Get retrieves a tenant's alert summary
func (c *MemorySummaryCache) Get(_ context.Context, tenantID uuid.UUID) (map[notification.Type]int64, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[tenantID]
	if !ok {
		return nil, false, nil
	}

	out := make(map[notification.Type]int64, len(entry))
	for k, v := range entry {
		out[k] = v
	}
	return out, true, nil
}

// Set stores a tenant's alert summary
func (c *MemorySummaryCache) Set(_ context.Context, tenantID uuid.UUID, summary map[notification.Type]int64) error {
	entry := make(map[notification.Type]int64, len(summary))
	for k, v := range summary {
		entry[k] = v
	}

	c.mu.Lock()
	c.entries[tenantID] = entry
	c.mu.Unlock()
	return nil
}

// Invalidate drops the cached summary for a tenant
func (c *MemorySummaryCache) Invalidate(_ context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, tenantID)
	c.mu.Unlock()
	return nil
}

// Ensure MemorySummaryCache implements SummaryCache
var _ appnotif.SummaryCache = (*MemorySummaryCache)(nil)
