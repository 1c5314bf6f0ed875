package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shipfee/internal/models"

	"github.com/redis/go-redis/v9"
)

const quoteKeyPrefix = "shipfee:quote:"

// QuoteCache stores computed FeeQuotes as JSON. Keys carry the policy table
// version, so entries from an older table are never read after a reload and
// simply expire.
type QuoteCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewQuoteCache(client *redis.Client, ttl time.Duration) *QuoteCache {
	return &QuoteCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *QuoteCache) GetQuote(ctx context.Context, key string) (*models.FeeQuote, bool, error) {
	data, err := c.client.Get(ctx, quoteKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached quote: %w", err)
	}

	var quote models.FeeQuote
	if err := json.Unmarshal(data, &quote); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached quote: %w", err)
	}
	return &quote, true, nil
}

func (c *QuoteCache) SetQuote(ctx context.Context, key string, quote models.FeeQuote) error {
	data, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}
	return c.client.Set(ctx, quoteKey(key), data, c.ttl).Err()
}

func (c *QuoteCache) HealthCheck(ctx context.Context) error {
	return HealthCheck(ctx, c.client)
}

// Close closes the Redis client connection
func (c *QuoteCache) Close() error {
	return c.client.Close()
}

func quoteKey(key string) string {
	return quoteKeyPrefix + key
}
