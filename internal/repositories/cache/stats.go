package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStatsCollector counts quotes per method and outcome in redis hashes.
// The total hash is cumulative; per-minute buckets expire after ttl.
type RedisStatsCollector struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

type StatsOption func(*RedisStatsCollector)

func WithStatsPrefix(prefix string) StatsOption {
	return func(s *RedisStatsCollector) { s.prefix = strings.Trim(prefix, ":") }
}

func WithStatsTTL(d time.Duration) StatsOption {
	return func(s *RedisStatsCollector) { s.ttl = d }
}

func NewRedisStatsCollector(client *redis.Client, opts ...StatsOption) *RedisStatsCollector {
	s := &RedisStatsCollector{
		client: client,
		prefix: "shipfee:stats",
		ttl:    24 * time.Hour,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordQuote is best-effort: failures are logged and dropped.
func (s *RedisStatsCollector) RecordQuote(ctx context.Context, method, outcome string) {
	if s == nil || s.client == nil {
		return
	}
	if err := s.record(ctx, method, outcome); err != nil {
		log.Printf("Failed to record quote stats: %v", err)
	}
}

func (s *RedisStatsCollector) record(ctx context.Context, method, outcome string) error {
	field := statsField(method, outcome)
	bucketKey := s.bucketKey(s.now())

	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, s.totalKey(), field, 1)
	pipe.HIncrBy(ctx, bucketKey, field, 1)
	if s.ttl > 0 {
		pipe.Expire(ctx, bucketKey, s.ttl)
	}

	_, err := pipe.Exec(ctx)
	return err
}

// Totals returns the cumulative counters keyed by "method:outcome".
func (s *RedisStatsCollector) Totals(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, s.totalKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read quote stats: %w", err)
	}
	totals := make(map[string]int64, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		totals[k] = n
	}
	return totals, nil
}

func (s *RedisStatsCollector) totalKey() string {
	return s.prefix + ":total"
}

func (s *RedisStatsCollector) bucketKey(at time.Time) string {
	return fmt.Sprintf("%s:minute:%s", s.prefix, at.UTC().Format("200601021504"))
}

func statsField(method, outcome string) string {
	return strings.TrimSpace(method) + ":" + strings.TrimSpace(outcome)
}
