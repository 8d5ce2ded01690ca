package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"scanpay_back_end/internal/models"
)

const (
	statsTTL      = 48 * time.Hour
	recentOrders  = 10
	recentListKey = "stats:recent"
)

// Stats keeps the admin dashboard counters in Redis, one bucket per day.
type Stats struct {
	rdb *redis.Client
	now func() time.Time
}

func NewStats(rdb *redis.Client) *Stats {
	return &Stats{rdb: rdb, now: time.Now}
}

func (s *Stats) dayKey(field string) string {
	return fmt.Sprintf("stats:%s:%s", s.now().Format("2006-01-02"), field)
}

// RecordSale adds a completed order to today's totals and the recent list.
func (s *Stats) RecordSale(ctx context.Context, order models.OrderSummary) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	salesKey, ordersKey := s.dayKey("sales"), s.dayKey("orders")

	pipe := s.rdb.TxPipeline()
	pipe.IncrBy(ctx, salesKey, int64(order.Total))
	pipe.Expire(ctx, salesKey, statsTTL)
	pipe.Incr(ctx, ordersKey)
	pipe.Expire(ctx, ordersKey, statsTTL)
	pipe.LPush(ctx, recentListKey, data)
	pipe.LTrim(ctx, recentListKey, 0, recentOrders-1)
	_, err = pipe.Exec(ctx)
	return err
}

// Today reads the counters. PendingCash is owned by the caller.
func (s *Stats) Today(ctx context.Context) (models.DashboardStats, error) {
	var out models.DashboardStats
	var err error
	if out.TodaySales, err = s.counter(ctx, s.dayKey("sales")); err != nil {
		return out, err
	}
	if out.TotalOrders, err = s.counter(ctx, s.dayKey("orders")); err != nil {
		return out, err
	}
	raw, err := s.rdb.LRange(ctx, recentListKey, 0, recentOrders-1).Result()
	if err != nil {
		return out, err
	}
	out.RecentOrders = make([]models.OrderSummary, 0, len(raw))
	for _, r := range raw {
		var o models.OrderSummary
		if json.Unmarshal([]byte(r), &o) == nil {
			out.RecentOrders = append(out.RecentOrders, o)
		}
	}
	return out, nil
}

func (s *Stats) counter(ctx context.Context, key string) (int64, error) {
	v, err := s.rdb.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// IncrementRateLimit bumps the counter for key and returns the new value. The window
// starts with the first hit.
func IncrementRateLimit(ctx context.Context, rdb *redis.Client, key string, window time.Duration) (int64, error) {
	n, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// RateLimitTTL is the time left before key resets.
func RateLimitTTL(ctx context.Context, rdb *redis.Client, key string) time.Duration {
	ttl, err := rdb.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		return 0
	}
	return ttl
}
