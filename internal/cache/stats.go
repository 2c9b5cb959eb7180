// Package cache keeps hot derived statistics in Redis so restaurant listing
// pages do not hit Postgres for every read. Entries are invalidated after each
// stats recomputation; a nil cache (no Redis configured) degrades to no-ops.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const statsTTL = 1 * time.Hour

type RestaurantStats struct {
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}

type StatsCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewStatsCache(redisAddr string) (*StatsCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		Password:     "",
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &StatsCache{
		client: rdb,
		ctx:    context.Background(),
	}, nil
}

func statsKey(restaurantID uint) string {
	return fmt.Sprintf("stats:restaurant:%d", restaurantID)
}

// Set stores a restaurant's derived statistics with a TTL.
func (c *StatsCache) Set(restaurantID uint, stats RestaurantStats) error {
	if c == nil || c.client == nil {
		return nil
	}
	key := statsKey(restaurantID)

	fields := map[string]any{
		"avg_rating":   stats.AvgRating,
		"review_count": stats.ReviewCount,
	}
	if err := c.client.HSet(c.ctx, key, fields).Err(); err != nil {
		return err
	}
	return c.client.Expire(c.ctx, key, statsTTL).Err()
}

// Get returns the cached statistics and whether the entry was present.
func (c *StatsCache) Get(restaurantID uint) (*RestaurantStats, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}

	fields, err := c.client.HGetAll(c.ctx, statsKey(restaurantID)).Result()
	if err != nil {
		return nil, false, err
	}
	if len(fields) == 0 {
		return nil, false, nil
	}

	avg, err := strconv.ParseFloat(fields["avg_rating"], 64)
	if err != nil {
		return nil, false, err
	}
	count, err := strconv.ParseInt(fields["review_count"], 10, 64)
	if err != nil {
		return nil, false, err
	}

	return &RestaurantStats{AvgRating: avg, ReviewCount: count}, true, nil
}

// Invalidate drops a restaurant's cached entry after recomputation.
func (c *StatsCache) Invalidate(restaurantID uint) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(c.ctx, statsKey(restaurantID)).Err()
}
