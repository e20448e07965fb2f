package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"restaurant-backend/restaurant-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) DishKey(id int64) string {
	return "menu:dish:" + strconv.FormatInt(id, 10)
}

func (c *RedisCache) SetMealKey(id int64) string {
	return "menu:set:" + strconv.FormatInt(id, 10)
}

func (c *RedisCache) qrKey(orderID int64) string {
	return "order:qr:" + strconv.FormatInt(orderID, 10)
}

// Get decodes the cached JSON value into dest. The bool is false on a miss.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, payload, c.TTL).Err()
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.Client.Del(ctx, keys...).Err()
}

func (c *RedisCache) GetQRCode(ctx context.Context, orderID int64) ([]byte, error) {
	qr, err := c.Client.Get(ctx, c.qrKey(orderID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return qr, err
}

func (c *RedisCache) SaveQRCode(ctx context.Context, orderID int64, qr []byte) error {
	return c.Client.Set(ctx, c.qrKey(orderID), qr, c.TTL).Err()
}

func (c *RedisCache) DeleteQRCode(ctx context.Context, orderID int64) error {
	return c.Client.Del(ctx, c.qrKey(orderID)).Err()
}

// SalesKey is shared with agg-svc, which fills these sorted sets.
func SalesKey(day time.Time, kind string) string {
	return fmt.Sprintf("sales:daily:%s:%s", day.UTC().Format("2006-01-02"), kind)
}

func (c *RedisCache) TopSales(ctx context.Context, day time.Time, kind string, limit int64) ([]domain.SalesEntry, error) {
	result, err := c.Client.ZRevRangeWithScores(ctx, SalesKey(day, kind), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]domain.SalesEntry, 0, len(result))
	for _, member := range result {
		name, _ := member.Member.(string)
		id, err := strconv.ParseInt(name, 10, 64)
		if err != nil || member.Score <= 0 {
			continue
		}
		entries = append(entries, domain.SalesEntry{ItemKind: kind, ItemID: id, Quantity: member.Score})
	}
	return entries, nil
}
