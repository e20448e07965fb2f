package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"restaurant-backend/agg-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const salesRetention = 7 * 24 * time.Hour

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// SalesKey must match the key restaurant-svc reads the counters from.
func SalesKey(day time.Time, kind string) string {
	return fmt.Sprintf("sales:daily:%s:%s", day.UTC().Format("2006-01-02"), kind)
}

// ApplyLineEvent moves the item's counter for the event's day. A counter
// may go below zero while a removal is ahead of its matching addition, so
// only a member that nets out to exactly zero is dropped.
func (s *Store) ApplyLineEvent(ctx context.Context, event domain.OrderLineEvent) error {
	delta := event.Delta()
	if delta == 0 {
		return nil
	}
	at := event.Timestamp
	if at.IsZero() {
		at = time.Now()
	}
	key := SalesKey(at, event.ItemKind)
	member := strconv.FormatInt(event.ItemID, 10)

	score, err := s.rdb.ZIncrBy(ctx, key, float64(delta), member).Result()
	if err != nil {
		return fmt.Errorf("increment %s: %w", key, err)
	}
	if score == 0 {
		if err := s.rdb.ZRem(ctx, key, member).Err(); err != nil {
			return fmt.Errorf("remove %s from %s: %w", member, key, err)
		}
	}
	return s.rdb.Expire(ctx, key, salesRetention).Err()
}
