package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// schemaVersion nằm trong key để đổi format không đụng data cũ
const schemaVersion = "v1"

const (
	paidKey    = "driftsip:" + schemaVersion + ":paidOrders"
	deletedKey = "driftsip:" + schemaVersion + ":recentlyDeleted"

	deletedTTL = 24 * time.Hour
)

// OverlayCache lưu các set ID qua Redis để sống sót reload,
// không phải system of record — server vẫn là nguồn chính.
type OverlayCache struct {
	rdb *redis.Client
}

func New(addr string) *OverlayCache {
	return &OverlayCache{rdb: redis.NewClient(&redis.Options{Addr: addr})}
}

func NewWithClient(rdb *redis.Client) *OverlayCache {
	return &OverlayCache{rdb: rdb}
}

func (c *OverlayCache) PaidIDs(ctx context.Context) ([]string, error) {
	return c.rdb.SMembers(ctx, paidKey).Result()
}

func (c *OverlayCache) AddPaid(ctx context.Context, orderID string) error {
	return c.rdb.SAdd(ctx, paidKey, orderID).Err()
}

func (c *OverlayCache) RemovePaid(ctx context.Context, orderID string) error {
	return c.rdb.SRem(ctx, paidKey, orderID).Err()
}

func (c *OverlayCache) RecentlyDeletedIDs(ctx context.Context) ([]string, error) {
	return c.rdb.SMembers(ctx, deletedKey).Result()
}

func (c *OverlayCache) AddRecentlyDeleted(ctx context.Context, orderID string) error {
	pipe := c.rdb.Pipeline()
	pipe.SAdd(ctx, deletedKey, orderID)
	pipe.Expire(ctx, deletedKey, deletedTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *OverlayCache) RemoveRecentlyDeleted(ctx context.Context, orderID string) error {
	return c.rdb.SRem(ctx, deletedKey, orderID).Err()
}

func (c *OverlayCache) Clear(ctx context.Context) error {
	return c.rdb.Del(ctx, paidKey, deletedKey).Err()
}
