package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// AvailabilityCache mirrors whether a zip is currently claimable, with a soft
// copy of the owner for quick lookups. It is a cache, not the source of
// truth: every territory mutation rewrites or invalidates the entry, and on
// any conflict the territory table wins. Consumers needing strong consistency
// read the ledger instead.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

type zipEntry struct {
	Claimed bool   `json:"claimed"`
	OwnerID string `json:"owner_id,omitempty"`
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

func availabilityKey(zipCode string) string {
	return "availability:" + zipCode
}

// Get returns (claimed, ownerID, hit). A miss is not an error.
func (c *AvailabilityCache) Get(ctx context.Context, zipCode string) (bool, string, bool, error) {
	data, err := c.client.Get(ctx, availabilityKey(zipCode)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, "", false, nil
		}
		return false, "", false, fmt.Errorf("cache get: %w", err)
	}

	var entry zipEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return false, "", false, fmt.Errorf("decode cache entry: %w", err)
	}
	return entry.Claimed, entry.OwnerID, true, nil
}

func (c *AvailabilityCache) SetClaimed(ctx context.Context, zipCode, ownerID string) error {
	return c.set(ctx, zipCode, zipEntry{Claimed: true, OwnerID: ownerID})
}

func (c *AvailabilityCache) SetAvailable(ctx context.Context, zipCode string) error {
	return c.set(ctx, zipCode, zipEntry{Claimed: false})
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, zipCode string) error {
	if err := c.client.Del(ctx, availabilityKey(zipCode)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *AvailabilityCache) set(ctx context.Context, zipCode string, entry zipEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := c.client.Set(ctx, availabilityKey(zipCode), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}
