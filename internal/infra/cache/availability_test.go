package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func newTestCache(t *testing.T) (*AvailabilityCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewAvailabilityCache(client, 5*time.Minute), mr
}

func TestAvailabilityCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	claimed, ownerID, hit, err := c.Get(context.Background(), "90210")
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, claimed)
	assert.Empty(t, ownerID)
}

func TestAvailabilityCacheSetClaimed(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.SetClaimed(ctx, "90210", "user-1"))

	claimed, ownerID, hit, err := c.Get(ctx, "90210")
	assert.NoError(t, err)
	assert.True(t, hit)
	assert.True(t, claimed)
	assert.Equal(t, "user-1", ownerID)
}

func TestAvailabilityCacheSetAvailable(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.SetClaimed(ctx, "90210", "user-1"))
	assert.NoError(t, c.SetAvailable(ctx, "90210"))

	claimed, ownerID, hit, err := c.Get(ctx, "90210")
	assert.NoError(t, err)
	assert.True(t, hit)
	assert.False(t, claimed)
	assert.Empty(t, ownerID)
}

func TestAvailabilityCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.SetClaimed(ctx, "90210", "user-1"))
	assert.NoError(t, c.Invalidate(ctx, "90210"))

	_, _, hit, err := c.Get(ctx, "90210")
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestAvailabilityCacheEntryExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.SetClaimed(ctx, "90210", "user-1"))

	mr.FastForward(6 * time.Minute)

	_, _, hit, err := c.Get(ctx, "90210")
	assert.NoError(t, err)
	assert.False(t, hit)
}
