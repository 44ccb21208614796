// SPDX-License-Identifier: MIT

package configstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisStore(context.Background(), RedisConfig{Addr: mr.Addr()}, MustRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return mr, store
}

func TestRedisStoreSeedsDefaults(t *testing.T) {
	mr, store := setupMiniRedis(t)

	assert.Equal(t, "25", mr.HGet(DefaultRedisKey, string(KeyCardSize)))

	v, ok := store.Get(KeyCardSize)
	require.True(t, ok)
	assert.Equal(t, 25, v)
}

func TestRedisStoreSeedKeepsExistingValues(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.HSet(DefaultRedisKey, string(KeyCardSize), "81")

	store, err := NewRedisStore(context.Background(), RedisConfig{Addr: mr.Addr()}, MustRegistry())
	require.NoError(t, err)
	defer store.Close()

	v, ok := store.Get(KeyCardSize)
	require.True(t, ok)
	assert.Equal(t, 81, v)
}

func TestRedisStorePublishAndSnapshot(t *testing.T) {
	mr, store := setupMiniRedis(t)

	store.Publish(KeyIsEndless, true)
	store.Publish(KeyObjectiveIDs, "1,2,3")

	assert.Equal(t, "true", mr.HGet(DefaultRedisKey, string(KeyIsEndless)))

	snap := store.Snapshot()
	assert.Equal(t, true, snap[KeyIsEndless])
	assert.Equal(t, "1,2,3", snap[KeyObjectiveIDs])
	assert.Len(t, snap, len(MustRegistry().Keys()))
}

func TestRedisStoreAnnouncesChanges(t *testing.T) {
	mr, store := setupMiniRedis(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	sub := client.Subscribe(context.Background(), store.ChangesChannel())
	defer sub.Close()
	_, err := sub.Receive(context.Background())
	require.NoError(t, err)

	store.Publish(KeyMode, 2)

	msg, err := sub.ReceiveMessage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "WIIMIX_MODE=2", msg.Payload)
}

func TestRedisStoreDropsInvalidPublishes(t *testing.T) {
	mr, store := setupMiniRedis(t)

	store.Publish(KeyCardSize, "big")
	assert.Equal(t, "25", mr.HGet(DefaultRedisKey, string(KeyCardSize)))

	store.Publish(Key("WIIMIX_NOPE"), 1)
	assert.Equal(t, "", mr.HGet(DefaultRedisKey, "WIIMIX_NOPE"))
	_, ok := store.Get(Key("WIIMIX_NOPE"))
	assert.False(t, ok)
}

func TestRedisStoreGetIgnoresCorruptValues(t *testing.T) {
	mr, store := setupMiniRedis(t)
	mr.HSet(DefaultRedisKey, string(KeyCardSize), "not-a-number")

	_, ok := store.Get(KeyCardSize)
	assert.False(t, ok)
}

func TestRedisStoreConnectFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisStore(context.Background(), RedisConfig{Addr: addr}, MustRegistry())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis connection failed")
}
