package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jwebster45206/dialog-engine/pkg/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStateStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	store, err := NewRedisStateStore("redis://"+mr.Addr(), testLogger())
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis store: %v", err)
	}
	return store, mr
}

func TestRedisStateStore_SaveAndLoad(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	_, found, err := store.LoadNPCState(ctx, "vic")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SaveNPCState(ctx, "vic", actor.Follower))
	assert.Equal(t, "follower", getKey(t, mr, "npc:vic:state"))

	s, found, err := store.LoadNPCState(ctx, "vic")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, actor.Follower, s)
}

func getKey(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}

func TestRedisStateStore_InvalidValue(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()

	require.NoError(t, mr.Set("npc:vic:state", "enemy"))
	_, _, err := store.LoadNPCState(context.Background(), "vic")
	assert.Error(t, err)
}

func TestRedisStateStore_Restore(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer store.Close()
	ctx := context.Background()

	npc := &actor.NPC{ID: "vic", Name: "Vic", State: actor.Waiting}
	require.NoError(t, Restore(ctx, store, npc))
	assert.Equal(t, actor.Waiting, npc.State, "unsaved NPC keeps roster state")

	require.NoError(t, store.SaveNPCState(ctx, "vic", actor.Stranger))
	require.NoError(t, Restore(ctx, store, npc))
	assert.Equal(t, actor.Stranger, npc.State)
}

func TestRedisStateStore_WaitForConnection(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, store.WaitForConnection(ctx, 3, 10*time.Millisecond))

	mr.Close()
	err := store.WaitForConnection(ctx, 2, 10*time.Millisecond)
	assert.Error(t, err)
}

func TestNewRedisStateStore_BadURL(t *testing.T) {
	_, err := NewRedisStateStore("not a url", testLogger())
	assert.Error(t, err)
}
