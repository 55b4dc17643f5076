package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data   map[string]string
	ttls   map[string]time.Duration
	setErr error
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func TestStoreRememberAndLookup(t *testing.T) {
	fake := newFakeRedis()
	store := NewStore(fake, time.Hour)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	require.NoError(t, store.Remember(context.Background(), "sess-1", "player-1", "room-1"))
	assert.Equal(t, time.Hour, fake.ttls["session:sess-1"])

	id, err := store.Lookup(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "player-1", id.PlayerID)
	assert.Equal(t, "room-1", id.RoomID)
	assert.True(t, fixed.Equal(id.SavedAt))
}

func TestStoreLookupMissing(t *testing.T) {
	store := NewStore(newFakeRedis(), 0)
	_, err := store.Lookup(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreRememberErrors(t *testing.T) {
	fake := newFakeRedis()
	store := NewStore(fake, 0)
	assert.Equal(t, defaultSessionTTL, store.ttl)

	assert.Error(t, store.Remember(context.Background(), "", "p", "r"))

	fake.setErr = errors.New("redis down")
	err := store.Remember(context.Background(), "sess-2", "p", "r")
	assert.ErrorContains(t, err, "redis down")
}
