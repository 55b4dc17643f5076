package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(env.Options{Environment: map[string]string{
		"PG_USER":        "trivia",
		"PG_PASSWORD":    "secret",
		"SESSION_SECRET": "s3cret",
	}})
	require.NoError(t, err)

	assert.Equal(t, "trivia-rooms", cfg.Name)
	assert.Equal(t, RoomStorePostgres, cfg.Rooms.Store)
	assert.Equal(t, 30*time.Second, cfg.AI.HTTPTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Empty(t, cfg.AI.BaseURL)
	assert.Contains(t, cfg.Postgres.DSN(), "user=trivia")
}

func TestLoadMemoryStoreSkipsPostgres(t *testing.T) {
	cfg, err := load(env.Options{Environment: map[string]string{
		"ROOM_STORE":     RoomStoreMemory,
		"SESSION_SECRET": "s3cret",
	}})
	require.NoError(t, err)
	assert.Equal(t, RoomStoreMemory, cfg.Rooms.Store)
}

func TestLoadRejectsMissingSecrets(t *testing.T) {
	_, err := load(env.Options{Environment: map[string]string{
		"ROOM_STORE": RoomStoreMemory,
	}})
	assert.ErrorContains(t, err, "SESSION_SECRET")

	_, err = load(env.Options{Environment: map[string]string{
		"SESSION_SECRET": "s3cret",
	}})
	assert.ErrorContains(t, err, "PG_USER")

	_, err = load(env.Options{Environment: map[string]string{
		"ROOM_STORE":     "firestore",
		"SESSION_SECRET": "s3cret",
	}})
	assert.ErrorContains(t, err, "unknown ROOM_STORE")
}
