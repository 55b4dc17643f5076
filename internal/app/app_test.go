package app

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-rooms/internal/config"
	"github.com/gokatarajesh/trivia-rooms/internal/tracing"
)

func TestNewReleasesResourcesWhenPostgresConfigFails(t *testing.T) {
	origTracing, origRedis := initTracing, newRedisClient
	t.Cleanup(func() { initTracing, newRedisClient = origTracing, origRedis })

	traceShutdowns := 0
	initTracing = func(context.Context, *config.App, zerolog.Logger) (tracing.Shutdown, error) {
		return func(context.Context) error {
			traceShutdowns++
			return nil
		}, nil
	}
	var client *redis.Client
	newRedisClient = func(cfg config.Redis) *redis.Client {
		client = origRedis(cfg)
		return client
	}

	cfg := &config.App{
		Name: "trivia-rooms",
		Env:  "production",
		Postgres: config.Postgres{
			Host:     "localhost",
			Port:     0,
			User:     "trivia",
			Password: "secret",
			Database: "trivia",
			SSLMode:  "disable",
			MaxConns: 4,
		},
		Redis: config.Redis{Addr: "localhost:6379"},
		Rooms: config.Rooms{Store: config.RoomStorePostgres},
	}

	application, err := New(context.Background(), cfg)
	require.ErrorContains(t, err, "connect postgres")
	assert.Nil(t, application)

	assert.Equal(t, 1, traceShutdowns)
	require.NotNil(t, client)
	assert.ErrorIs(t, client.Ping(context.Background()).Err(), redis.ErrClosed)
}
