package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Room store backends.
const (
	RoomStorePostgres = "postgres"
	RoomStoreMemory   = "memory"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-rooms"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	AI       AI
	Remote   Remote
	Rooms    Rooms
	Session  Session
	Tracing  Tracing
}

// Postgres captures connection info for the room document store.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:"localhost"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER"`
	Password string `env:"PG_PASSWORD"`
	Database string `env:"PG_DATABASE" envDefault:"trivia"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" envDefault:"10"`
}

// DSN renders the keyword/value connection string understood by pgx.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode, p.MaxConns)
}

// Redis holds session store configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// AI configures the chat-completions endpoint used for question generation.
// Generation falls back to the sample bank when BaseURL or APIKey is empty.
type AI struct {
	BaseURL     string        `env:"AI_BASE_URL"`
	APIKey      string        `env:"AI_API_KEY"`
	Model       string        `env:"AI_MODEL" envDefault:"gpt-4o-mini"`
	Temperature float64       `env:"AI_TEMPERATURE" envDefault:"0.7"`
	HTTPTimeout time.Duration `env:"AI_HTTP_TIMEOUT" envDefault:"30s"`
}

// Remote configures the remote room-creation backend.
type Remote struct {
	BaseURL     string        `env:"REMOTE_BACKEND_URL"`
	HTTPTimeout time.Duration `env:"REMOTE_BACKEND_TIMEOUT" envDefault:"10s"`
}

// Rooms selects where locally created rooms are persisted.
type Rooms struct {
	Store string `env:"ROOM_STORE" envDefault:"postgres"`
}

// Session governs player session recording and token signing.
type Session struct {
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

// Tracing configures OpenTelemetry export.
type Tracing struct {
	Enabled      bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure     bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
	SampleRatio  float64 `env:"OTEL_SAMPLER_RATIO" envDefault:"0.1"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	return load(env.Options{})
}

// LoadPostgres parses only the Postgres section, for tools that need nothing else.
func LoadPostgres() (Postgres, error) {
	var pg Postgres
	if err := env.Parse(&pg); err != nil {
		return Postgres{}, fmt.Errorf("parse postgres config: %w", err)
	}
	if pg.User == "" || pg.Password == "" {
		return Postgres{}, fmt.Errorf("PG_USER and PG_PASSWORD must be configured")
	}
	return pg, nil
}

func load(opts env.Options) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *App) validate() error {
	switch c.Rooms.Store {
	case RoomStorePostgres:
		if c.Postgres.User == "" || c.Postgres.Password == "" {
			return fmt.Errorf("PG_USER and PG_PASSWORD must be configured when ROOM_STORE=%s", RoomStorePostgres)
		}
	case RoomStoreMemory:
	default:
		return fmt.Errorf("unknown ROOM_STORE %q", c.Rooms.Store)
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET must be configured")
	}
	return nil
}
