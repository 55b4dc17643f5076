package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultSessionTTL = 24 * time.Hour
	keyPrefix         = "session:"
)

// ErrSessionNotFound is returned by Lookup for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Identity is what a browser session knows about its player.
type Identity struct {
	PlayerID string    `json:"playerId"`
	RoomID   string    `json:"roomId"`
	SavedAt  time.Time `json:"savedAt"`
}

type redisCmdable interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Store keeps session identities in Redis with a sliding TTL.
type Store struct {
	client redisCmdable
	ttl    time.Duration
	now    func() time.Time
}

func NewStore(client redisCmdable, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &Store{client: client, ttl: ttl, now: time.Now}
}

func (s *Store) key(sessionID string) string {
	return keyPrefix + sessionID
}

// Remember records the player and room a session belongs to.
func (s *Store) Remember(ctx context.Context, sessionID, playerID, roomID string) error {
	if sessionID == "" {
		return errors.New("session id is required")
	}
	data, err := json.Marshal(Identity{PlayerID: playerID, RoomID: roomID, SavedAt: s.now().UTC()})
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}

// Lookup returns the identity last remembered for a session.
func (s *Store) Lookup(ctx context.Context, sessionID string) (*Identity, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", sessionID, err)
	}
	return &id, nil
}
