package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// PlayerClaims identify a player inside one room.
type PlayerClaims struct {
	PlayerID  string `json:"player_id"`
	RoomID    string `json:"room_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// TokenConfig holds player token signing configuration.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration // default: 24 hours
	Issuer string
}

// TokenManager issues and validates player tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewTokenManager(cfg TokenConfig) *TokenManager {
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "trivia-rooms"
	}
	return &TokenManager{secret: cfg.Secret, ttl: cfg.TTL, issuer: cfg.Issuer}
}

// IssuePlayerToken signs a token binding the player to its room and session.
func (m *TokenManager) IssuePlayerToken(playerID, roomID, sessionID string) (string, error) {
	now := time.Now()
	claims := PlayerClaims{
		PlayerID:  playerID,
		RoomID:    roomID,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   playerID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Validate parses a player token.
func (m *TokenManager) Validate(tokenString string) (*PlayerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PlayerClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*PlayerClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
