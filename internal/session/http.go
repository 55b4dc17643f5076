package session

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-rooms/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-rooms/pkg/http/errors"
)

// Header carries the caller's browser session id.
const Header = "X-Session-ID"

// IdentityLookup resolves a session id to the player it created.
type IdentityLookup interface {
	Lookup(ctx context.Context, sessionID string) (*Identity, error)
}

// TokenValidator parses player tokens issued at room creation.
type TokenValidator interface {
	Validate(tokenString string) (*PlayerClaims, error)
}

// HTTPHandlers lets a returning browser recover its player identity.
type HTTPHandlers struct {
	identities IdentityLookup
	tokens     TokenValidator
	logger     zerolog.Logger
}

func NewHTTPHandlers(identities IdentityLookup, tokens TokenValidator, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		identities: identities,
		tokens:     tokens,
		logger:     logging.Component(logger, "session_http"),
	}
}

type meResponse struct {
	SessionID     string    `json:"sessionId"`
	PlayerID      string    `json:"playerId"`
	RoomID        string    `json:"roomId"`
	SavedAt       time.Time `json:"savedAt"`
	TokenVerified bool      `json:"tokenVerified"`
}

// Me handles GET /v1/sessions/me. A bearer player token, when sent, must
// belong to the same session and player.
func (h *HTTPHandlers) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	sessionID := strings.TrimSpace(r.Header.Get(Header))
	if sessionID == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidRequest, "session header is required", Header)
		return
	}

	identity, err := h.identities.Lookup(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeNotFound, "Session not found")
			return
		}
		logger := logging.ComponentFromContext(r.Context(), h.logger, "session_http")
		logger.Error().Err(err).Msg("session lookup failed")
		httperrors.RespondInternalError(w, "Failed to load session")
		return
	}

	resp := meResponse{
		SessionID: sessionID,
		PlayerID:  identity.PlayerID,
		RoomID:    identity.RoomID,
		SavedAt:   identity.SavedAt,
	}

	if raw, ok := bearerToken(r); ok {
		if h.tokens == nil {
			httperrors.RespondError(w, http.StatusUnauthorized, httperrors.ErrCodeInvalidToken, "Player tokens are not accepted")
			return
		}
		claims, err := h.tokens.Validate(raw)
		switch {
		case errors.Is(err, ErrExpiredToken):
			httperrors.RespondError(w, http.StatusUnauthorized, httperrors.ErrCodeInvalidToken, "Player token expired")
			return
		case err != nil:
			httperrors.RespondError(w, http.StatusUnauthorized, httperrors.ErrCodeInvalidToken, "Invalid player token")
			return
		case claims.SessionID != sessionID || claims.PlayerID != identity.PlayerID:
			httperrors.RespondError(w, http.StatusUnauthorized, httperrors.ErrCodeInvalidToken, "Player token does not match session")
			return
		}
		resp.TokenVerified = true
	}

	httperrors.RespondJSON(w, http.StatusOK, resp)
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}
