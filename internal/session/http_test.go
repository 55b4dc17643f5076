package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httperrors "github.com/gokatarajesh/trivia-rooms/pkg/http/errors"
)

type meFixture struct {
	redis  *fakeRedis
	tokens *TokenManager
	mux    *http.ServeMux
}

func newMeFixture(t *testing.T) meFixture {
	t.Helper()
	fake := newFakeRedis()
	store := NewStore(fake, time.Hour)
	require.NoError(t, store.Remember(context.Background(), "sess-1", "player-1", "room-1"))

	tokens := NewTokenManager(TokenConfig{Secret: []byte("secret")})
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/sessions/me", NewHTTPHandlers(store, tokens, zerolog.Nop()).Me)
	return meFixture{redis: fake, tokens: tokens, mux: mux}
}

func (f meFixture) get(sessionID, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/me", nil)
	if sessionID != "" {
		req.Header.Set(Header, sessionID)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httperrors.ErrorResponse {
	t.Helper()
	var body httperrors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestMeResolvesSession(t *testing.T) {
	f := newMeFixture(t)

	rec := f.get("sess-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body meResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "sess-1", body.SessionID)
	assert.Equal(t, "player-1", body.PlayerID)
	assert.Equal(t, "room-1", body.RoomID)
	assert.False(t, body.TokenVerified)
}

func TestMeVerifiesPlayerToken(t *testing.T) {
	f := newMeFixture(t)
	token, err := f.tokens.IssuePlayerToken("player-1", "room-1", "sess-1")
	require.NoError(t, err)

	rec := f.get("sess-1", token)
	require.Equal(t, http.StatusOK, rec.Code)
	var body meResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.TokenVerified)
}

func TestMeRejectsForeignToken(t *testing.T) {
	f := newMeFixture(t)
	other, err := f.tokens.IssuePlayerToken("player-2", "room-1", "sess-2")
	require.NoError(t, err)

	rec := f.get("sess-1", other)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, httperrors.ErrCodeInvalidToken, decodeError(t, rec).Error)

	rec = f.get("sess-1", "not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid player token", decodeError(t, rec).Message)
}

func TestMeMissingHeader(t *testing.T) {
	rec := newMeFixture(t).get("", "")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, httperrors.ErrCodeInvalidRequest, body.Error)
	assert.Equal(t, Header, body.Field)
}

func TestMeUnknownSession(t *testing.T) {
	rec := newMeFixture(t).get("sess-unknown", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, httperrors.ErrCodeNotFound, decodeError(t, rec).Error)
}

func TestMeStoreFailure(t *testing.T) {
	f := newMeFixture(t)
	f.redis.getErr = errors.New("redis down")

	rec := f.get("sess-1", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, httperrors.ErrCodeInternalError, decodeError(t, rec).Error)
}
