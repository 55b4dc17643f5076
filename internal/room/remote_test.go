package room

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-rooms/internal/question"
)

func TestRemoteClientHealthy(t *testing.T) {
	status := http.StatusOK
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(status)
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL+"/", time.Second, zerolog.Nop())
	assert.True(t, client.Healthy(context.Background()))

	status = http.StatusServiceUnavailable
	assert.False(t, client.Healthy(context.Background()))
}

func TestRemoteClientUnconfigured(t *testing.T) {
	client := NewRemoteClient("", 0, zerolog.Nop())
	assert.False(t, client.Healthy(context.Background()))

	_, err := client.CreateRoom(context.Background(), RemoteCreateRequest{})
	assert.Error(t, err)
}

func TestRemoteClientCreateRoom(t *testing.T) {
	var got RemoteCreateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/rooms", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"roomId":"room-9","playerId":"player-9","aiGenerated":true}`))
	}))
	defer srv.Close()

	client := NewRemoteClient(srv.URL, time.Second, zerolog.Nop())
	res, err := client.CreateRoom(context.Background(), RemoteCreateRequest{
		Nickname:      "Ada",
		Topic:         "Space",
		Difficulty:    question.DifficultyHard,
		QuestionCount: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, CreateResult{RoomID: "room-9", PlayerID: "player-9", AIGenerated: true}, res)
	assert.Equal(t, "Ada", got.Nickname)
	assert.Equal(t, question.DifficultyHard, got.Difficulty)
	assert.Nil(t, got.Questions)
}

func TestRemoteClientCreateRoomErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"missing ids", http.StatusOK, `{"aiGenerated":true}`},
		{"bad json", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewRemoteClient(srv.URL, time.Second, zerolog.Nop())
			_, err := client.CreateRoom(context.Background(), RemoteCreateRequest{Nickname: "Ada"})
			assert.Error(t, err)
		})
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()
	_, err := NewRemoteClient(srv.URL, time.Second, zerolog.Nop()).CreateRoom(context.Background(), RemoteCreateRequest{})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
}
