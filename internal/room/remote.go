package room

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gokatarajesh/trivia-rooms/internal/question"
)

// RemoteBackend is the room service being migrated to.
type RemoteBackend interface {
	Healthy(ctx context.Context) bool
	CreateRoom(ctx context.Context, req RemoteCreateRequest) (CreateResult, error)
}

// RemoteCreateRequest is the wire body for POST /api/rooms.
type RemoteCreateRequest struct {
	Nickname      string              `json:"nickname"`
	Topic         string              `json:"topic"`
	Difficulty    question.Difficulty `json:"difficulty"`
	QuestionCount int                 `json:"questionCount"`
	Questions     []question.Question `json:"questions,omitempty"`
}

// StatusError carries a non-2xx response from the remote backend.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote backend http %d: %s", e.StatusCode, e.Body)
}

var errIncompleteRemoteResult = errors.New("remote backend returned no room or player id")

// RemoteClient talks to the remote room backend over HTTP.
type RemoteClient struct {
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
}

func NewRemoteClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *RemoteClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteClient{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger.With().Str("component", "remote_backend").Logger(),
	}
}

// Healthy probes GET /health. An unset base URL is never healthy.
func (c *RemoteClient) Healthy(ctx context.Context) bool {
	if c.baseURL == "" {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Msg("health probe failed")
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// CreateRoom posts the request and returns the backend's result as-is.
func (c *RemoteClient) CreateRoom(ctx context.Context, in RemoteCreateRequest) (CreateResult, error) {
	if c.baseURL == "" {
		return CreateResult{}, errors.New("remote backend url not configured")
	}
	body, err := json.Marshal(in)
	if err != nil {
		return CreateResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/rooms", bytes.NewReader(body))
	if err != nil {
		return CreateResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return CreateResult{}, fmt.Errorf("remote create room: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return CreateResult{}, fmt.Errorf("read remote response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return CreateResult{}, &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out CreateResult
	if err := json.Unmarshal(raw, &out); err != nil {
		return CreateResult{}, fmt.Errorf("decode remote response: %w", err)
	}
	if out.RoomID == "" || out.PlayerID == "" {
		return CreateResult{}, errIncompleteRemoteResult
	}
	return out, nil
}
