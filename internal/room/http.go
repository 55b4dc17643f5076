package room

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-rooms/internal/question"
	"github.com/gokatarajesh/trivia-rooms/internal/session"
	httperrors "github.com/gokatarajesh/trivia-rooms/pkg/http/errors"
)

// SessionHeader carries the caller's browser session id.
const SessionHeader = session.Header

// TokenIssuer signs player tokens handed back on creation.
type TokenIssuer interface {
	IssuePlayerToken(playerID, roomID, sessionID string) (string, error)
}

// HTTPHandlers provides REST endpoints for rooms.
type HTTPHandlers struct {
	creator *Creator
	tokens  TokenIssuer
	logger  zerolog.Logger
}

func NewHTTPHandlers(creator *Creator, tokens TokenIssuer, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		creator: creator,
		tokens:  tokens,
		logger:  logger.With().Str("component", "room_http").Logger(),
	}
}

type createRoomRequest struct {
	Nickname       string              `json:"nickname"`
	Topic          string              `json:"topic"`
	Difficulty     string              `json:"difficulty"`
	QuestionCount  int                 `json:"questionCount"`
	Questions      []question.Question `json:"questions,omitempty"`
	AIGenerated    bool                `json:"aiGenerated,omitempty"`
	FallbackReason string              `json:"fallbackReason,omitempty"`
}

type createRoomResponse struct {
	CreateResult
	SessionID   string `json:"sessionId"`
	PlayerToken string `json:"playerToken,omitempty"`
}

// CreateRoom handles POST /v1/rooms
func (h *HTTPHandlers) CreateRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var body createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	req := CreateRequest{
		Nickname:       body.Nickname,
		Topic:          body.Topic,
		Difficulty:     question.Difficulty(body.Difficulty),
		QuestionCount:  body.QuestionCount,
		Questions:      body.Questions,
		AIGenerated:    body.AIGenerated,
		FallbackReason: body.FallbackReason,
		SessionID:      sessionID,
	}
	if d, err := question.ParseDifficulty(body.Difficulty); err == nil {
		req.Difficulty = d
	}

	var (
		res CreateResult
		err error
	)
	if body.Questions != nil {
		res, err = h.creator.CreateRoomWithQuestions(r.Context(), req)
	} else {
		res, err = h.creator.CreateRoom(r.Context(), req)
	}
	if err != nil {
		var vErr *question.ValidationError
		if errors.As(err, &vErr) {
			httperrors.RespondErrorWithDetails(w, http.StatusBadRequest, httperrors.ErrCodeValidationFailed, vErr.Message, vErr.Details)
			return
		}
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to create room")
		httperrors.RespondErrorWithDetails(w, http.StatusInternalServerError, httperrors.ErrCodeRoomCreationFailed, "Failed to create room", []string{err.Error()})
		return
	}

	resp := createRoomResponse{CreateResult: res, SessionID: sessionID}
	if h.tokens != nil {
		token, err := h.tokens.IssuePlayerToken(res.PlayerID, res.RoomID, sessionID)
		if err != nil {
			h.logger.Warn().Err(err).Str("room_id", res.RoomID).Msg("failed to issue player token")
		} else {
			resp.PlayerToken = token
		}
	}

	w.Header().Set(SessionHeader, sessionID)
	httperrors.RespondJSON(w, http.StatusCreated, resp)
}

// GetRoom handles GET /v1/rooms/{roomID}
func (h *HTTPHandlers) GetRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	id := r.PathValue("roomID")
	room, err := h.creator.GetRoom(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			httperrors.RespondNotFound(w, httperrors.ErrCodeRoomNotFound, "Room not found")
			return
		}
		h.logger.Error().Err(err).Str("room_id", id).Msg("failed to load room")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeRoomFetchFailed, "Failed to load room")
		return
	}
	httperrors.RespondJSON(w, http.StatusOK, room)
}
