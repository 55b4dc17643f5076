package question

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/trivia-rooms/pkg/http/errors"
)

// HTTPHandlers exposes generation and sample lookup over REST.
type HTTPHandlers struct {
	generator Generator
	logger    zerolog.Logger
}

func NewHTTPHandlers(generator Generator, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		generator: generator,
		logger:    logger.With().Str("component", "question_http").Logger(),
	}
}

type generateRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

// Generate handles POST /v1/questions/generate
func (h *HTTPHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	params := GenerationParams{
		Topic:      req.Topic,
		Difficulty: Difficulty(req.Difficulty),
		Count:      req.Count,
	}
	if d, err := ParseDifficulty(req.Difficulty); err == nil {
		params.Difficulty = d
	}

	result, err := h.generator.Generate(r.Context(), params)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			httperrors.RespondErrorWithDetails(w, http.StatusBadRequest, httperrors.ErrCodeValidationFailed, vErr.Message, vErr.Details)
			return
		}
		h.logger.Error().Err(err).Str("topic", req.Topic).Msg("question generation failed")
		httperrors.RespondErrorWithDetails(w, http.StatusInternalServerError, httperrors.ErrCodeGenerationFailed, "Failed to generate questions", []string{err.Error()})
		return
	}

	httperrors.RespondJSON(w, http.StatusOK, result)
}

// Sample handles GET /v1/questions/sample/{difficulty}
func (h *HTTPHandlers) Sample(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httperrors.RespondMethodNotAllowed(w)
		return
	}

	difficulty, err := ParseDifficulty(r.PathValue("difficulty"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidDifficulty, "difficulty must be one of easy, medium, hard")
		return
	}

	httperrors.RespondJSON(w, http.StatusOK, GenerationResult{
		Questions:      SampleQuestions(difficulty),
		AIGenerated:    false,
		FallbackReason: ReasonSampleRequested,
	})
}
