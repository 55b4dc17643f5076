package question

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httperrors "github.com/gokatarajesh/trivia-rooms/pkg/http/errors"
)

type stubGenerator struct {
	result GenerationResult
	err    error
	got    GenerationParams
}

func (s *stubGenerator) Generate(_ context.Context, params GenerationParams) (GenerationResult, error) {
	s.got = params
	if err := params.Validate(); err != nil {
		return GenerationResult{}, err
	}
	return s.result, s.err
}

func newQuestionMux(gen Generator) *http.ServeMux {
	h := NewHTTPHandlers(gen, zerolog.Nop())
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/questions/generate", h.Generate)
	mux.HandleFunc("/v1/questions/sample/{difficulty}", h.Sample)
	return mux
}

func TestGenerateHandlerSuccess(t *testing.T) {
	gen := &stubGenerator{result: SampleResult(DifficultyEasy, 3, ReasonNotConfigured)}
	mux := newQuestionMux(gen)

	req := httptest.NewRequest(http.MethodPost, "/v1/questions/generate", strings.NewReader(`{"topic":"Space","difficulty":"EASY","count":3}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, DifficultyEasy, gen.got.Difficulty)

	var body GenerationResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Questions, 3)
	assert.False(t, body.AIGenerated)
	assert.Equal(t, ReasonNotConfigured, body.FallbackReason)
}

func TestGenerateHandlerValidationError(t *testing.T) {
	mux := newQuestionMux(&stubGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/v1/questions/generate", strings.NewReader(`{"topic":"","difficulty":"easy","count":50}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body httperrors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, httperrors.ErrCodeValidationFailed, body.Error)
	assert.Len(t, body.Details, 2)
}

func TestGenerateHandlerBadJSON(t *testing.T) {
	mux := newQuestionMux(&stubGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/v1/questions/generate", strings.NewReader(`{`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateHandlerUnexpectedError(t *testing.T) {
	mux := newQuestionMux(&stubGenerator{err: errors.New("context canceled")})

	req := httptest.NewRequest(http.MethodPost, "/v1/questions/generate", strings.NewReader(`{"topic":"Space","difficulty":"easy","count":3}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body httperrors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, httperrors.ErrCodeGenerationFailed, body.Error)
	assert.Equal(t, []string{"context canceled"}, body.Details)
}

func TestGenerateHandlerMethodNotAllowed(t *testing.T) {
	mux := newQuestionMux(&stubGenerator{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/questions/generate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSampleHandler(t *testing.T) {
	mux := newQuestionMux(&stubGenerator{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/questions/sample/hard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body GenerationResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, SampleQuestions(DifficultyHard), body.Questions)
	assert.False(t, body.AIGenerated)
	assert.Equal(t, "Sample questions requested", body.FallbackReason)
}

func TestSampleHandlerUnknownDifficulty(t *testing.T) {
	mux := newQuestionMux(&stubGenerator{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/questions/sample/legendary", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body httperrors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, httperrors.ErrCodeInvalidDifficulty, body.Error)
}
