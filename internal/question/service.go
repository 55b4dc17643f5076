package question

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gokatarajesh/trivia-rooms/internal/logging"
	"github.com/gokatarajesh/trivia-rooms/internal/metrics"
)

var tracer = otel.Tracer("github.com/gokatarajesh/trivia-rooms/internal/question")

const serviceComponent = "question_service"

// Completer produces raw completion text for a prompt (implemented by ai.Client).
type Completer interface {
	Configured() bool
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Generator is the contract room creation depends on.
type Generator interface {
	Generate(ctx context.Context, params GenerationParams) (GenerationResult, error)
}

// Service turns a topic into exactly the requested number of questions, using
// the model when it can and the sample bank for everything else.
type Service struct {
	model   Completer
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

type ServiceOptions struct {
	Metrics *metrics.Metrics
}

func NewService(model Completer, logger zerolog.Logger, opts ServiceOptions) *Service {
	return &Service{
		model:   model,
		logger:  logger.With().Str("component", "question_service").Logger(),
		metrics: opts.Metrics,
	}
}

// Generate never fails because of the model: any model problem is folded into
// a bank-backed result carrying the classified reason, a deadline included.
// Errors are returned only for invalid params or a cancelled context.
func (s *Service) Generate(ctx context.Context, params GenerationParams) (GenerationResult, error) {
	if err := params.Validate(); err != nil {
		return GenerationResult{}, err
	}

	ctx, span := tracer.Start(ctx, "question.Generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("question.topic", params.Topic),
		attribute.String("question.difficulty", string(params.Difficulty)),
		attribute.Int("question.count", params.Count),
	)

	logger := logging.ComponentFromContext(ctx, s.logger, serviceComponent)

	if s.model == nil || !s.model.Configured() {
		s.metrics.ObserveGeneration("bank", ReasonNotConfigured)
		span.SetAttributes(attribute.String("question.fallback_reason", ReasonNotConfigured))
		return SampleResult(params.Difficulty, params.Count, ReasonNotConfigured), nil
	}

	result, err := s.generateFromModel(ctx, logger, params)
	if err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.Canceled) {
			span.RecordError(ctxErr)
			span.SetStatus(codes.Error, "context cancelled")
			return GenerationResult{}, ctxErr
		}
		reason := ClassifyError(err)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = ReasonNetwork
		}
		logger.Warn().Err(err).
			Str("reason", reason).
			Str("topic", params.Topic).
			Msg("model generation failed, serving sample questions")
		s.metrics.ObserveGeneration("bank", reason)
		span.RecordError(err)
		span.SetAttributes(attribute.String("question.fallback_reason", reason))
		return SampleResult(params.Difficulty, params.Count, reason), nil
	}

	source := "model"
	if !result.AIGenerated {
		source = "padded"
	}
	s.metrics.ObserveGeneration(source, result.FallbackReason)
	span.SetAttributes(attribute.Bool("question.ai_generated", result.AIGenerated))
	return result, nil
}

func (s *Service) generateFromModel(ctx context.Context, logger zerolog.Logger, params GenerationParams) (GenerationResult, error) {
	want := bufferCount(params.Count)
	raw, err := s.model.Complete(ctx, buildPrompt(params.Topic, params.Difficulty, want), maxTokensFor(want))
	if err != nil {
		return GenerationResult{}, err
	}

	candidates, err := parseCandidates(raw)
	if err != nil {
		return GenerationResult{}, err
	}

	accepted, rejected := Validate(candidates, params)
	s.metrics.ObserveCandidates(len(accepted), rejected.Labels())

	event := logger.Debug().
		Int("buffer_count", want).
		Int("received", len(candidates)).
		Int("accepted", len(accepted)).
		Int("rejected", rejected.Total())
	for reason, n := range rejected {
		event = event.Int("rejected_"+string(reason), n)
	}
	event.Msg("model candidates validated")

	if len(accepted) == 0 {
		return GenerationResult{}, fmt.Errorf("%w: no valid questions in %d candidates", ErrMalformedResponse, len(candidates))
	}

	aiGenerated := len(accepted) >= params.Count
	questions := accepted
	if shortfall := params.Count - len(accepted); shortfall > 0 {
		questions = append(questions, SliceOrPad(SampleQuestions(params.Difficulty), shortfall)...)
		logger.Info().
			Int("accepted", len(accepted)).
			Int("padded", shortfall).
			Msg("padded model questions from sample bank")
	}

	return GenerationResult{
		Questions:   questions[:params.Count],
		AIGenerated: aiGenerated,
	}, nil
}

// parseCandidates accepts a bare JSON array or an object with a questions array.
func parseCandidates(raw string) ([]any, error) {
	body := stripCodeFences(raw)
	var decoded any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	switch v := decoded.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if list, ok := v["questions"].([]any); ok {
			return list, nil
		}
	}
	return nil, fmt.Errorf("%w: expected an array of questions", ErrMalformedResponse)
}
