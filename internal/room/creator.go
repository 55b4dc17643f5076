package room

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gokatarajesh/trivia-rooms/internal/logging"
	"github.com/gokatarajesh/trivia-rooms/internal/metrics"
	"github.com/gokatarajesh/trivia-rooms/internal/question"
)

var tracer = otel.Tracer("github.com/gokatarajesh/trivia-rooms/internal/room")

const creatorComponent = "room_creator"

// SessionRecorder remembers which player a browser session created.
type SessionRecorder interface {
	Remember(ctx context.Context, sessionID, playerID, roomID string) error
}

// Creator routes room creation to the remote backend when the rollout flags
// allow it and falls back to building the room locally on any remote failure.
type Creator struct {
	flags     FlagSource
	policy    RoutingPolicy
	remote    RemoteBackend
	generator question.Generator
	store     Store
	sessions  SessionRecorder
	metrics   *metrics.Metrics
	logger    zerolog.Logger
	now       func() time.Time
}

type CreatorOptions struct {
	Policy   RoutingPolicy
	Sessions SessionRecorder
	Metrics  *metrics.Metrics
}

func NewCreator(flags FlagSource, remote RemoteBackend, generator question.Generator, store Store, logger zerolog.Logger, opts CreatorOptions) *Creator {
	policy := opts.Policy
	if policy == nil {
		policy = DefaultRoutingPolicy
	}
	return &Creator{
		flags:     flags,
		policy:    policy,
		remote:    remote,
		generator: generator,
		store:     store,
		sessions:  opts.Sessions,
		metrics:   opts.Metrics,
		logger:    logging.Component(logger, creatorComponent),
		now:       time.Now,
	}
}

// CreateRoom creates a room, generating its questions on the local path.
func (c *Creator) CreateRoom(ctx context.Context, req CreateRequest) (CreateResult, error) {
	if err := ValidateRequest(req); err != nil {
		return CreateResult{}, err
	}
	return c.create(ctx, req, false)
}

// CreateRoomWithQuestions creates a room from questions generated earlier.
// The number of questions must match QuestionCount.
func (c *Creator) CreateRoomWithQuestions(ctx context.Context, req CreateRequest) (CreateResult, error) {
	if err := validatePregenerated(req); err != nil {
		return CreateResult{}, err
	}
	return c.create(ctx, req, true)
}

// GetRoom loads a locally stored room.
func (c *Creator) GetRoom(ctx context.Context, id string) (*Room, error) {
	return c.store.Get(ctx, id)
}

func (c *Creator) create(ctx context.Context, req CreateRequest, pregenerated bool) (CreateResult, error) {
	ctx, span := tracer.Start(ctx, "room.Create")
	defer span.End()

	logger := logging.ComponentFromContext(ctx, c.logger, creatorComponent)
	route := c.route(logger)
	span.SetAttributes(
		attribute.String("room.route", route.String()),
		attribute.Bool("room.pregenerated", pregenerated),
		attribute.Int("room.question_count", req.QuestionCount),
	)

	if route == RouteRemote {
		if res, ok := c.tryRemote(ctx, logger, req, pregenerated); ok {
			span.SetAttributes(attribute.String("room.path", "remote"))
			c.remember(ctx, logger, req.SessionID, res)
			return res, nil
		}
	}

	span.SetAttributes(attribute.String("room.path", "local"))
	res, err := c.createLocal(ctx, logger, req, pregenerated)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "local room creation failed")
		return CreateResult{}, err
	}
	return res, nil
}

func (c *Creator) route(logger zerolog.Logger) Route {
	if c.flags == nil {
		return RouteLocal
	}
	flags, err := c.flags.Flags()
	if err != nil {
		logger.Warn().Err(err).Msg("could not read room routing flags, using local path")
		return RouteLocal
	}
	return c.policy(flags)
}

func (c *Creator) tryRemote(ctx context.Context, logger zerolog.Logger, req CreateRequest, pregenerated bool) (CreateResult, bool) {
	if c.remote == nil {
		return CreateResult{}, false
	}

	healthy := c.remote.Healthy(ctx)
	c.metrics.ObserveRemoteHealth(healthy)
	if !healthy {
		logger.Info().Msg("remote backend unhealthy, using local path")
		c.metrics.ObserveRoomCreation("remote", "unhealthy")
		return CreateResult{}, false
	}

	remoteReq := RemoteCreateRequest{
		Nickname:      req.Nickname,
		Topic:         req.Topic,
		Difficulty:    req.Difficulty,
		QuestionCount: req.QuestionCount,
	}
	if pregenerated {
		remoteReq.Questions = req.Questions
	}

	res, err := c.remote.CreateRoom(ctx, remoteReq)
	if err != nil {
		logger.Warn().Err(err).Msg("remote room creation failed, using local path")
		c.metrics.ObserveRoomCreation("remote", "failed")
		return CreateResult{}, false
	}

	c.metrics.ObserveRoomCreation("remote", "success")
	logger.Info().
		Str("room_id", res.RoomID).
		Str("player_id", res.PlayerID).
		Msg("room created on remote backend")
	return res, true
}

func (c *Creator) createLocal(ctx context.Context, logger zerolog.Logger, req CreateRequest, pregenerated bool) (CreateResult, error) {
	var generated question.GenerationResult
	if pregenerated {
		generated = question.GenerationResult{
			Questions:      req.Questions,
			AIGenerated:    req.AIGenerated,
			FallbackReason: req.FallbackReason,
		}
	} else {
		generated = c.generate(ctx, logger, req)
	}

	questions := question.SliceOrPad(generated.Questions, req.QuestionCount)
	if len(questions) == 0 {
		questions = question.SliceOrPad(question.SampleQuestions(req.Difficulty), req.QuestionCount)
	}

	now := c.now().UTC()
	hostID := uuid.NewString()
	room := &Room{
		Code:          generateRoomCode(),
		Topic:         req.Topic,
		Difficulty:    req.Difficulty,
		QuestionCount: req.QuestionCount,
		HostID:        hostID,
		Players: map[string]Player{
			hostID: {
				ID:       hostID,
				Nickname: req.Nickname,
				IsHost:   true,
				JoinedAt: now,
				Answers:  map[string]Answer{},
			},
		},
		Questions:            questions,
		CurrentQuestionIndex: 0,
		Status:               StatusWaiting,
		AIGenerated:          generated.AIGenerated,
		FallbackReason:       generated.FallbackReason,
		CreatedAt:            now,
	}

	id, err := c.persist(ctx, logger, room)
	if err != nil {
		c.metrics.ObserveRoomCreation("local", "failed")
		return CreateResult{}, err
	}
	c.metrics.ObserveRoomCreation("local", "success")

	res := CreateResult{
		RoomID:         id,
		PlayerID:       hostID,
		AIGenerated:    room.AIGenerated,
		FallbackReason: room.FallbackReason,
	}
	logger.Info().
		Str("room_id", id).
		Str("room_code", room.Code).
		Str("host_id", hostID).
		Bool("ai_generated", room.AIGenerated).
		Str("fallback_reason", room.FallbackReason).
		Msg("room created locally")

	c.remember(ctx, logger, req.SessionID, res)
	return res, nil
}

// generate never fails: an error from the generator degrades to the sample bank.
func (c *Creator) generate(ctx context.Context, logger zerolog.Logger, req CreateRequest) question.GenerationResult {
	params := question.GenerationParams{Topic: req.Topic, Difficulty: req.Difficulty, Count: req.QuestionCount}
	if c.generator == nil {
		return question.SampleResult(req.Difficulty, req.QuestionCount, question.ReasonNotConfigured)
	}
	res, err := c.generator.Generate(ctx, params)
	if err != nil {
		reason := question.ClassifyError(err)
		logger.Warn().Err(err).Str("reason", reason).Msg("question generation failed, using sample questions")
		return question.SampleResult(req.Difficulty, req.QuestionCount, reason)
	}
	return res
}

// persist allocates the record and writes the room into it. A record whose
// write failed is deleted so no empty room outlives the request.
func (c *Creator) persist(ctx context.Context, logger zerolog.Logger, room *Room) (string, error) {
	id, err := c.store.Push(ctx)
	if err != nil {
		return "", fmt.Errorf("allocate room: %w", err)
	}
	room.ID = id

	fields, err := Fields(room)
	if err == nil {
		err = c.store.Update(ctx, id, fields)
	}
	if err != nil {
		if delErr := c.store.Delete(context.WithoutCancel(ctx), id); delErr != nil {
			logger.Error().Err(delErr).Str("room_id", id).Msg("failed to delete unwritten room")
		}
		return "", fmt.Errorf("save room %s: %w", id, err)
	}
	return id, nil
}

func (c *Creator) remember(ctx context.Context, logger zerolog.Logger, sessionID string, res CreateResult) {
	if c.sessions == nil || sessionID == "" {
		return
	}
	if err := c.sessions.Remember(ctx, sessionID, res.PlayerID, res.RoomID); err != nil {
		logger.Warn().Err(err).Str("session_id", sessionID).Msg("failed to record player session")
	}
}

// generateRoomCode returns a 6-digit code in [100000, 999999]. Codes are not
// checked for collisions.
func generateRoomCode() string {
	return fmt.Sprintf("%06d", 100000+rand.Intn(900000))
}
