package room

import (
	"errors"
	"time"

	"github.com/gokatarajesh/trivia-rooms/internal/question"
)

// ErrRoomNotFound is returned by stores for unknown room ids.
var ErrRoomNotFound = errors.New("room not found")

// Status is the room lifecycle state.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// Room is the shared document every player in a game reads from.
type Room struct {
	ID                   string              `json:"id"`
	Code                 string              `json:"code"`
	Topic                string              `json:"topic"`
	Difficulty           question.Difficulty `json:"difficulty"`
	QuestionCount        int                 `json:"questionCount"`
	HostID               string              `json:"hostId"`
	Players              map[string]Player   `json:"players"`
	Questions            []question.Question `json:"questions"`
	CurrentQuestionIndex int                 `json:"currentQuestionIndex"`
	Status               Status              `json:"status"`
	AIGenerated          bool                `json:"aiGenerated"`
	FallbackReason       string              `json:"fallbackReason,omitempty"`
	CreatedAt            time.Time           `json:"createdAt"`
}

// Player is one participant. Answers are keyed by question index.
type Player struct {
	ID       string            `json:"id"`
	Nickname string            `json:"nickname"`
	IsHost   bool              `json:"isHost"`
	Score    int               `json:"score"`
	JoinedAt time.Time         `json:"joinedAt"`
	Answers  map[string]Answer `json:"answers"`
}

// Answer records one submitted option.
type Answer struct {
	Option     string    `json:"option"`
	Correct    bool      `json:"correct"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// CreateRequest is the input to both room creation entry points. Questions,
// AIGenerated and FallbackReason are only read by CreateRoomWithQuestions.
type CreateRequest struct {
	Nickname       string
	Topic          string
	Difficulty     question.Difficulty
	QuestionCount  int
	Questions      []question.Question
	AIGenerated    bool
	FallbackReason string
	SessionID      string
}

// CreateResult identifies the new room and its host.
type CreateResult struct {
	RoomID         string `json:"roomId"`
	PlayerID       string `json:"playerId"`
	AIGenerated    bool   `json:"aiGenerated"`
	FallbackReason string `json:"fallbackReason,omitempty"`
}
