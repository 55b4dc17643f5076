package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-rooms/internal/question"
)

func TestMemoryStorePushUpdateGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	id, err := store.Push(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	room := &Room{
		ID:            id,
		Code:          "123456",
		Topic:         "Space",
		Difficulty:    question.DifficultyEasy,
		QuestionCount: 2,
		HostID:        "host",
		Players: map[string]Player{
			"host": {ID: "host", Nickname: "Ada", IsHost: true, JoinedAt: created, Answers: map[string]Answer{}},
		},
		Questions: question.SliceOrPad(question.SampleQuestions(question.DifficultyEasy), 2),
		Status:    StatusWaiting,
		CreatedAt: created,
	}
	fields, err := Fields(room)
	require.NoError(t, err)
	require.NoError(t, store.Update(ctx, id, fields))

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, room, got)

	require.NoError(t, store.Update(ctx, id, map[string]any{"status": string(StatusInProgress)}))
	got, err = store.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, got.Status)
	assert.Equal(t, "123456", got.Code)
}

func TestMemoryStoreMissing(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.ErrorIs(t, store.Update(context.Background(), "missing", map[string]any{}), ErrRoomNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	id, err := store.Push(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Get(ctx, id)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.NoError(t, store.Delete(ctx, "missing"))
}
