package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-rooms/internal/room"
)

const (
	pushRoomSQL   = `INSERT INTO rooms (doc) VALUES ('{}'::jsonb) RETURNING id::text`
	updateRoomSQL = `UPDATE rooms SET doc = doc || $2::jsonb, updated_at = now() WHERE id = $1`
	getRoomSQL    = `SELECT doc FROM rooms WHERE id = $1`
	deleteRoomSQL = `DELETE FROM rooms WHERE id = $1`
)

// roomStore is the subset of pgxpool.Pool the repository needs.
type roomStore interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RoomRepository stores room documents as JSONB rows.
type RoomRepository struct {
	store roomStore
}

var _ room.Store = (*RoomRepository)(nil)

// NewRoomRepository constructs a new room repository.
func NewRoomRepository(store roomStore) *RoomRepository {
	return &RoomRepository{store: store}
}

// Push allocates an empty room row and returns its id.
func (r *RoomRepository) Push(ctx context.Context) (string, error) {
	var id string
	if err := r.store.QueryRow(ctx, pushRoomSQL).Scan(&id); err != nil {
		return "", fmt.Errorf("insert room: %w", err)
	}
	return id, nil
}

// Update merges top-level fields into the room document.
func (r *RoomRepository) Update(ctx context.Context, id string, fields map[string]any) error {
	roomID, err := uuid.Parse(id)
	if err != nil {
		return room.ErrRoomNotFound
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	tag, err := r.store.Exec(ctx, updateRoomSQL, roomID, string(data))
	if err != nil {
		return fmt.Errorf("update room %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return room.ErrRoomNotFound
	}
	return nil
}

// Get loads a room document.
func (r *RoomRepository) Get(ctx context.Context, id string) (*room.Room, error) {
	roomID, err := uuid.Parse(id)
	if err != nil {
		return nil, room.ErrRoomNotFound
	}
	var doc []byte
	if err := r.store.QueryRow(ctx, getRoomSQL, roomID).Scan(&doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, room.ErrRoomNotFound
		}
		return nil, fmt.Errorf("select room %s: %w", id, err)
	}
	return room.DecodeDocument(id, doc)
}

// Delete removes a room row. Unknown ids are not an error.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	roomID, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	if _, err := r.store.Exec(ctx, deleteRoomSQL, roomID); err != nil {
		return fmt.Errorf("delete room %s: %w", id, err)
	}
	return nil
}
