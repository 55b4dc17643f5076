package room

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Store allocates room records and merges fields into them. Push hands out
// the key, Update writes the document. Delete drops a record and is a no-op
// for unknown ids.
type Store interface {
	Push(ctx context.Context) (string, error)
	Update(ctx context.Context, id string, fields map[string]any) error
	Get(ctx context.Context, id string) (*Room, error)
	Delete(ctx context.Context, id string) error
}

// Fields flattens a room into top-level document fields for Store.Update.
func Fields(r *Room) (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// DecodeDocument turns a stored document back into a Room.
func DecodeDocument(id string, doc []byte) (*Room, error) {
	var r Room
	if err := json.Unmarshal(doc, &r); err != nil {
		return nil, fmt.Errorf("decode room %s: %w", id, err)
	}
	r.ID = id
	return &r, nil
}

// MemoryStore keeps room documents in process. It backs ROOM_STORE=memory and
// tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]map[string]any)}
}

func (s *MemoryStore) Push(_ context.Context) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	s.docs[id] = map[string]any{}
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, exists := s.docs[id]
	if !exists {
		return ErrRoomNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Room, error) {
	s.mu.RLock()
	doc, exists := s.docs[id]
	if !exists {
		s.mu.RUnlock()
		return nil, ErrRoomNotFound
	}
	data, err := json.Marshal(doc)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	return DecodeDocument(id, data)
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.docs, id)
	s.mu.Unlock()
	return nil
}
