package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ice_ai_server/internal/types"
)

// MemoryStore is an in-memory ProjectStore implementation.
type MemoryStore struct {
	mu       sync.RWMutex
	websites map[string]*Website
	shares   map[string]*ShareRecord // token -> record
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		websites: make(map[string]*Website),
		shares:   make(map[string]*ShareRecord),
	}
}

func (s *MemoryStore) Save(userID, name, prompt string, project *types.GeneratedProject) (*Website, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := &Website{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Prompt:    prompt,
		Project:   project,
		CreatedAt: time.Now(),
	}
	s.websites[w.ID] = w
	return w, nil
}

func (s *MemoryStore) Get(userID, id string) (*Website, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.websites[id]
	if !ok {
		return nil, ErrNotFound
	}
	if w.UserID != userID {
		return nil, ErrForbidden
	}
	return w, nil
}

func (s *MemoryStore) ListByUser(userID string) ([]*Website, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Website
	for _, w := range s.websites {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *MemoryStore) Delete(userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.websites[id]
	if !ok {
		return ErrNotFound
	}
	if w.UserID != userID {
		return ErrForbidden
	}
	delete(s.websites, id)
	for token, rec := range s.shares {
		if rec.WebsiteID == id {
			delete(s.shares, token)
		}
	}
	return nil
}

func (s *MemoryStore) Share(userID, id string) (*ShareRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.websites[id]
	if !ok {
		return nil, ErrNotFound
	}
	if w.UserID != userID {
		return nil, ErrForbidden
	}

	rec := &ShareRecord{
		Token:     uuid.New().String(),
		WebsiteID: id,
		CreatedAt: time.Now(),
	}
	s.shares[rec.Token] = rec
	return rec, nil
}

func (s *MemoryStore) GetShared(token string) (*Website, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.shares[token]
	if !ok {
		return nil, ErrNotFound
	}
	w, ok := s.websites[rec.WebsiteID]
	if !ok {
		return nil, ErrNotFound
	}
	return w, nil
}
