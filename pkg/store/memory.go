package store

import (
	"context"
	"sync"

	"github.com/matzehuels/bannersmith/pkg/banner"
)

// MemoryStore keeps compositions in process memory. Used in tests and for
// throwaway editing sessions.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*banner.Composition
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*banner.Composition)}
}

// Load returns a copy of the stored composition.
func (s *MemoryStore) Load(ctx context.Context, bannerID string) (comp *banner.Composition, err error) {
	defer func() { observeLoad(ctx, bannerID, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[bannerID]
	if !ok {
		return nil, ErrNotFound
	}
	return doc.Clone(), nil
}

// Save stores a copy of the composition.
func (s *MemoryStore) Save(ctx context.Context, bannerID string, comp *banner.Composition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[bannerID] = comp.Clone()
	observeSave(ctx, bannerID, nil)
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
