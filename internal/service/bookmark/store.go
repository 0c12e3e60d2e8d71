// Package bookmark keeps the list of saved destinations in process memory.
package bookmark

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kapu/tastejourney-go/internal/domain"
)

// Store lists bookmarks in the order they were added. Add and Remove return the updated list.
type Store interface {
	List(ctx context.Context) ([]domain.Bookmark, error)
	Add(ctx context.Context, destination string) ([]domain.Bookmark, error)
	Remove(ctx context.Context, destination string) ([]domain.Bookmark, error)
}

// MemoryStore is safe for concurrent use. Its contents end with the process.
type MemoryStore struct {
	mu    sync.RWMutex
	items []domain.Bookmark
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) List(context.Context) ([]domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot(), nil
}

func (s *MemoryStore) Add(_ context.Context, destination string) ([]domain.Bookmark, error) {
	destination = strings.TrimSpace(destination)

	s.mu.Lock()
	defer s.mu.Unlock()

	if destination != "" && s.indexOf(destination) < 0 {
		s.items = append(s.items, domain.Bookmark{Destination: destination, CreatedAt: s.now()})
	}
	return s.snapshot(), nil
}

func (s *MemoryStore) Remove(_ context.Context, destination string) ([]domain.Bookmark, error) {
	destination = strings.TrimSpace(destination)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(destination); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
	return s.snapshot(), nil
}

func (s *MemoryStore) indexOf(destination string) int {
	for i, b := range s.items {
		if b.Destination == destination {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) snapshot() []domain.Bookmark {
	out := make([]domain.Bookmark, len(s.items))
	copy(out, s.items)
	return out
}
