package facility

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("facility not found")

// Store persists facility configs. Names are matched case-insensitively.
type Store interface {
	Get(ctx context.Context, name string) (Config, error)
	List(ctx context.Context) ([]Config, error)
	Upsert(ctx context.Context, c Config) error
}

// MemoryStore is an in-process Store, used when no database is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	configs map[string]Config
}

func NewMemoryStore(seed ...Config) *MemoryStore {
	s := &MemoryStore{configs: make(map[string]Config, len(seed))}
	for _, c := range seed {
		s.configs[key(c.Name)] = c
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, name string) (Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.configs[key(name)]
	if !ok {
		return Config{}, ErrNotFound
	}
	return c, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Config, 0, len(s.configs))
	for _, c := range s.configs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i].Name) < key(out[j].Name) })
	return out, nil
}

func (s *MemoryStore) Upsert(_ context.Context, c Config) error {
	if _, err := c.Build(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[key(c.Name)] = c
	return nil
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
