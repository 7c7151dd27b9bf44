package handlers

import (
	"context"
	"fmt"
	"sync"

	"digestease/internal/models"
)

// memoryStore keeps logs and rapports in memory.
type memoryStore struct {
	mu       sync.Mutex
	logs     []models.LogEntry
	rapports []models.Rapport
	nextID   int
	err      error
}

func (s *memoryStore) CreateLog(ctx context.Context, entry *models.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.nextID++
	entry.ID = fmt.Sprintf("log-%d", s.nextID)
	s.logs = append(s.logs, *entry)
	return nil
}

func (s *memoryStore) RecentLogs(ctx context.Context, limit int) ([]models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := []models.LogEntry{}
	for i := len(s.logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.logs[i])
	}
	return out, nil
}

func (s *memoryStore) CreateRapport(ctx context.Context, rapport *models.Rapport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.nextID++
	rapport.ID = fmt.Sprintf("rapport-%d", s.nextID)
	s.rapports = append(s.rapports, *rapport)
	return nil
}

func (s *memoryStore) ListRapports(ctx context.Context) ([]models.Rapport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.Rapport, len(s.rapports))
	copy(out, s.rapports)
	return out, nil
}

type generatorStub struct {
	GenerateFunc func(ctx context.Context, system, prompt string) (string, error)
	prompts      []string
}

func (g *generatorStub) Generate(ctx context.Context, system, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.GenerateFunc != nil {
		return g.GenerateFunc(ctx, system, prompt)
	}
	return "Rapport: all good", nil
}

// cacheStub mimics the generation guard of the redis cache.
type cacheStub struct {
	mu          sync.Mutex
	value       []models.Rapport
	hit         bool
	gen         int64
	gets        int
	sets        int
	invalidated int
}

func (c *cacheStub) Get(ctx context.Context) ([]models.Rapport, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	return c.value, c.hit, nil
}

func (c *cacheStub) Generation(ctx context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *cacheStub) Set(ctx context.Context, gen int64, rapports []models.Rapport) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false, nil
	}
	c.sets++
	c.value = rapports
	c.hit = true
	return true, nil
}

func (c *cacheStub) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.gen++
	c.value = nil
	c.hit = false
	return nil
}

// pausingStore holds ListRapports after the read until release is closed.
type pausingStore struct {
	*memoryStore
	listed  chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *pausingStore) ListRapports(ctx context.Context) ([]models.Rapport, error) {
	out, err := s.memoryStore.ListRapports(ctx)
	paused := false
	s.once.Do(func() { paused = true })
	if paused {
		close(s.listed)
		<-s.release
	}
	return out, err
}
