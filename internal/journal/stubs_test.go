package journal

import (
	"context"
	"sync"
	"time"

	"digestease/internal/models"
)

type serviceStub struct {
	mu           sync.Mutex
	addLogCalls  []models.LogEntry
	listCalls    int
	genCalls     int
	AddLogFunc   func(ctx context.Context, entry models.LogEntry) error
	ListFunc     func(ctx context.Context) ([]models.Rapport, error)
	GenerateFunc func(ctx context.Context) (models.Rapport, error)
}

func (s *serviceStub) AddLog(ctx context.Context, entry models.LogEntry) error {
	s.mu.Lock()
	s.addLogCalls = append(s.addLogCalls, entry)
	s.mu.Unlock()
	if s.AddLogFunc != nil {
		return s.AddLogFunc(ctx, entry)
	}
	return nil
}

func (s *serviceStub) ListRapports(ctx context.Context) ([]models.Rapport, error) {
	s.mu.Lock()
	s.listCalls++
	s.mu.Unlock()
	if s.ListFunc != nil {
		return s.ListFunc(ctx)
	}
	return []models.Rapport{}, nil
}

func (s *serviceStub) GenerateRapport(ctx context.Context) (models.Rapport, error) {
	s.mu.Lock()
	s.genCalls++
	s.mu.Unlock()
	if s.GenerateFunc != nil {
		return s.GenerateFunc(ctx)
	}
	return models.Rapport{}, nil
}

func (s *serviceStub) sentLogs() []models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LogEntry, len(s.addLogCalls))
	copy(out, s.addLogCalls)
	return out
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
