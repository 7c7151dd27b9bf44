package journal

import (
	"context"
	"time"

	"go.uber.org/zap"

	"digestease/internal/models"
)

// Service is the journal service as the client sees it.
type Service interface {
	LogSender
	RapportSource
	RapportGenerator
}

// Session owns all client-side state for one user session. The presentation
// layer reads it through the accessors and sends intents through the methods.
type Session struct {
	Collector  *Collector
	Submission *Submission
	Rapports   *RapportStore
	Generator  *Generator
}

// NewSession wires the components around svc. now may be nil.
func NewSession(svc Service, log *zap.Logger, now func() time.Time) *Session {
	collector := NewCollector()
	store := NewRapportStore(svc, log)

	return &Session{
		Collector:  collector,
		Submission: NewSubmission(svc, collector, log, now),
		Rapports:   store,
		Generator:  NewGenerator(svc, store, log),
	}
}

func (s *Session) AddFood(item string) bool {
	if !s.Collector.Append(item) {
		return false
	}
	s.Submission.Touch()
	return true
}

func (s *Session) Edit(fn func(entry *models.LogEntry)) {
	s.Submission.Edit(fn)
}

func (s *Session) Submit(ctx context.Context) error {
	return s.Submission.Submit(ctx)
}

// Activate loads the rapport collection when the rapport view opens. The
// collection is not refreshed again on its own changes.
func (s *Session) Activate(ctx context.Context) error {
	return s.Rapports.Refresh(ctx)
}

func (s *Session) Generate(ctx context.Context) (models.Rapport, error) {
	return s.Generator.Generate(ctx)
}
