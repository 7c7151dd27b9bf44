package journal

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"digestease/internal/logger"
	"digestease/internal/models"
)

type RapportSource interface {
	ListRapports(ctx context.Context) ([]models.Rapport, error)
}

type stampedRapport struct {
	seq     uint64
	rapport models.Rapport
}

// RapportStore holds the rapports known to this session. It is replaced by
// Refresh and extended by Append; nothing is edited in place or removed.
//
// A refresh replaces the collection with what the service returned, but any
// Append that landed after that refresh started is re-applied on top, unless
// the fetched collection already contains a rapport with the same id.
type RapportStore struct {
	source RapportSource
	log    *zap.Logger

	mu       sync.Mutex
	rapports []models.Rapport
	seq      uint64
	inflight map[uint64]int
	recent   []stampedRapport
}

func NewRapportStore(source RapportSource, log *zap.Logger) *RapportStore {
	return &RapportStore{
		source:   source,
		log:      logger.OrNop(log),
		rapports: []models.Rapport{},
		inflight: make(map[uint64]int),
	}
}

// Refresh replaces the held collection with the service's. On failure the
// held collection is left untouched.
func (s *RapportStore) Refresh(ctx context.Context) error {
	op := "journal.Refresh"

	s.mu.Lock()
	start := s.seq
	s.inflight[start]++
	s.mu.Unlock()

	fetched, err := s.source.ListRapports(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.release(start)

	if err != nil {
		s.log.Warn("rapport refresh failed", zap.String("op", op), zap.Error(err))
		return fmt.Errorf("refresh rapports: %w", err)
	}

	merged := make([]models.Rapport, 0, len(fetched))
	merged = append(merged, fetched...)

	known := make(map[string]struct{}, len(fetched))
	for _, r := range fetched {
		if r.ID != "" {
			known[r.ID] = struct{}{}
		}
	}
	for _, st := range s.recent {
		if st.seq <= start {
			continue
		}
		if _, ok := known[st.rapport.ID]; ok && st.rapport.ID != "" {
			continue
		}
		merged = append(merged, st.rapport)
	}

	s.rapports = merged
	s.log.Debug("rapports refreshed", zap.String("op", op), zap.Int("count", len(merged)))
	return nil
}

// Append adds one rapport to the end without fetching.
func (s *RapportStore) Append(rapport models.Rapport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.rapports = append(s.rapports, rapport)
	if len(s.inflight) > 0 {
		s.recent = append(s.recent, stampedRapport{seq: s.seq, rapport: rapport})
	}
}

// List returns a copy of the held collection in order.
func (s *RapportStore) List() []models.Rapport {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Rapport, len(s.rapports))
	copy(out, s.rapports)
	return out
}

func (s *RapportStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rapports)
}

// release must be called with mu held.
func (s *RapportStore) release(start uint64) {
	s.inflight[start]--
	if s.inflight[start] <= 0 {
		delete(s.inflight, start)
	}

	if len(s.inflight) == 0 {
		s.recent = nil
		return
	}

	oldest := start
	first := true
	for st := range s.inflight {
		if first || st < oldest {
			oldest = st
			first = false
		}
	}

	kept := s.recent[:0]
	for _, st := range s.recent {
		if st.seq > oldest {
			kept = append(kept, st)
		}
	}
	s.recent = kept
}
