package journal

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"digestease/internal/logger"
	"digestease/internal/models"
)

var ErrSubmissionInProgress = errors.New("log submission already in progress")

type State int

const (
	StateComposing State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateComposing:
		return "composing"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type LogSender interface {
	AddLog(ctx context.Context, entry models.LogEntry) error
}

// Submission drives one log form through
// composing -> submitting -> succeeded|failed. Any edit after a terminal
// state moves it back to composing.
type Submission struct {
	sender    LogSender
	collector *Collector
	success   *Flash
	log       *zap.Logger

	mu        sync.Mutex
	entry     models.LogEntry
	state     State
	fieldErrs map[string]string
	lastErr   error
	// set by Edit while a submit is in flight
	editedInFlight bool
}

func NewSubmission(sender LogSender, collector *Collector, log *zap.Logger, now func() time.Time) *Submission {
	return &Submission{
		sender:    sender,
		collector: collector,
		success:   NewFlash(SuccessWindow, now),
		log:       logger.OrNop(log),
		entry:     models.NewLogEntry(),
		state:     StateComposing,
	}
}

// Entry returns a copy of the form fields. FoodInput stays empty until
// submission; the live list is the collector's.
func (s *Submission) Entry() models.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyEntry(s.entry)
}

// Edit applies a field change to the form. An edit made while a submit is in
// flight belongs to the next log and survives that submit's success.
func (s *Submission) Edit(fn func(entry *models.LogEntry)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.entry)
	if s.state == StateSubmitting {
		s.editedInFlight = true
	}
	s.touchLocked()
}

// Touch records a user edit made outside the form fields, such as a new food item.
func (s *Submission) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
}

func (s *Submission) touchLocked() {
	if s.state == StateSucceeded || s.state == StateFailed {
		s.state = StateComposing
	}
}

func (s *Submission) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Errors returns the field-level validation messages from the last submit.
func (s *Submission) Errors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.fieldErrs))
	for k, v := range s.fieldErrs {
		out[k] = v
	}
	return out
}

// LastError is the transport or service failure of the last submit, if any.
func (s *Submission) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Succeeded reports the success signal; it clears itself SuccessWindow after
// a successful submit.
func (s *Submission) Succeeded() bool {
	return s.success.Visible()
}

// Submit validates the form, merges the collector snapshot into foodInput and
// sends the record once. On success the submitted food items leave the
// collector and the form returns to its defaults, unless it was edited while
// the request was in flight. On failure nothing is reset and the caller may
// submit again.
func (s *Submission) Submit(ctx context.Context) error {
	op := "journal.Submit"

	s.mu.Lock()
	if s.state == StateSubmitting {
		s.mu.Unlock()
		return ErrSubmissionInProgress
	}

	if err := s.entry.Validate(); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			s.fieldErrs = verr.Fields
		}
		s.state = StateComposing
		s.mu.Unlock()
		s.log.Debug("log rejected by validation", zap.String("op", op), zap.Error(err))
		return err
	}

	record := copyEntry(s.entry)
	record.ID = ""
	record.FoodInput = s.collector.Snapshot()
	record = record.Normalize()

	s.fieldErrs = nil
	s.lastErr = nil
	s.editedInFlight = false
	s.state = StateSubmitting
	s.success.Clear()
	s.mu.Unlock()

	s.log.Debug("submitting log",
		zap.String("op", op),
		zap.String("date", record.Date),
		zap.Int("food_items", len(record.FoodInput)),
	)

	err := s.sender.AddLog(ctx, record)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateFailed
		s.lastErr = err
		s.log.Warn("log submission failed", zap.String("op", op), zap.Error(err))
		return err
	}

	s.state = StateSucceeded
	if !s.editedInFlight {
		s.entry = models.NewLogEntry()
	}
	s.editedInFlight = false
	s.collector.Drop(len(record.FoodInput))
	s.success.Raise()
	s.log.Info("log submitted", zap.String("op", op), zap.String("date", record.Date))
	return nil
}

func copyEntry(entry models.LogEntry) models.LogEntry {
	food := make([]string, len(entry.FoodInput))
	copy(food, entry.FoodInput)
	entry.FoodInput = food
	return entry
}
