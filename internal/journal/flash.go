package journal

import (
	"sync"
	"time"
)

// SuccessWindow is how long the submission success signal stays visible.
const SuccessWindow = 5 * time.Second

// Flash is a signal that stays visible for a bounded window after Raise and
// then clears itself.
type Flash struct {
	mu     sync.Mutex
	now    func() time.Time
	window time.Duration
	until  time.Time
}

func NewFlash(window time.Duration, now func() time.Time) *Flash {
	if now == nil {
		now = time.Now
	}
	return &Flash{now: now, window: window}
}

func (f *Flash) Raise() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.until = f.now().Add(f.window)
}

func (f *Flash) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.until = time.Time{}
}

func (f *Flash) Visible() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now().Before(f.until)
}
