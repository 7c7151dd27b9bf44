package journal

import (
	"strings"
	"sync"
)

// Collector is the composition buffer of food items for the log being composed.
// It only grows by Append and only shrinks by Clear or Drop.
type Collector struct {
	mu    sync.Mutex
	items []string
}

func NewCollector() *Collector {
	return &Collector{items: []string{}}
}

// Append adds a trimmed item to the end of the buffer. Blank items are ignored.
func (c *Collector) Append(item string) bool {
	item = strings.TrimSpace(item)
	if item == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	return true
}

func (c *Collector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = []string{}
}

// Drop removes the first n items, the ones a submitted snapshot carried.
// Items appended after that snapshot stay.
func (c *Collector) Drop(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n >= len(c.items) {
		c.items = []string{}
		return
	}
	if n <= 0 {
		return
	}
	rest := make([]string, len(c.items)-n)
	copy(rest, c.items[n:])
	c.items = rest
}

// Snapshot returns a copy; callers may keep it after the buffer changes.
func (c *Collector) Snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
