package testfixtures

import (
	"fmt"
	"sync"
)

// IDGenerator produces deterministic event identifiers for tests.
type IDGenerator struct {
	mu      sync.Mutex
	prefix  string
	counter uint64
	queued  []string
}

// NewIDGenerator constructs a generator yielding "<prefix>-<n>". When prefix
// is empty, "event" is used.
func NewIDGenerator(prefix string) *IDGenerator {
	if prefix == "" {
		prefix = "event"
	}
	return &IDGenerator{prefix: prefix}
}

// Queue makes the next calls to Next return ids in order before the counter
// resumes. It is used to force collisions.
func (g *IDGenerator) Queue(ids ...string) {
	g.mu.Lock()
	g.queued = append(g.queued, ids...)
	g.mu.Unlock()
}

// Next returns the next identifier in the sequence.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.queued) > 0 {
		id := g.queued[0]
		g.queued = g.queued[1:]
		return id
	}
	g.counter++
	return fmt.Sprintf("%s-%d", g.prefix, g.counter)
}

// NextFunc exposes Next as a function suitable for dependency injection.
func (g *IDGenerator) NextFunc() func() string {
	if g == nil {
		return nil
	}
	return g.Next
}
