package usecase

import (
	"sync"

	"NPSLabeler/internal/labeling"
)

// scoreMemo caches classifier scores by response text. Identical responses
// are common in survey exports, and scoring is by far the slowest step. The
// cache lives for a single run; Run resets it so later runs score against
// the current model state.
type scoreMemo struct {
	mu sync.Mutex
	m  map[string]labeling.Scores
}

func newScoreMemo() *scoreMemo {
	return &scoreMemo{m: make(map[string]labeling.Scores)}
}

func (c *scoreMemo) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string]labeling.Scores)
}

func (c *scoreMemo) get(text string) (labeling.Scores, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	scores, ok := c.m[text]
	return scores, ok
}

func (c *scoreMemo) put(text string, scores labeling.Scores) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[text] = scores
}
