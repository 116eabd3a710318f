package counter

import (
	"context"
	"sync"

	"weathercontract.app/pkg/errors"
)

// MemoryCounter implements AttemptCounter for a single process
type MemoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewMemoryCounter creates an empty in-process attempt counter
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{counts: make(map[string]int64)}
}

// Increment bumps the counter for key and returns the new value
func (c *MemoryCounter) Increment(_ context.Context, key string) (int64, error) {
	if key == "" {
		return 0, errors.NewValidationError("counter key cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

// Reset forgets the counter for key
func (c *MemoryCounter) Reset(_ context.Context, key string) error {
	if key == "" {
		return errors.NewValidationError("counter key cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, key)
	return nil
}
