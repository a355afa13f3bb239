package database

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// GenerateID returns a UUIDv7 string. Within one process successive ids sort
// in creation order.
func GenerateID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

// clock hands out epoch-millisecond timestamps that never go backwards, even
// if the wall clock is stepped back between calls.
type clock struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func newClock(now func() time.Time) *clock {
	if now == nil {
		now = time.Now
	}
	return &clock{now: now}
}

func (c *clock) Millis() int64 {
	ms := c.now().UnixMilli()

	c.mu.Lock()
	defer c.mu.Unlock()
	if ms < c.last {
		ms = c.last
	}
	c.last = ms
	return ms
}
