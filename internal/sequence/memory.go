package sequence

import (
	"context"
	"sync"
)

// Memory is the in-process counter used in static store mode.
// Counters reset when the process restarts, which matches the static
// mode's in-memory order store: orders and counters live and die together.
type Memory struct {
	mu   sync.Mutex
	days map[string]int64
}

func NewMemory() *Memory {
	return &Memory{days: make(map[string]int64)}
}

func (m *Memory) Next(ctx context.Context, day string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.days[day]++
	return m.days[day], nil
}
