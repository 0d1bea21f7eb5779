package jobs

import (
	"context"
	"sync"
)

type memoryTracker struct {
	mu       sync.RWMutex
	statuses map[string]Status
}

// NewMemoryTracker keeps job status in process memory. Used when no Redis
// address is configured and in tests.
func NewMemoryTracker() Tracker {
	return &memoryTracker{statuses: make(map[string]Status)}
}

func (t *memoryTracker) SetState(_ context.Context, jobID, state string, detail interface{}) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.statuses[jobID] = Status{State: state, Detail: detail}
	return nil
}

func (t *memoryTracker) Status(_ context.Context, jobID string) Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if status, ok := t.statuses[jobID]; ok {
		return status
	}
	return Status{State: StatePending, Detail: pendingDetail}
}
