package jobs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Task is a unit of background work. The returned detail is recorded as the
// SUCCESS payload; a non-nil error marks the job FAILURE with the error text.
type Task func(ctx context.Context) (interface{}, error)

type job struct {
	id  string
	run Task
}

type Dispatcher interface {
	Submit(ctx context.Context, task Task) (string, error)
	Status(ctx context.Context, jobID string) Status
	Shutdown()
}

type dispatcher struct {
	tracker Tracker
	queue   chan job
	wg      sync.WaitGroup
	cancel  context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

// ErrDispatcherClosed is returned by Submit after Shutdown.
var ErrDispatcherClosed = errors.New("dispatcher is shut down")

// NewDispatcher starts workers goroutines draining a shared queue. Each
// submitted job moves PENDING -> STARTED -> SUCCESS or FAILURE in the tracker.
func NewDispatcher(tracker Tracker, workers int) Dispatcher {
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	d := &dispatcher{
		tracker: tracker,
		queue:   make(chan job, workers*8),
		cancel:  cancel,
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker(ctx)
	}
	return d
}

// Submit records PENDING and enqueues the task. Once PENDING is recorded the
// job is always handed to a worker: the send blocks until the pool drains,
// so no tracker record is left behind for a job that never runs.
func (d *dispatcher) Submit(ctx context.Context, task Task) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return "", ErrDispatcherClosed
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := uuid.New().String()
	if err := d.tracker.SetState(ctx, id, StatePending, pendingDetail); err != nil {
		return "", fmt.Errorf("failed to record pending job: %w", err)
	}
	d.queue <- job{id: id, run: task}
	return id, nil
}

func (d *dispatcher) Status(ctx context.Context, jobID string) Status {
	return d.tracker.Status(ctx, jobID)
}

// Shutdown stops accepting new work and waits for in-flight jobs. The queue
// is closed only after every pending Submit has released the lock, so no
// Submit can race the close.
func (d *dispatcher) Shutdown() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()

	d.cancel()
	close(d.queue)
	d.wg.Wait()
}

func (d *dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for j := range d.queue {
		d.execute(ctx, j)
	}
}

func (d *dispatcher) execute(ctx context.Context, j job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("job %s panicked: %v", j.id, r)
			if err := d.tracker.SetState(ctx, j.id, StateFailure, fmt.Sprintf("internal error: %v", r)); err != nil {
				log.Printf("failed to record job failure %s: %v", j.id, err)
			}
		}
	}()

	if err := d.tracker.SetState(ctx, j.id, StateStarted, "Task started"); err != nil {
		log.Printf("failed to record job start %s: %v", j.id, err)
	}

	detail, err := j.run(ctx)
	if err != nil {
		if trackErr := d.tracker.SetState(ctx, j.id, StateFailure, err.Error()); trackErr != nil {
			log.Printf("failed to record job failure %s: %v", j.id, trackErr)
		}
		return
	}

	if trackErr := d.tracker.SetState(ctx, j.id, StateSuccess, detail); trackErr != nil {
		log.Printf("failed to record job success %s: %v", j.id, trackErr)
	}
}
