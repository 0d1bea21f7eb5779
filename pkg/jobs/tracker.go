package jobs

import (
	"context"
)

// Job states mirror the lifecycle of a queued task:
// PENDING -> STARTED -> SUCCESS | FAILURE. SUCCESS and FAILURE are terminal.
const (
	StatePending = "PENDING"
	StateStarted = "STARTED"
	StateSuccess = "SUCCESS"
	StateFailure = "FAILURE"
)

const pendingDetail = "Task pending"

type Status struct {
	State  string      `json:"state"`
	Detail interface{} `json:"detail"`
}

// Tracker stores job status keyed by job id. An unknown id reports PENDING:
// the store cannot distinguish a never-submitted job from one that has not
// been picked up yet.
type Tracker interface {
	SetState(ctx context.Context, jobID, state string, detail interface{}) error
	Status(ctx context.Context, jobID string) Status
}
