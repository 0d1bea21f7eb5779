package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const statusTTL = 24 * time.Hour

type redisTracker struct {
	client *redis.Client
}

// NewRedisTracker connects to Redis and verifies the connection. Job status
// survives process restarts, which keeps polling meaningful across deploys.
func NewRedisTracker(addr, password string) (Tracker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisTracker{client: client}, nil
}

func statusKey(jobID string) string {
	return fmt.Sprintf("jobs:status:%s", jobID)
}

func (t *redisTracker) SetState(ctx context.Context, jobID, state string, detail interface{}) error {
	data, err := json.Marshal(Status{State: state, Detail: detail})
	if err != nil {
		return fmt.Errorf("failed to marshal job status: %w", err)
	}
	return t.client.Set(ctx, statusKey(jobID), data, statusTTL).Err()
}

func (t *redisTracker) Status(ctx context.Context, jobID string) Status {
	data, err := t.client.Get(ctx, statusKey(jobID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("failed to read job status %s: %v", jobID, err)
		}
		return Status{State: StatePending, Detail: pendingDetail}
	}

	var status Status
	if err := json.Unmarshal(data, &status); err != nil {
		log.Printf("failed to unmarshal job status %s: %v", jobID, err)
		return Status{State: StatePending, Detail: pendingDetail}
	}
	return status
}
