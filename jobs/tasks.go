// Package jobs wires background work through asynq: periodic CSV
// snapshots of the ledger and the queue plumbing around them.
package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Queue names.
const (
	QueueDefault = "default"
)

// Task type identifiers.
const (
	TaskLedgerSnapshot = "ledger:snapshot"
)

// LedgerSnapshotPayload parameterizes a snapshot run.
type LedgerSnapshotPayload struct {
	// Reason distinguishes scheduled runs from operator-requested ones
	// in logs and snapshot filenames.
	Reason string `json:"reason"`
}

// NewLedgerSnapshotTask builds a snapshot task.
func NewLedgerSnapshotTask(reason string) (*asynq.Task, error) {
	if reason == "" {
		reason = "scheduled"
	}
	payload, err := json.Marshal(LedgerSnapshotPayload{Reason: reason})
	if err != nil {
		return nil, fmt.Errorf("jobs: marshal snapshot payload: %w", err)
	}
	return asynq.NewTask(TaskLedgerSnapshot, payload), nil
}
