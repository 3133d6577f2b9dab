package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"

	"github.com/guestdesk/guestdesk/internal/ledger"
	"github.com/guestdesk/guestdesk/internal/ledger/export"
)

// LedgerSnapshotJob writes a timestamped CSV copy of the ledger to disk,
// so the register survives the event machine dying mid-reception.
type LedgerSnapshotJob struct {
	Store  ledger.Store
	Dir    string
	Logger *slog.Logger
	clock  func() time.Time
}

// NewLedgerSnapshotJob wires dependencies for the snapshot handler.
func NewLedgerSnapshotJob(store ledger.Store, dir string, logger *slog.Logger) *LedgerSnapshotJob {
	return &LedgerSnapshotJob{
		Store:  store,
		Dir:    dir,
		Logger: logger,
		clock:  time.Now,
	}
}

// Handle processes ledger snapshot tasks.
func (j *LedgerSnapshotJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Store == nil {
		return errors.New("ledger snapshot: handler not configured")
	}
	var payload LedgerSnapshotPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Reason == "" {
		payload.Reason = "scheduled"
	}

	logger := j.logger().With(slog.String("reason", payload.Reason))

	entries, err := j.Store.Load(ctx)
	if err != nil {
		logger.Error("load ledger for snapshot", slog.Any("error", err))
		return err
	}

	if err := os.MkdirAll(j.Dir, 0o755); err != nil {
		return fmt.Errorf("jobs: snapshot dir: %w", err)
	}

	name := fmt.Sprintf("guests-%s-%s.csv", j.clock().Format("20060102-150405"), payload.Reason)
	path := filepath.Join(j.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("jobs: create snapshot: %w", err)
	}
	if err := export.WriteCSV(f, entries); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("jobs: write snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("jobs: close snapshot: %w", err)
	}

	logger.Info("ledger snapshot written", slog.String("path", path), slog.Int("entries", len(entries)))
	return nil
}

func (j *LedgerSnapshotJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
