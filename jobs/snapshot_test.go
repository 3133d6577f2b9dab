package jobs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guestdesk/guestdesk/internal/ledger"
)

type fixedStore struct {
	entries []ledger.Entry
	loadErr error
}

func (s *fixedStore) Load(ctx context.Context) ([]ledger.Entry, error) {
	return s.entries, s.loadErr
}

func (s *fixedStore) Save(ctx context.Context, entries []ledger.Entry, origin string) error {
	return nil
}

func TestLedgerSnapshotJobWritesCSV(t *testing.T) {
	dir := t.TempDir()
	store := &fixedStore{entries: []ledger.Entry{
		{ID: "a", EnvelopeNumber: 1, Name: "김철수", Amount: 50000, Timestamp: time.Now()},
	}}

	job := NewLedgerSnapshotJob(store, dir, nil)
	job.clock = func() time.Time { return time.Date(2026, 5, 16, 14, 0, 0, 0, time.UTC) }

	task, err := NewLedgerSnapshotTask("manual")
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	path := filepath.Join(dir, "guests-20260516-140000-manual.csv")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 3 && data[0] == 0xEF, "snapshot starts with UTF-8 BOM")
	assert.Contains(t, string(data), "김철수")
}

func TestLedgerSnapshotJobLoadFailure(t *testing.T) {
	store := &fixedStore{loadErr: assert.AnError}
	job := NewLedgerSnapshotJob(store, t.TempDir(), nil)

	task, err := NewLedgerSnapshotTask("")
	require.NoError(t, err)
	assert.Error(t, job.Handle(context.Background(), task))
}
