package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreMissingFileIsEmptyLedger(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "ledger.json"))
	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	store := NewFileStore(path)
	ctx := context.Background()

	want := []Entry{
		{ID: "a", EnvelopeNumber: 1, Name: "김철수", Amount: 50000, MealTickets: 2, Timestamp: time.Now().Truncate(time.Second)},
		{ID: "b", EnvelopeNumber: 2, Name: "이영희", Amount: 100000, Message: "축하해요", Timestamp: time.Now().Truncate(time.Second)},
	}
	require.NoError(t, store.Save(ctx, want, "tag"))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, want[0].Name, got[0].Name)
	assert.Equal(t, want[1].Message, got[1].Message)
	assert.True(t, want[1].Timestamp.Equal(got[1].Timestamp))

	// No temp file left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreCorruptFileSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(path)
	_, err := store.Load(context.Background())
	assert.Error(t, err)
}

func TestFileStoreServiceIntegration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.json")
	ctx := context.Background()

	svc, err := Open(ctx, NewFileStore(path))
	require.NoError(t, err)
	_, err = svc.Add(ctx, Draft{Name: "A", Amount: 30000})
	require.NoError(t, err)
	_, err = svc.Add(ctx, Draft{Name: "B", Amount: 50000})
	require.NoError(t, err)
	require.NoError(t, svc.Close())

	// A fresh service picks the sequence up where the file left it.
	svc2, err := Open(ctx, NewFileStore(path))
	require.NoError(t, err)
	defer svc2.Close()

	require.Len(t, svc2.List(), 2)
	entry, err := svc2.Add(ctx, Draft{Name: "C"})
	require.NoError(t, err)
	assert.Equal(t, 3, entry.EnvelopeNumber)
}
