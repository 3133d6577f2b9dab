package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// fileSnapshot is the on-disk shape of the ledger file.
type fileSnapshot struct {
	SavedAt time.Time `json:"savedAt"`
	Entries []Entry   `json:"entries"`
}

// FileStore keeps the whole collection in a single JSON file, the
// local-only deployment shape. Writes go to a temp file first and are
// renamed into place so a crash mid-write cannot corrupt the ledger.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the ledger file. A missing file is an empty ledger.
func (fs *FileStore) Load(ctx context.Context) ([]Entry, error) {
	f, err := os.Open(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("ledger: open %s: %w", fs.path, err)
	}
	defer f.Close()

	var snap fileSnapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("ledger: decode %s: %w", fs.path, err)
	}
	if snap.Entries == nil {
		snap.Entries = []Entry{}
	}
	return snap.Entries, nil
}

// Save writes the collection atomically via temp file + rename.
func (fs *FileStore) Save(ctx context.Context, entries []Entry, origin string) error {
	snap := fileSnapshot{SavedAt: time.Now(), Entries: entries}

	tmp := fs.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("ledger: create %s: %w", tmp, err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("ledger: encode %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("ledger: close %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("ledger: rename %s: %w", tmp, err)
	}
	return nil
}
