package ledger

import "context"

// Store persists the full entry collection. The ledger is small (one
// event's worth of envelopes), so every mutation writes the whole set,
// mirroring the snapshot semantics of the backing stores.
type Store interface {
	// Load returns the current collection. An empty store returns an
	// empty slice, not an error.
	Load(ctx context.Context) ([]Entry, error)
	// Save replaces the stored collection. The origin tag identifies the
	// writing service instance so change feeds can suppress echoes.
	Save(ctx context.Context, entries []Entry, origin string) error
}

// ChangeEvent signals that the backing store's collection changed.
type ChangeEvent struct {
	// Origin is the instance tag of the writer, empty when unknown.
	Origin string
}

// Feed streams change notifications from a shared backing store.
// Subscribe delivers events until ctx is cancelled; the returned channel
// is closed when the subscription ends.
type Feed interface {
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}
