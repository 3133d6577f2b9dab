package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service is the sole owner of the guest-entry collection. All mutations
// go through its mutex, so envelope numbers are assigned serially and the
// in-memory collection only advances after a successful persist.
type Service struct {
	store  Store
	feed   Feed
	logger *slog.Logger
	origin string
	clock  func() time.Time

	mu      sync.Mutex
	entries []Entry
	closed  bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithFeed attaches a change feed; every foreign event triggers a reload
// of the collection from the store.
func WithFeed(feed Feed) Option {
	return func(s *Service) { s.feed = feed }
}

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// Open loads the collection from the store and returns a ready service.
// A failed initial load is logged and the ledger starts empty; the store
// will be overwritten on the next successful mutation. When a feed is
// configured a watcher goroutine keeps the collection in sync until Close.
func Open(ctx context.Context, store Store, opts ...Option) (*Service, error) {
	s := &Service{
		store:  store,
		logger: slog.Default(),
		origin: uuid.NewString(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	entries, err := store.Load(ctx)
	if err != nil {
		s.logger.Error("initial ledger load failed, starting empty", slog.Any("error", err))
		entries = nil
	}
	s.entries = entries

	if s.feed != nil {
		watchCtx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		events, err := s.feed.Subscribe(watchCtx)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("ledger: subscribe: %w", err)
		}
		s.wg.Add(1)
		go s.watch(watchCtx, events)
	}

	return s, nil
}

// Origin returns the instance tag used to mark this service's writes.
func (s *Service) Origin() string { return s.origin }

// List returns a copy of the current, unsorted collection.
func (s *Service) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry with the given id.
func (s *Service) Get(id string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrNotFound
}

// Add creates an entry from the draft: fresh id, next envelope number,
// creation timestamp. The draft is trusted as given; field constraints
// are the caller's concern. The new entry is returned so the caller can
// highlight it.
func (s *Service) Add(ctx context.Context, draft Draft) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Entry{}, ErrClosed
	}

	entry := Entry{
		ID:             uuid.NewString(),
		EnvelopeNumber: NextEnvelopeNumber(s.entries),
		Name:           draft.Name,
		Amount:         draft.Amount,
		MealTickets:    draft.MealTickets,
		Message:        draft.Message,
		Timestamp:      s.clock(),
	}

	next := make([]Entry, len(s.entries), len(s.entries)+1)
	copy(next, s.entries)
	next = append(next, entry)

	if err := s.store.Save(ctx, next, s.origin); err != nil {
		return Entry{}, fmt.Errorf("ledger: add: %w", err)
	}
	s.entries = next
	return entry, nil
}

// Update applies the patch to the entry with the given id. Nil patch
// fields are untouched; id and timestamp are never changed.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Entry{}, ErrClosed
	}

	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Entry{}, ErrNotFound
	}

	updated := patch.apply(s.entries[idx])
	next := make([]Entry, len(s.entries))
	copy(next, s.entries)
	next[idx] = updated

	if err := s.store.Save(ctx, next, s.origin); err != nil {
		return Entry{}, fmt.Errorf("ledger: update: %w", err)
	}
	s.entries = next
	return updated, nil
}

// Remove deletes the entry with the given id. The envelope number is not
// reused; remaining entries keep their numbers.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	next := make([]Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:idx]...)
	next = append(next, s.entries[idx+1:]...)

	if err := s.store.Save(ctx, next, s.origin); err != nil {
		return fmt.Errorf("ledger: remove: %w", err)
	}
	s.entries = next
	return nil
}

// Clear empties the ledger.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := s.store.Save(ctx, []Entry{}, s.origin); err != nil {
		return fmt.Errorf("ledger: clear: %w", err)
	}
	s.entries = nil
	return nil
}

// Stats derives aggregate statistics from the current collection.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeStats(s.entries)
}

// NextNumber previews the envelope number the next Add would assign.
// It is not reserved; the authoritative assignment happens inside Add.
func (s *Service) NextNumber() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NextEnvelopeNumber(s.entries)
}

// Reload replaces the in-memory collection with the store's current state.
func (s *Service) Reload(ctx context.Context) error {
	entries, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("ledger: reload: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.entries = entries
	return nil
}

// Close tears down the change subscription and rejects further mutations.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	return nil
}

// watch consumes the change feed and reloads on foreign events. The
// store stays authoritative: a local optimistic state may be replaced
// once a round-tripped notification lands, which is fine under the
// last-write-wins contract.
func (s *Service) watch(ctx context.Context, events <-chan ChangeEvent) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Origin == s.origin {
				continue
			}
			reloadCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := s.Reload(reloadCtx); err != nil && !errors.Is(err, ErrClosed) {
				s.logger.Warn("ledger reload after change event failed", slog.Any("error", err))
			}
			cancel()
		}
	}
}
