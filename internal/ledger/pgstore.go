package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/guestdesk/guestdesk/internal/platform/db"
)

// PGStore persists the collection in Postgres, the remote-backed
// deployment shape. Save replaces the whole table in one transaction,
// keeping the snapshot semantics of the contract, then publishes a
// change notification so other sessions re-fetch.
type PGStore struct {
	pool      *pgxpool.Pool
	publisher *redis.Client
	channel   string
	logger    *slog.Logger
}

// NewPGStore returns a Postgres-backed store. The publisher is optional;
// without it saves are silent and other sessions rely on polling.
func NewPGStore(pool *pgxpool.Pool, publisher *redis.Client, logger *slog.Logger) *PGStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PGStore{pool: pool, publisher: publisher, channel: ChangeChannel, logger: logger}
}

// EnsureSchema creates the guest_entries table when missing.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS guest_entries (
		id UUID PRIMARY KEY,
		envelope_number INT NOT NULL,
		name TEXT NOT NULL,
		amount BIGINT NOT NULL DEFAULT 0,
		meal_tickets INT NOT NULL DEFAULT 0,
		message TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ledger: ensure schema: %w", pgErr(err))
	}
	return nil
}

// Load reads the full collection.
func (s *PGStore) Load(ctx context.Context) ([]Entry, error) {
	const query = `SELECT id, envelope_number, name, amount, meal_tickets, message, created_at
		FROM guest_entries`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ledger: load: %w", pgErr(err))
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.EnvelopeNumber, &e.Name, &e.Amount, &e.MealTickets, &e.Message, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("ledger: scan: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger: load: %w", pgErr(err))
	}
	return entries, nil
}

// Save replaces the stored collection inside one transaction and, on
// commit, publishes the writer's origin tag to the change channel.
func (s *PGStore) Save(ctx context.Context, entries []Entry, origin string) error {
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM guest_entries`); err != nil {
			return fmt.Errorf("ledger: clear table: %w", pgErr(err))
		}
		if len(entries) == 0 {
			return nil
		}
		rows := make([][]any, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []any{e.ID, e.EnvelopeNumber, e.Name, e.Amount, e.MealTickets, e.Message, e.Timestamp})
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"guest_entries"},
			[]string{"id", "envelope_number", "name", "amount", "meal_tickets", "message", "created_at"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("ledger: copy entries: %w", pgErr(err))
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, s.channel, origin).Err(); err != nil {
			// The write itself succeeded; peers will catch up on their
			// next event or restart.
			s.logger.Warn("publish ledger change", slog.Any("error", err))
		}
	}
	return nil
}

// pgErr surfaces the SQLSTATE when the driver reports one.
func pgErr(err error) error {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return fmt.Errorf("%s (SQLSTATE %s)", pge.Message, pge.Code)
	}
	return err
}
