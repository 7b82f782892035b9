package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"warehouse-cloud/internal/eventing"
)

const defaultOutboxTable = "event_outbox"

// OutboxStore is a Postgres implementation for outbox envelopes.
type OutboxStore struct {
	db    *sql.DB
	table string
}

// NewOutboxStore constructs an outbox store.
func NewOutboxStore(db *sql.DB, opts ...OutboxOption) *OutboxStore {
	store := &OutboxStore{db: db, table: defaultOutboxTable}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// OutboxOption configures the outbox store.
type OutboxOption func(*OutboxStore)

// WithOutboxTable overrides the table name.
func WithOutboxTable(table string) OutboxOption {
	return func(store *OutboxStore) {
		if table != "" {
			store.table = table
		}
	}
}

// Insert writes an envelope to the outbox.
func (s *OutboxStore) Insert(ctx context.Context, env eventing.Envelope) error {
	if s == nil || s.db == nil {
		return errors.New("outbox store: nil db")
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
INSERT INTO %s (event_id, event_type, payload, status, attempts, created_at)
VALUES ($1, $2, $3, 'pending', 0, $4)
ON CONFLICT (event_id) DO NOTHING`, s.table)

	_, err = s.db.ExecContext(ctx, query, env.EventID, env.EventType, payload, time.Now().UTC())
	return err
}

// ListPending returns pending envelopes in insertion order.
func (s *OutboxStore) ListPending(ctx context.Context, limit int) ([]eventing.Envelope, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("outbox store: nil db")
	}
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(`
SELECT payload
FROM %s
WHERE status = 'pending'
ORDER BY created_at ASC
LIMIT $1`, s.table)

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []eventing.Envelope
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var env eventing.Envelope
		if err := json.Unmarshal(payload, &env); err != nil {
			return nil, err
		}
		pending = append(pending, env)
	}
	return pending, rows.Err()
}

// MarkSent marks an envelope as delivered.
func (s *OutboxStore) MarkSent(ctx context.Context, eventID string) error {
	return s.setStatus(ctx, eventID, "sent", false)
}

// MarkFailed marks an envelope as failed and counts the attempt.
func (s *OutboxStore) MarkFailed(ctx context.Context, eventID string) error {
	return s.setStatus(ctx, eventID, "failed", true)
}

func (s *OutboxStore) setStatus(ctx context.Context, eventID, status string, countAttempt bool) error {
	if s == nil || s.db == nil {
		return errors.New("outbox store: nil db")
	}
	attempts := ""
	if countAttempt {
		attempts = ", attempts = attempts + 1"
	}
	query := fmt.Sprintf(`
UPDATE %s SET status = $2, updated_at = $3%s
WHERE event_id = $1`, s.table, attempts)
	_, err := s.db.ExecContext(ctx, query, eventID, status, time.Now().UTC())
	return err
}
