package memory

import (
	"context"
	"sync"

	"warehouse-cloud/internal/eventing"
)

type record struct {
	env    eventing.Envelope
	status string
}

// OutboxStore is an in-memory outbox for tests.
type OutboxStore struct {
	mu      sync.Mutex
	records []*record
}

// NewOutboxStore constructs an empty outbox.
func NewOutboxStore() *OutboxStore {
	return &OutboxStore{}
}

// Insert stores an envelope as pending.
func (s *OutboxStore) Insert(ctx context.Context, env eventing.Envelope) error {
	_ = ctx
	s.mu.Lock()
	s.records = append(s.records, &record{env: env, status: "pending"})
	s.mu.Unlock()
	return nil
}

// ListPending returns pending envelopes in insertion order.
func (s *OutboxStore) ListPending(ctx context.Context, limit int) ([]eventing.Envelope, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	var pending []eventing.Envelope
	for _, rec := range s.records {
		if rec.status != "pending" {
			continue
		}
		pending = append(pending, rec.env)
		if limit > 0 && len(pending) >= limit {
			break
		}
	}
	return pending, nil
}

// MarkSent marks an envelope delivered.
func (s *OutboxStore) MarkSent(ctx context.Context, eventID string) error {
	return s.setStatus(ctx, eventID, "sent")
}

// MarkFailed marks an envelope failed.
func (s *OutboxStore) MarkFailed(ctx context.Context, eventID string) error {
	return s.setStatus(ctx, eventID, "failed")
}

func (s *OutboxStore) setStatus(ctx context.Context, eventID, status string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.env.EventID == eventID {
			rec.status = status
		}
	}
	return nil
}
