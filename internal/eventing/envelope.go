package eventing

import (
	"context"
	"encoding/json"
	"time"

	"warehouse-cloud/internal/ident"
)

// Envelope wraps an event payload with delivery metadata.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	TenantID      string          `json:"tenant_id"`
	SchemaVersion int             `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// BuildEnvelope constructs an envelope around the event payload.
func BuildEnvelope(event any, tenantID string) (Envelope, error) {
	if event == nil {
		return Envelope{}, ErrNilEvent
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:       ident.New("evt"),
		EventType:     EventType(event),
		OccurredAt:    time.Now().UTC(),
		TenantID:      tenantID,
		SchemaVersion: 1,
		Payload:       payload,
	}, nil
}

type contextKey string

const contextKeyEnvelope contextKey = "eventing.envelope"

// WithEnvelope attaches envelope metadata to context.
func WithEnvelope(ctx context.Context, env Envelope) context.Context {
	return context.WithValue(ctx, contextKeyEnvelope, env)
}

// EnvelopeFromContext returns envelope metadata if available.
func EnvelopeFromContext(ctx context.Context) (Envelope, bool) {
	env, ok := ctx.Value(contextKeyEnvelope).(Envelope)
	return env, ok
}
