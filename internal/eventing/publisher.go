package eventing

import "context"

// OutboxStore persists envelopes until delivery.
type OutboxStore interface {
	Insert(ctx context.Context, env Envelope) error
	ListPending(ctx context.Context, limit int) ([]Envelope, error)
	MarkSent(ctx context.Context, eventID string) error
	MarkFailed(ctx context.Context, eventID string) error
}

// Publisher writes events through the outbox and delivers them in-process.
// Delivery after the outbox write keeps consumers eventually consistent
// even when the process dies between write and dispatch: the next dispatch
// picks the pending record up again.
type Publisher struct {
	outbox   OutboxStore
	bus      EventBus
	registry *Registry
	tenantID string
}

// NewPublisher constructs a publisher.
func NewPublisher(outbox OutboxStore, bus EventBus, registry *Registry, tenantID string) *Publisher {
	return &Publisher{outbox: outbox, bus: bus, registry: registry, tenantID: tenantID}
}

// Publish persists the event and triggers one dispatch round.
func (p *Publisher) Publish(ctx context.Context, event any) error {
	if p == nil || p.outbox == nil {
		return nil
	}
	env, err := BuildEnvelope(event, p.tenantID)
	if err != nil {
		return err
	}
	if err := p.outbox.Insert(ctx, env); err != nil {
		return err
	}
	return p.Dispatch(ctx, 50)
}

// Dispatch delivers pending outbox envelopes to the bus.
func (p *Publisher) Dispatch(ctx context.Context, limit int) error {
	if p == nil || p.outbox == nil || p.bus == nil || p.registry == nil {
		return nil
	}
	if limit <= 0 {
		limit = 50
	}
	pending, err := p.outbox.ListPending(ctx, limit)
	if err != nil {
		return err
	}
	for _, env := range pending {
		payload, err := p.registry.DecodePayload(env)
		if err != nil {
			_ = p.outbox.MarkFailed(ctx, env.EventID)
			continue
		}
		if err := p.bus.Publish(WithEnvelope(ctx, env), payload); err != nil {
			_ = p.outbox.MarkFailed(ctx, env.EventID)
			continue
		}
		_ = p.outbox.MarkSent(ctx, env.EventID)
	}
	return nil
}
