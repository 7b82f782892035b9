package eventing_test

import (
	"context"
	"testing"

	"warehouse-cloud/internal/eventing"
	"warehouse-cloud/internal/eventing/infrastructure/memory"
)

type testEvent struct {
	ReceiptID string `json:"receipt_id"`
	WeightKg  float64
}

func TestPublisher_DeliversThroughOutbox(t *testing.T) {
	bus := eventing.NewInMemoryBus()
	registry := eventing.NewRegistry()
	registry.Register(testEvent{})
	outbox := memory.NewOutboxStore()
	publisher := eventing.NewPublisher(outbox, bus, registry, "tenant-demo")

	var received []testEvent
	eventing.Subscribe(bus, eventing.EventTypeOf[testEvent](), "test.consumer", func(ctx context.Context, event any) error {
		evt, ok := event.(testEvent)
		if !ok {
			return eventing.ErrInvalidEventType
		}
		received = append(received, evt)
		return nil
	}, nil)

	if err := publisher.Publish(context.Background(), testEvent{ReceiptID: "rcpt-1", WeightKg: 120}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(received) != 1 || received[0].ReceiptID != "rcpt-1" {
		t.Fatalf("expected one delivered event, got %v", received)
	}

	pending, err := outbox.ListPending(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected outbox drained, got %d pending", len(pending))
	}
}

func TestSubscribe_ProcessedStoreDeduplicatesRedelivery(t *testing.T) {
	bus := eventing.NewInMemoryBus()
	processed := memory.NewProcessedStore()

	deliveries := 0
	eventing.Subscribe(bus, eventing.EventTypeOf[testEvent](), "test.consumer", func(ctx context.Context, event any) error {
		deliveries++
		return nil
	}, processed)

	env, err := eventing.BuildEnvelope(testEvent{ReceiptID: "rcpt-3"}, "tenant-demo")
	if err != nil {
		t.Fatalf("build envelope: %v", err)
	}
	ctx := eventing.WithEnvelope(context.Background(), env)
	for i := 0; i < 2; i++ {
		if err := bus.Publish(ctx, testEvent{ReceiptID: "rcpt-3"}); err != nil {
			t.Fatalf("publish: %v", err)
		}
	}
	if deliveries != 1 {
		t.Fatalf("expected one delivery after redelivery, got %d", deliveries)
	}
}

func TestPublisher_UnknownTypeStaysFailed(t *testing.T) {
	bus := eventing.NewInMemoryBus()
	registry := eventing.NewRegistry()
	outbox := memory.NewOutboxStore()
	publisher := eventing.NewPublisher(outbox, bus, registry, "tenant-demo")

	if err := publisher.Publish(context.Background(), testEvent{ReceiptID: "rcpt-2"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	pending, err := outbox.ListPending(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending after failed decode, got %d", len(pending))
	}
}
