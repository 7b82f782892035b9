package application

import (
	"context"
	"errors"
	"testing"

	allocation "warehouse-cloud/internal/allocation/domain"
)

type stubSource struct {
	candidates []allocation.Location
	err        error
	calls      int
}

func (s *stubSource) CandidateLocations(ctx context.Context) ([]allocation.Location, error) {
	s.calls++
	return s.candidates, s.err
}

func slot(code string, weight float64) allocation.Location {
	return allocation.Location{
		ID:            "loc-" + code,
		Code:          code,
		Row:           code[:1],
		Bay:           code[1:3],
		Level:         code[4:],
		MaxWeightKg:   500,
		CurrentWeight: weight,
		Available:     true,
		Verified:      true,
	}
}

func TestSuggest_PicksBestSlot(t *testing.T) {
	source := &stubSource{candidates: []allocation.Location{
		slot("B03-0", 0),
		slot("A01-0", 0),
	}}
	service, err := NewService(source, allocation.DefaultCapacityTable())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	chosen, err := service.Suggest(context.Background(), 100)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if chosen == nil || chosen.Code != "A01-0" {
		t.Fatalf("expected A01-0, got %+v", chosen)
	}
	if source.calls != 1 {
		t.Fatalf("expected one snapshot fetch, got %d", source.calls)
	}
}

func TestSuggest_NoCandidates(t *testing.T) {
	service, err := NewService(&stubSource{}, allocation.DefaultCapacityTable())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	chosen, err := service.Suggest(context.Background(), 100)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if chosen != nil {
		t.Fatalf("expected no suggestion, got %+v", chosen)
	}
}

func TestSuggest_SourceError(t *testing.T) {
	wantErr := errors.New("snapshot failed")
	service, err := NewService(&stubSource{err: wantErr}, allocation.DefaultCapacityTable())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := service.Suggest(context.Background(), 100); !errors.Is(err, wantErr) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestSuggest_UnknownTierFault(t *testing.T) {
	bad := slot("A01-0", 0)
	bad.Level = "9"
	bad.Code = "A01-9"
	service, err := NewService(&stubSource{candidates: []allocation.Location{bad}}, allocation.DefaultCapacityTable())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := service.Suggest(context.Background(), 100); !errors.Is(err, allocation.ErrUnknownTier) {
		t.Fatalf("expected ErrUnknownTier, got %v", err)
	}
}

func TestNewService_Validation(t *testing.T) {
	if _, err := NewService(nil, allocation.DefaultCapacityTable()); err == nil {
		t.Fatal("expected error for nil source")
	}
	if _, err := NewService(&stubSource{}, nil); err == nil {
		t.Fatal("expected error for empty capacity table")
	}
}
