package goodsin

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newReceipt(t *testing.T) *GoodsReceipt {
	t.Helper()
	receipt, err := NewGoodsReceipt("rcpt-1", "pallet wrap", 12, 36.5,
		decimal.NewFromFloat(4.99), "packaging", time.Now().UTC())
	if err != nil {
		t.Fatalf("new receipt: %v", err)
	}
	return receipt
}

func TestNewGoodsReceipt_Validation(t *testing.T) {
	now := time.Now().UTC()
	value := decimal.NewFromInt(1)

	if _, err := NewGoodsReceipt("", "item", 1, 1, value, "dep", now); !errors.Is(err, ErrEmptyID) {
		t.Fatalf("expected ErrEmptyID, got %v", err)
	}
	if _, err := NewGoodsReceipt("rcpt-1", "  ", 1, 1, value, "dep", now); !errors.Is(err, ErrEmptyItem) {
		t.Fatalf("expected ErrEmptyItem, got %v", err)
	}
	if _, err := NewGoodsReceipt("rcpt-1", "item", 0, 1, value, "dep", now); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := NewGoodsReceipt("rcpt-1", "item", 1, 0, value, "dep", now); !errors.Is(err, ErrInvalidWeight) {
		t.Fatalf("expected ErrInvalidWeight, got %v", err)
	}
	if _, err := NewGoodsReceipt("rcpt-1", "item", 1, 1, decimal.NewFromInt(-1), "dep", now); !errors.Is(err, ErrNegativeValue) {
		t.Fatalf("expected ErrNegativeValue, got %v", err)
	}
}

func TestTotalValue(t *testing.T) {
	receipt := newReceipt(t)
	want := decimal.NewFromFloat(59.88)
	if !receipt.TotalValue().Equal(want) {
		t.Fatalf("expected %s, got %s", want, receipt.TotalValue())
	}
}

func TestLifecycleTransitions(t *testing.T) {
	receipt := newReceipt(t)
	now := time.Now().UTC()

	if err := receipt.MarkPicked(now); !errors.Is(err, ErrNotStored) {
		t.Fatalf("expected ErrNotStored before storing, got %v", err)
	}
	if err := receipt.MarkStored("loc-1", "A01-0", now); err != nil {
		t.Fatalf("mark stored: %v", err)
	}
	if err := receipt.MarkStored("loc-2", "A02-0", now); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending on double store, got %v", err)
	}
	if err := receipt.MarkPicked(now); err != nil {
		t.Fatalf("mark picked: %v", err)
	}
	if receipt.Status != StatusPicked {
		t.Fatalf("expected picked status, got %s", receipt.Status)
	}
}
