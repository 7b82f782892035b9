package application

import (
	"testing"
	"time"
)

func TestScheduler_ShouldRunOnlyAtConfiguredMinute(t *testing.T) {
	scheduler := NewRepairScheduler(nil, "02:30", nil)

	at := time.Date(2026, 3, 14, 2, 30, 45, 0, time.UTC)
	if !scheduler.shouldRun(at) {
		t.Fatal("expected run at 02:30")
	}
	if scheduler.shouldRun(at.Add(time.Minute)) {
		t.Fatal("expected no run at 02:31")
	}
	if scheduler.shouldRun(at.Add(time.Hour)) {
		t.Fatal("expected no run at 03:30")
	}
}

func TestScheduler_InvalidTimeNeverRuns(t *testing.T) {
	scheduler := NewRepairScheduler(nil, "half past two", nil)
	if scheduler.shouldRun(time.Now().UTC()) {
		t.Fatal("expected no run with unparseable schedule")
	}
}
