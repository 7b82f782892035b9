package application

import (
	"context"
	"log"
	"time"
)

// RepairScheduler runs the weight reconciliation once a day.
type RepairScheduler struct {
	repairer *Repairer
	dailyAt  string
	logger   *log.Logger
}

// NewRepairScheduler constructs a RepairScheduler.
func NewRepairScheduler(repairer *Repairer, dailyAt string, logger *log.Logger) *RepairScheduler {
	return &RepairScheduler{repairer: repairer, dailyAt: dailyAt, logger: logger}
}

// Start begins the scheduler loop.
func (s *RepairScheduler) Start(ctx context.Context) {
	if s == nil || s.repairer == nil {
		return
	}
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if !s.shouldRun(now.UTC()) {
				continue
			}
			report, err := s.repairer.Run(ctx)
			if err != nil {
				if s.logger != nil {
					s.logger.Printf("repair schedule error: %v", err)
				}
				continue
			}
			if s.logger != nil {
				s.logger.Printf("repair run: checked=%d adjusted=%d overloads=%d",
					report.CheckedSlots, report.AdjustedSlots, len(report.Overloads))
			}
		}
	}
}

func (s *RepairScheduler) shouldRun(now time.Time) bool {
	t, err := time.Parse("15:04", s.dailyAt)
	if err != nil {
		return false
	}
	return now.Hour() == t.Hour() && now.Minute() == t.Minute()
}
