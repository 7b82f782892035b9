package application

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	allocation "warehouse-cloud/internal/allocation/domain"
)

// LevelOccupancy summarizes one shelf level.
type LevelOccupancy struct {
	LevelKey    string  `json:"level_key"`
	Tier        string  `json:"tier"`
	SlotCount   int     `json:"slot_count"`
	WeightKg    float64 `json:"weight_kg"`
	CapKg       float64 `json:"cap_kg"`
	Utilization float64 `json:"utilization"`
}

// Summary is the warehouse occupancy overview.
type Summary struct {
	TotalSlots      int              `json:"total_slots"`
	OccupiedSlots   int              `json:"occupied_slots"`
	AvailableSlots  int              `json:"available_slots"`
	PendingReceipts int              `json:"pending_receipts"`
	OpenPicks       int              `json:"open_picks"`
	StockValue      decimal.Decimal  `json:"stock_value"`
	Levels          []LevelOccupancy `json:"levels"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// LocationLabel is one printable slot label.
type LocationLabel struct {
	Code        string
	MaxWeightKg float64
	Verified    bool
}

// Service aggregates dashboard figures straight from the database.
type Service struct {
	db         *sql.DB
	capacities allocation.CapacityTable
}

// NewService constructs a Service.
func NewService(db *sql.DB, capacities allocation.CapacityTable) (*Service, error) {
	if db == nil {
		return nil, errors.New("dashboard service: nil db")
	}
	if len(capacities) == 0 {
		return nil, errors.New("dashboard service: empty capacity table")
	}
	return &Service{db: db, capacities: capacities}, nil
}

// BuildSummary assembles the occupancy overview.
func (s *Service) BuildSummary(ctx context.Context) (*Summary, error) {
	summary := &Summary{StockValue: decimal.Zero, GeneratedAt: time.Now().UTC()}

	row := s.db.QueryRowContext(ctx, `
SELECT COUNT(*),
	COUNT(*) FILTER (WHERE current_weight_kg > 0),
	COUNT(*) FILTER (WHERE available AND verified)
FROM locations`)
	if err := row.Scan(&summary.TotalSlots, &summary.OccupiedSlots, &summary.AvailableSlots); err != nil {
		return nil, err
	}

	row = s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM goods_receipts WHERE status = 'pending'`)
	if err := row.Scan(&summary.PendingReceipts); err != nil {
		return nil, err
	}

	row = s.db.QueryRowContext(ctx, `
SELECT COUNT(*) FROM pick_orders WHERE status = 'open'`)
	if err := row.Scan(&summary.OpenPicks); err != nil {
		return nil, err
	}

	row = s.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(unit_value * quantity), 0)
FROM goods_receipts
WHERE status = 'stored'`)
	if err := row.Scan(&summary.StockValue); err != nil {
		return nil, err
	}

	levels, err := s.levelOccupancy(ctx)
	if err != nil {
		return nil, err
	}
	summary.Levels = levels
	return summary, nil
}

func (s *Service) levelOccupancy(ctx context.Context) ([]LevelOccupancy, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT row_letter || bay || '-' || level, level, COUNT(*), COALESCE(SUM(GREATEST(current_weight_kg, 0)), 0)
FROM locations
GROUP BY row_letter, bay, level
ORDER BY row_letter, bay, level`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []LevelOccupancy
	for rows.Next() {
		var entry LevelOccupancy
		if err := rows.Scan(&entry.LevelKey, &entry.Tier, &entry.SlotCount, &entry.WeightKg); err != nil {
			return nil, err
		}
		capKg, err := s.capacities.MaxWeight(entry.Tier)
		if err != nil {
			capKg = allocation.RepairDefaultMaxWeightKg
		}
		entry.CapKg = capKg
		if capKg > 0 {
			entry.Utilization = entry.WeightKg / capKg
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

// ListLabels returns one label row per slot, ordered by code.
func (s *Service) ListLabels(ctx context.Context) ([]LocationLabel, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT code, max_weight_kg, verified
FROM locations
ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []LocationLabel
	for rows.Next() {
		var label LocationLabel
		if err := rows.Scan(&label.Code, &label.MaxWeightKg, &label.Verified); err != nil {
			return nil, err
		}
		result = append(result, label)
	}
	return result, rows.Err()
}
