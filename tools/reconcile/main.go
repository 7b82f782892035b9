package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Compares slot counters against the goods ledger and writes a drift report.
// The HTTP repair endpoint fixes drift in place; this tool only reports it.

type config struct {
	dsn         string
	outDir      string
	toleranceKg float64
}

type slotRow struct {
	ID       string
	Code     string
	WeightKg float64
}

type driftRow struct {
	Code      string
	CounterKg float64
	LedgerKg  float64
	DriftKg   float64
}

func main() {
	cfg := parseFlags()
	if cfg.dsn == "" {
		log.Fatal("PG_DSN or DATABASE_URL is required")
	}

	db, err := sql.Open("pgx", cfg.dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	slots, err := loadSlots(ctx, db)
	if err != nil {
		log.Fatalf("load slots: %v", err)
	}
	ledger, err := loadLedgerWeights(ctx, db)
	if err != nil {
		log.Fatalf("load ledger: %v", err)
	}

	var drift []driftRow
	for _, slot := range slots {
		ledgerKg := ledger[slot.ID]
		delta := slot.WeightKg - ledgerKg
		if math.Abs(delta) > cfg.toleranceKg {
			drift = append(drift, driftRow{
				Code:      slot.Code,
				CounterKg: slot.WeightKg,
				LedgerKg:  ledgerKg,
				DriftKg:   delta,
			})
		}
	}
	sort.Slice(drift, func(i, j int) bool {
		return math.Abs(drift[i].DriftKg) > math.Abs(drift[j].DriftKg)
	})

	if len(drift) == 0 {
		log.Printf("no drift above %.3fkg across %d slots", cfg.toleranceKg, len(slots))
		return
	}

	path, err := writeReport(cfg.outDir, drift)
	if err != nil {
		log.Fatalf("write report: %v", err)
	}
	log.Printf("%d drifting slots of %d, report at %s", len(drift), len(slots), path)
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.dsn, "dsn", getenvDefault("PG_DSN", os.Getenv("DATABASE_URL")), "database dsn")
	flag.StringVar(&cfg.outDir, "out", "reconcile-out", "report output directory")
	flag.Float64Var(&cfg.toleranceKg, "tolerance", 0.001, "ignore drift at or below this many kg")
	flag.Parse()
	return cfg
}

func loadSlots(ctx context.Context, db *sql.DB) ([]slotRow, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, code, current_weight_kg
FROM locations
ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []slotRow
	for rows.Next() {
		var slot slotRow
		if err := rows.Scan(&slot.ID, &slot.Code, &slot.WeightKg); err != nil {
			return nil, err
		}
		result = append(result, slot)
	}
	return result, rows.Err()
}

func loadLedgerWeights(ctx context.Context, db *sql.DB) (map[string]float64, error) {
	rows, err := db.QueryContext(ctx, `
SELECT location_id, COALESCE(SUM(gross_weight_kg), 0)
FROM goods_receipts
WHERE status = 'stored' AND location_id IS NOT NULL
GROUP BY location_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weights := make(map[string]float64)
	for rows.Next() {
		var locationID string
		var weight float64
		if err := rows.Scan(&locationID, &weight); err != nil {
			return nil, err
		}
		weights[locationID] = weight
	}
	return weights, rows.Err()
}

func writeReport(outDir string, drift []driftRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(outDir, fmt.Sprintf("weight-drift-%s.csv", time.Now().UTC().Format("20060102T150405")))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"code", "counter_kg", "ledger_kg", "drift_kg"}); err != nil {
		return "", err
	}
	for _, row := range drift {
		record := []string{
			row.Code,
			fmt.Sprintf("%.3f", row.CounterKg),
			fmt.Sprintf("%.3f", row.LedgerKg),
			fmt.Sprintf("%.3f", row.DriftKg),
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}
	writer.Flush()
	return path, writer.Error()
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
