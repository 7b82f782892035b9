package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	allocation "warehouse-cloud/internal/allocation/domain"
	"warehouse-cloud/internal/ident"
)

type config struct {
	dsn        string
	rows       int
	bays       int
	tiers      int
	verifyAll  bool
	demoStock  int
	department string
}

func main() {
	cfg := parseFlags()
	if cfg.dsn == "" {
		log.Fatal("PG_DSN or DATABASE_URL is required")
	}
	if cfg.rows < 1 || cfg.rows > 26 {
		log.Fatal("rows must be between 1 and 26")
	}
	if cfg.bays < 1 || cfg.bays > 99 {
		log.Fatal("bays must be between 1 and 99")
	}
	if cfg.tiers < 1 || cfg.tiers > 5 {
		log.Fatal("tiers must be between 1 and 5")
	}

	db, err := sql.Open("pgx", cfg.dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	table := allocation.DefaultCapacityTable()

	log.Printf("seeding locations: rows=%d bays=%d tiers=%d", cfg.rows, cfg.bays, cfg.tiers)
	slots, err := seedLocations(ctx, db, cfg, table)
	if err != nil {
		log.Fatalf("seed locations: %v", err)
	}
	log.Printf("seeded %d slots", len(slots))

	if cfg.demoStock > 0 {
		log.Printf("seeding %d stored demo receipts", cfg.demoStock)
		if err := seedDemoStock(ctx, db, cfg, slots); err != nil {
			log.Fatalf("seed demo stock: %v", err)
		}
	}
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.dsn, "dsn", getenvDefault("PG_DSN", os.Getenv("DATABASE_URL")), "database dsn")
	flag.IntVar(&cfg.rows, "rows", 5, "number of racking rows (A..)")
	flag.IntVar(&cfg.bays, "bays", 10, "bays per row")
	flag.IntVar(&cfg.tiers, "tiers", 5, "tiers per bay (0..)")
	flag.BoolVar(&cfg.verifyAll, "verify", true, "mark seeded slots verified")
	flag.IntVar(&cfg.demoStock, "demo-stock", 0, "number of stored demo receipts to create")
	flag.StringVar(&cfg.department, "department", "general", "department for demo receipts")
	flag.Parse()
	return cfg
}

type seededSlot struct {
	id       string
	code     string
	capShare float64
}

func seedLocations(ctx context.Context, db *sql.DB, cfg config, table allocation.CapacityTable) ([]seededSlot, error) {
	now := time.Now().UTC()
	var slots []seededSlot
	for r := 0; r < cfg.rows; r++ {
		row := string(rune('A' + r))
		for b := 1; b <= cfg.bays; b++ {
			bay := fmt.Sprintf("%02d", b)
			for t := 0; t < cfg.tiers; t++ {
				level := fmt.Sprintf("%d", t)
				capKg, err := table.MaxWeight(level)
				if err != nil {
					return nil, err
				}
				id := ident.New("loc")
				code := row + bay + "-" + level
				_, err = db.ExecContext(ctx, `
INSERT INTO locations (
	id, code, row_letter, bay, level, max_weight_kg, current_weight_kg,
	available, verified, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,0,TRUE,$7,$8,$8)
ON CONFLICT (code) DO NOTHING`,
					id, code, row, bay, level, capKg, cfg.verifyAll, now)
				if err != nil {
					return nil, err
				}
				slots = append(slots, seededSlot{id: id, code: code, capShare: capKg})
			}
		}
	}
	return slots, nil
}

func seedDemoStock(ctx context.Context, db *sql.DB, cfg config, slots []seededSlot) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()
	for i := 0; i < cfg.demoStock && i < len(slots); i++ {
		slot := slots[rng.Intn(len(slots))]
		weight := 50 + rng.Float64()*150
		quantity := 1 + rng.Intn(20)
		unitValue := fmt.Sprintf("%.2f", 5+rng.Float64()*95)
		id := ident.New("rcpt")
		_, err := db.ExecContext(ctx, `
INSERT INTO goods_receipts (
	id, item_description, quantity, gross_weight_kg, unit_value, department,
	status, location_id, location_code, created_at, stored_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,'stored',$7,$8,$9,$9,$9)`,
			id, fmt.Sprintf("demo item %d", i+1), quantity, weight, unitValue,
			cfg.department, slot.id, slot.code, now)
		if err != nil {
			return err
		}
		_, err = db.ExecContext(ctx, `
UPDATE locations SET current_weight_kg = current_weight_kg + $2, updated_at = $3
WHERE id = $1`, slot.id, weight, now)
		if err != nil {
			return err
		}
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
