package application

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"

	allocation "warehouse-cloud/internal/allocation/domain"
)

// Config defines allocation configuration.
type Config struct {
	// Tiers maps tier identifiers to the maximum aggregate weight (kg)
	// one shelf level of that tier may carry.
	Tiers         map[string]float64 `yaml:"tiers"`
	RepairDailyAt string             `yaml:"repair_daily_at"`
}

// LoadConfig loads allocation config from yaml or defaults. The reference
// deployment runs five tiers with ground carrying the most.
func LoadConfig() (Config, error) {
	cfg := Config{
		Tiers:         allocation.DefaultCapacityTable(),
		RepairDailyAt: getenvDefault("REPAIR_DAILY_AT", "02:30"),
	}

	if path := os.Getenv("WAREHOUSE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	if len(cfg.Tiers) == 0 {
		return cfg, errors.New("allocation config: no tiers configured")
	}
	for tier, max := range cfg.Tiers {
		if max <= 0 {
			return cfg, errors.New("allocation config: non-positive capacity for tier " + tier)
		}
	}
	if cfg.RepairDailyAt == "" {
		cfg.RepairDailyAt = "02:30"
	}
	return cfg, nil
}

// CapacityTable returns the configured tier capacities.
func (c Config) CapacityTable() allocation.CapacityTable {
	table := make(allocation.CapacityTable, len(c.Tiers))
	for tier, max := range c.Tiers {
		table[tier] = max
	}
	return table
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
