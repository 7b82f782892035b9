package application

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("WAREHOUSE_CONFIG", "")
	t.Setenv("REPAIR_DAILY_AT", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.Tiers) != 5 {
		t.Fatalf("expected 5 default tiers, got %d", len(cfg.Tiers))
	}
	if cfg.Tiers["0"] != 2000 {
		t.Fatalf("expected ground tier cap 2000, got %.1f", cfg.Tiers["0"])
	}
	if cfg.RepairDailyAt != "02:30" {
		t.Fatalf("expected default repair time, got %q", cfg.RepairDailyAt)
	}
}

func TestLoadConfig_YAMLOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.yaml")
	content := []byte("tiers:\n  \"0\": 3000\n  \"1\": 1200\nrepair_daily_at: \"04:15\"\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WAREHOUSE_CONFIG", path)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Tiers["0"] != 3000 {
		t.Fatalf("expected override cap 3000, got %.1f", cfg.Tiers["0"])
	}
	if cfg.RepairDailyAt != "04:15" {
		t.Fatalf("expected repair time 04:15, got %q", cfg.RepairDailyAt)
	}
}

func TestLoadConfig_RejectsNonPositiveTier(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.yaml")
	content := []byte("tiers:\n  \"0\": -10\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WAREHOUSE_CONFIG", path)

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for non-positive tier capacity")
	}
}
