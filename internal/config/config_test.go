package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultMatchesSpecScenarios(t *testing.T) {
	eng := Default()
	if eng.Risk.MaxOrderRate != 10 {
		t.Fatalf("MaxOrderRate = %d, want 10 (S4)", eng.Risk.MaxOrderRate)
	}
	if eng.ArbProfitThreshold != 0.30 {
		t.Fatalf("ArbProfitThreshold = %v, want 0.30 (S3)", eng.ArbProfitThreshold)
	}
	if eng.Risk.MaxPriceDeviation != 0.05 {
		t.Fatalf("MaxPriceDeviation = %v, want 0.05 (S5)", eng.Risk.MaxPriceDeviation)
	}
}

func TestLoadWithEmptyPathReturnsDefault(t *testing.T) {
	eng, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if !reflect.DeepEqual(eng, Default()) {
		t.Fatalf("Load(\"\") diverged from Default()")
	}
}

func TestLoadOverlaysFileOntoDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data, err := json.Marshal(fileConfig{MaxOrderRate: 25, ArbProfitThreshold: 0.5})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	eng, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if eng.Risk.MaxOrderRate != 25 {
		t.Fatalf("MaxOrderRate = %d, want 25", eng.Risk.MaxOrderRate)
	}
	if eng.ArbProfitThreshold != 0.5 {
		t.Fatalf("ArbProfitThreshold = %v, want 0.5", eng.ArbProfitThreshold)
	}
	// unset fields keep the default.
	if eng.Risk.MaxPriceDeviation != Default().Risk.MaxPriceDeviation {
		t.Fatalf("unset field should retain its default")
	}
}
