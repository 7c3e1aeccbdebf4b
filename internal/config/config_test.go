package config

import (
	"strings"
	"testing"
)

func TestDefaultMatchesSpec(t *testing.T) {
	cfg := Default()

	if cfg.Dust.BaseWSH != 330 {
		t.Errorf("BaseWSH = %d, want 330", cfg.Dust.BaseWSH)
	}
	if cfg.Dust.HardCap != 5000 {
		t.Errorf("HardCap = %d, want 5000", cfg.Dust.HardCap)
	}
	if cfg.Stamp.DustValue != 330 {
		t.Errorf("Stamp.DustValue = %d, want 330", cfg.Stamp.DustValue)
	}
	if cfg.Stamp.EnableCompression {
		t.Error("Stamp.EnableCompression must default to false")
	}
	if cfg.SRC20.MinOutputValue != 500_000 {
		t.Errorf("SRC20.MinOutputValue = %d, want 500000", cfg.SRC20.MinOutputValue)
	}
}

func TestLoadYAMLOverridesSubset(t *testing.T) {
	yamlDoc := `
dust:
  base_wsh: 400
stamp:
  max_outputs: 10
`
	cfg, err := LoadYAML(strings.NewReader(yamlDoc))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if cfg.Dust.BaseWSH != 400 {
		t.Errorf("BaseWSH = %d, want 400", cfg.Dust.BaseWSH)
	}
	if cfg.Stamp.MaxOutputs != 10 {
		t.Errorf("MaxOutputs = %d, want 10", cfg.Stamp.MaxOutputs)
	}
	// Unmentioned fields keep their default.
	if cfg.SRC20.MinOutputValue != 500_000 {
		t.Errorf("SRC20.MinOutputValue = %d, want 500000 (default preserved)", cfg.SRC20.MinOutputValue)
	}
}

func TestLoadYAMLEmpty(t *testing.T) {
	cfg, err := LoadYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadYAML: %v", err)
	}
	if cfg.Dust.BaseWSH != 330 {
		t.Errorf("empty input should yield defaults, got BaseWSH=%d", cfg.Dust.BaseWSH)
	}
}
