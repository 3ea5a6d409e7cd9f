package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Battery.RatedCapacityKWh != 300 || cfg.Battery.SOH != 0.90 {
		t.Fatalf("battery defaults not applied: %+v", cfg.Battery)
	}
	if cfg.Checks.CoverageGranularity != "minute" {
		t.Fatalf("granularity default not applied: %q", cfg.Checks.CoverageGranularity)
	}
	if cfg.Normalize.MaxConsumptionPerKm != 2.5 {
		t.Fatalf("normalize defaults not applied: %+v", cfg.Normalize)
	}
	require.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "cfg.yaml", `
battery:
  rated_capacity_kwh: 350
  strict_halt: true
checks:
  coverage_granularity: second
store:
  enabled: true
  path: runs.db
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	if cfg.Battery.RatedCapacityKWh != 350 || !cfg.Battery.StrictHalt {
		t.Fatalf("battery section not loaded: %+v", cfg.Battery)
	}
	if cfg.Battery.SOH != 0.90 {
		t.Fatalf("defaults must fill unset fields, got SOH %v", cfg.Battery.SOH)
	}
	if cfg.Checks.CoverageGranularity != "second" {
		t.Fatalf("granularity not loaded: %q", cfg.Checks.CoverageGranularity)
	}
	if !cfg.Store.Enabled || cfg.Store.Path != "runs.db" {
		t.Fatalf("store section not loaded: %+v", cfg.Store)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"metrics":{"prometheus_enabled":true,"prometheus_port":"9999"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	if !cfg.Metrics.PrometheusEnabled || cfg.Metrics.PrometheusPort != "9999" {
		t.Fatalf("metrics section not loaded: %+v", cfg.Metrics)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := writeFile(t, "cfg.yaml", "checks:\n  coverage_granularity: hour\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "cfg.toml", "x = 1\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	require.NoError(t, os.Setenv("BUSCHECK_BATTERY__SOH", "0.85"))
	defer func() { require.NoError(t, os.Unsetenv("BUSCHECK_BATTERY__SOH")) }()
	path := writeFile(t, "cfg.yaml", "battery:\n  rated_capacity_kwh: 300\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	if cfg.Battery.SOH != 0.85 {
		t.Fatalf("env override not applied: %v", cfg.Battery.SOH)
	}
}
