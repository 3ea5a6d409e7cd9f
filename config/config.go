package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/buscheck/core/battery"
	"github.com/kilianp07/buscheck/core/check"
	"github.com/kilianp07/buscheck/core/metrics"
	"github.com/kilianp07/buscheck/core/normalize"
	"github.com/kilianp07/buscheck/infra/store"
)

// Config aggregates the settings of every component.
type Config struct {
	Battery   battery.Config   `json:"battery"`
	Checks    check.Config     `json:"checks"`
	Normalize normalize.Config `json:"normalize"`
	Metrics   metrics.Config   `json:"metrics"`
	Store     store.Config     `json:"store"`
}

// Default returns a configuration with all defaults applied, used when no
// config file is given.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

// Load reads configuration from a YAML or JSON file, applies environment
// overrides (BUSCHECK_ prefix, __ as separator), defaults, and validation.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("BUSCHECK_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "buscheck_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	c.Battery.SetDefaults()
	c.Checks.SetDefaults()
	c.Normalize.SetDefaults()
	c.Metrics.SetDefaults()
	c.Store.SetDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Battery.Validate(); err != nil {
		return fmt.Errorf("battery: %w", err)
	}
	if err := c.Checks.Validate(); err != nil {
		return fmt.Errorf("checks: %w", err)
	}
	if err := c.Normalize.Validate(); err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	return nil
}
