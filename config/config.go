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
)

// Config is the full runtime configuration of the allocation pipeline.
type Config struct {
	Input   InputConfig   `json:"input"`
	Solver  SolverConfig  `json:"solver"`
	Output  OutputConfig  `json:"output"`
	Metrics MetricsConfig `json:"metrics"`
	MQTT    MQTTConfig    `json:"mqtt"`
}

// Load reads the configuration file at path. Yaml and json are supported,
// selected by extension. Environment variables prefixed with W_ override
// file values (W_SOLVER__BIG_M=2000 overrides solver.big_m).
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
	if err := k.Load(env.Provider("W_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "w_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Input.SetDefaults()
	cfg.Solver.SetDefaults()
	cfg.Output.SetDefaults()
	if err := cfg.Input.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Output.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
