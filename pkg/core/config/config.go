// Package config loads runtime settings for the API server and CLIs from
// config/app.yaml, a .env file and VALUATION_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"reit_valuation/pkg/core/assumption"
)

// DefaultPath is where Load looks for the YAML file.
const DefaultPath = "config/app.yaml"

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Valuation ValuationConfig `yaml:"valuation"`
}

type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	CORSOrigins  []string `yaml:"cors_origins"`
}

type ValuationConfig struct {
	Locale        string          `yaml:"locale"`         // "zh-CN" or "en"
	ScenarioDelta float64         `yaml:"scenario_delta"` // Percent
	Defaults      assumption.Form `yaml:"defaults"`       // Fields set here override the built-in form defaults
}

// Duration accepts "30s" style strings in YAML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{60 * time.Second},
			CORSOrigins:  []string{"*"},
		},
		Valuation: ValuationConfig{
			Locale:        "zh-CN",
			ScenarioDelta: 10,
			Defaults:      assumption.DefaultForm(),
		},
	}
}

// DefaultForm returns the form pre-filled for new valuations.
func (c *Config) DefaultForm() assumption.Form {
	return c.Valuation.Defaults
}

// Load reads .env (if any), then path (if it exists), then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		fmt.Fprintf(os.Stderr, "[CONFIG] %s not found, using defaults\n", path)
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("VALUATION_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("VALUATION_LOCALE"); v != "" {
		cfg.Valuation.Locale = v
	}
	if v := os.Getenv("VALUATION_SCENARIO_DELTA"); v != "" {
		delta, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("VALUATION_SCENARIO_DELTA: %w", err)
		}
		cfg.Valuation.ScenarioDelta = delta
	}
	return nil
}
