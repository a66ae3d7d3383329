package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ConfigFileNames are searched for, in order, by FindConfig.
var ConfigFileNames = []string{"l32.yaml", "l32.yml", "l32.toml"}

// Config represents the l32.yaml (or l32.toml) configuration.
type Config struct {
	// Backend selects closure application: "env" or "subst".
	Backend string `yaml:"backend" toml:"backend"`

	// Lower runs the dictionary lowering pass before evaluation.
	Lower bool `yaml:"lower" toml:"lower"`

	// LowerStrategy is "literal", "application" or "runtime".
	LowerStrategy string `yaml:"lower_strategy" toml:"lower_strategy"`

	// MaxDepth bounds evaluation nesting; 0 disables the check.
	MaxDepth int `yaml:"max_depth" toml:"max_depth"`

	// Color is "auto", "always" or "never".
	Color string `yaml:"color" toml:"color"`

	Log     LogConfig     `yaml:"log" toml:"log"`
	History HistoryConfig `yaml:"history" toml:"history"`
	Server  ServerConfig  `yaml:"server" toml:"server"`
}

type LogConfig struct {
	// Level is trace, debug, info, warn, error or none.
	Level string `yaml:"level" toml:"level"`
	// File receives log output instead of stderr when set.
	File string `yaml:"file" toml:"file"`
	// Format is "text" or "json".
	Format string `yaml:"format" toml:"format"`
}

type HistoryConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
	// Driver is "sqlite" or "mysql".
	Driver string `yaml:"driver" toml:"driver"`
	DSN    string `yaml:"dsn" toml:"dsn"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" toml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a configuration file. The format follows the
// extension: .toml for TOML, anything else is YAML.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses configuration content from bytes.
// The path argument selects the format and is used in error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// FindConfig searches for a config file starting from dir and walking up
// to parent directories. It returns "" when none is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) setDefaults() {
	if c.Backend == "" {
		c.Backend = BackendEnvironment
	}
	if c.LowerStrategy == "" {
		c.LowerStrategy = LowerApplication
	}
	if c.Color == "" {
		c.Color = "auto"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.History.Driver == "" {
		c.History.Driver = "sqlite"
	}
	if c.History.DSN == "" && c.History.Driver == "sqlite" {
		c.History.DSN = "file:l32_history.db"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":7032"
	}
}

// ApplyEnv overrides fields from L32_* environment variables.
func (c *Config) ApplyEnv() error {
	str := map[string]*string{
		"L32_BACKEND":        &c.Backend,
		"L32_LOWER_STRATEGY": &c.LowerStrategy,
		"L32_COLOR":          &c.Color,
		"L32_LOG_LEVEL":      &c.Log.Level,
		"L32_LOG_FILE":       &c.Log.File,
		"L32_LOG_FORMAT":     &c.Log.Format,
		"L32_HISTORY_DRIVER": &c.History.Driver,
		"L32_HISTORY_DSN":    &c.History.DSN,
		"L32_SERVER_ADDR":    &c.Server.Addr,
	}
	for name, field := range str {
		if v, ok := os.LookupEnv(name); ok {
			*field = v
		}
	}

	flags := map[string]*bool{
		"L32_LOWER":   &c.Lower,
		"L32_HISTORY": &c.History.Enabled,
	}
	for name, field := range flags {
		if v, ok := os.LookupEnv(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*field = b
		}
	}

	if v, ok := os.LookupEnv("L32_MAX_DEPTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("L32_MAX_DEPTH: %w", err)
		}
		c.MaxDepth = n
	}
	return c.Validate()
}

// Validate checks the configuration for semantic errors.
func (c *Config) Validate() error {
	if c.Backend != BackendEnvironment && c.Backend != BackendSubstitution {
		return fmt.Errorf("backend must be %s or %s, got %q", BackendEnvironment, BackendSubstitution, c.Backend)
	}
	switch c.LowerStrategy {
	case LowerLiteral, LowerApplication, LowerRuntime:
	default:
		return fmt.Errorf("lower_strategy must be %s, %s or %s, got %q", LowerLiteral, LowerApplication, LowerRuntime, c.LowerStrategy)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error", "none":
	default:
		return fmt.Errorf("log.level %q is not a known level", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.History.Driver != "sqlite" && c.History.Driver != "mysql" {
		return fmt.Errorf("history.driver must be sqlite or mysql, got %q", c.History.Driver)
	}
	if c.History.Enabled && c.History.DSN == "" {
		return fmt.Errorf("history.dsn is required when history is enabled")
	}
	return nil
}
