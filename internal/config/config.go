// Package config holds the runtime configuration of the os-find command.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	osfind "github.com/wafemand/os-find"
	"github.com/wafemand/os-find/internal/logging"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultVerbose logs warnings and errors only, so a normal run prints
	// matches plus per-directory failures.
	DefaultVerbose = logging.WarnVerbose

	// DefaultBackend reads raw directory-entry records where supported.
	DefaultBackend = "native"

	// DefaultBufferSize is the directory-entry staging buffer in bytes.
	DefaultBufferSize = osfind.DefaultBufferSize

	// DefaultStrict keeps the best-effort exit status (always 0).
	DefaultStrict = false
)

// Config contains runtime configuration values for a search.
type Config struct {
	Verbose    int    // Log verbosity between 1 (error) and 5 (trace) (Default 2)
	Backend    string // Directory enumeration backend: native or portable (Default native)
	BufferSize int    // Staging buffer for raw directory-entry reads in bytes (Default 1024)
	Strict     bool   // Report failures through the exit status (Default false)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
type ConfigOverride struct {
	Verbose    *int    `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	Backend    *string `yaml:"backend,omitempty" json:"backend,omitempty"`
	BufferSize *int    `yaml:"buffer_size,omitempty" json:"buffer_size,omitempty"`
	Strict     *bool   `yaml:"strict,omitempty" json:"strict,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		Verbose:    DefaultVerbose,
		Backend:    DefaultBackend,
		BufferSize: DefaultBufferSize,
		Strict:     DefaultStrict,
	}
}

// NewConfig creates a Config from defaults with override applied. A nil
// override yields the defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}

	return cfg
}

// Merge applies non-nil values from override onto this Config.
func (c *Config) Merge(override *ConfigOverride) {
	if override.Verbose != nil {
		c.Verbose = min(max(*override.Verbose, logging.ErrorVerbose), logging.TraceVerbose)
	}
	if override.Backend != nil {
		c.Backend = *override.Backend
	}
	if override.BufferSize != nil {
		c.BufferSize = *override.BufferSize
	}
	if override.Strict != nil {
		c.Strict = *override.Strict
	}
}

// Validate reports configuration values that cannot be used.
func (c *Config) Validate() error {
	_, err := osfind.ParseBackend(c.Backend)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.BufferSize < 0 {
		return fmt.Errorf("invalid config: buffer_size must not be negative, got %d", c.BufferSize)
	}

	return nil
}

// WalkOptions converts the configuration into walker options.
func (c *Config) WalkOptions() ([]osfind.Option, error) {
	backend, err := osfind.ParseBackend(c.Backend)
	if err != nil {
		return nil, err
	}

	return []osfind.Option{
		osfind.WithBackend(backend),
		osfind.WithBufferSize(c.BufferSize),
	}, nil
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}

	return NewConfig(override), nil
}
