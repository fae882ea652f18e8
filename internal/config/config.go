// Package config provides configuration loading and management for the
// company directory server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment variable overrides handled through
// viper (e.g. COMPANYD_LOG_LEVEL).
const EnvPrefix = "COMPANYD"

// Defaults applied when the configuration file omits optional settings.
const (
	DefaultDelimiter    = ","
	DefaultNameField    = "company_name"
	DefaultLimit        = 10
	DefaultMaxLimit     = 50
	DefaultMissingValue = "N/A"
)

// Option defines the interface for configuration loader options.
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration.
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file.
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks.
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure.
type Config struct {
	Dataset DatasetConfig  `yaml:"dataset"`
	Query   QueryConfig    `yaml:"query,omitempty"`
	Metrics *MetricsConfig `yaml:"metrics,omitempty"`
}

// DatasetConfig describes the tabular source loaded at startup.
type DatasetConfig struct {
	// File is the local file source. It is currently the only source type.
	File *FileConfig `yaml:"file"`

	// Delimiter is the field separator of the dataset file. Must be a single
	// character; defaults to ",".
	Delimiter string `yaml:"delimiter,omitempty"`

	// NameField is the column used for lookup-by-name.
	// Defaults to "company_name".
	NameField string `yaml:"nameField,omitempty"`
}

// FileConfig defines the local file source configuration.
type FileConfig struct {
	// Path is the path to the dataset file on the local filesystem.
	// Can be absolute or relative to the working directory.
	Path string `yaml:"path"`
}

// QueryConfig holds pagination bounds and the missing-value sentinel.
type QueryConfig struct {
	DefaultLimit int    `yaml:"defaultLimit,omitempty"`
	MaxLimit     int    `yaml:"maxLimit,omitempty"`
	MissingValue string `yaml:"missingValue,omitempty"`
}

// MetricsConfig enables the Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoadConfig loads and parses configuration from a YAML file.
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	// As of now, this is required because there's no other options to load
	// configuration. Once we add more options, we can remove this check.
	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validate performs validation on the configuration.
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if c.Dataset.File == nil || c.Dataset.File.Path == "" {
		return fmt.Errorf("dataset.file.path is required")
	}

	if c.Dataset.Delimiter != "" && utf8.RuneCountInString(c.Dataset.Delimiter) != 1 {
		return fmt.Errorf("dataset.delimiter must be a single character, got %q", c.Dataset.Delimiter)
	}

	if c.Query.DefaultLimit < 0 {
		return fmt.Errorf("query.defaultLimit must not be negative")
	}
	if c.Query.MaxLimit < 0 {
		return fmt.Errorf("query.maxLimit must not be negative")
	}
	if c.Query.DefaultLimit > 0 && c.Query.MaxLimit > 0 && c.Query.MaxLimit < c.Query.DefaultLimit {
		return fmt.Errorf("query.maxLimit (%d) must not be smaller than query.defaultLimit (%d)",
			c.Query.MaxLimit, c.Query.DefaultLimit)
	}

	return nil
}

// GetDelimiter returns the dataset delimiter as a rune, using "," if not
// specified.
func (c *Config) GetDelimiter() rune {
	if c.Dataset.Delimiter == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(c.Dataset.Delimiter)
	return r
}

// GetNameField returns the lookup field, using "company_name" if not
// specified.
func (c *Config) GetNameField() string {
	if c.Dataset.NameField == "" {
		return DefaultNameField
	}
	return c.Dataset.NameField
}

// GetDefaultLimit returns the page size applied when a request does not
// specify one.
func (c *Config) GetDefaultLimit() int {
	if c.Query.DefaultLimit <= 0 {
		return DefaultLimit
	}
	return c.Query.DefaultLimit
}

// GetMaxLimit returns the upper bound enforced on requested page sizes.
func (c *Config) GetMaxLimit() int {
	if c.Query.MaxLimit <= 0 {
		return DefaultMaxLimit
	}
	return c.Query.MaxLimit
}

// GetMissingValue returns the sentinel substituted for empty field values.
func (c *Config) GetMissingValue() string {
	if c.Query.MissingValue == "" {
		return DefaultMissingValue
	}
	return c.Query.MissingValue
}

// MetricsEnabled reports whether the Prometheus metrics endpoint should be
// served.
func (c *Config) MetricsEnabled() bool {
	return c.Metrics != nil && c.Metrics.Enabled
}
