package ruler

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the service configuration. It can
// be populated from JSON or YAML. The zero-value is useful – no seed, no tracing.
type Config struct {
	Seed    SeedConfig    `json:"seed" yaml:"seed"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
}

// SeedConfig describes values every new context starts with. Values loaded
// from URL are overridden by inline Values.
type SeedConfig struct {
	URL    string                 `json:"url,omitempty" yaml:"url,omitempty"`
	Values map[string]interface{} `json:"values,omitempty" yaml:"values,omitempty"`
}

type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	OutputFile     string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns a Config with default values. Callers may modify the
// returned struct before passing it to NewFromConfig.
func DefaultConfig() *Config {
	return &Config{
		Tracing: TracingConfig{
			ServiceName:    "ruler",
			ServiceVersion: "0.1.0",
		},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		return fmt.Errorf("tracing.serviceName must not be empty when tracing is enabled")
	}
	return nil
}

// LoadConfig loads a YAML (or JSON) config from URL on top of DefaultConfig
func LoadConfig(ctx context.Context, URL string, options ...storage.Option) (*Config, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", URL, err)
	}
	cfg := DefaultConfig()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
