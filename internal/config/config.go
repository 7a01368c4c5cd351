// Package config loads the CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/simonhull/photometa/internal/geo"
	"github.com/simonhull/photometa/internal/textdec"
	"github.com/simonhull/photometa/internal/types"
)

// MaxPrecision bounds the number of decimal places for coordinates.
const MaxPrecision = 12

// Config holds the settings shared by every CLI command.
type Config struct {
	// MapsBaseURL is the base of generated map links.
	MapsBaseURL string `yaml:"maps_base_url"`
	// Encodings is the ordered list tried when decoding text tags.
	Encodings []string `yaml:"encodings"`
	// Precision is the number of decimal places of derived coordinates.
	Precision int `yaml:"precision"`
	// Workers bounds parallel extraction in batch mode.
	Workers int `yaml:"workers"`

	LogFile  string `yaml:"log_file,omitempty"`  // empty = no file logging
	Database string `yaml:"database,omitempty"` // SQLite path for scan results
	Verbose  bool   `yaml:"verbose,omitempty"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		MapsBaseURL: types.DefaultMapsBaseURL,
		Encodings:   append([]string(nil), textdec.DefaultEncodings...),
		Precision:   geo.PrecisionDisplay,
		Workers:     runtime.NumCPU(),
	}
}

// Load reads a YAML configuration file. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.MapsBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("maps_base_url %q must be an absolute URL", c.MapsBaseURL))
	}
	if len(c.Encodings) == 0 {
		errs = append(errs, errors.New("encodings must not be empty"))
	}
	for _, name := range c.Encodings {
		if _, err := textdec.Lookup(name); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Precision < 0 || c.Precision > MaxPrecision {
		errs = append(errs, fmt.Errorf("precision must be between 0 and %d, got %d", MaxPrecision, c.Precision))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}

	return errors.Join(errs...)
}
