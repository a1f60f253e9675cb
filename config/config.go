// Package config loads the explicit configuration struct the CLI passes
// into the core constructors. Environment variables of the form
// ${ENV_VAR} are expanded before parsing.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries everything the curation core needs from its operator.
type Config struct {
	// DOIPrefix is the registrant prefix new DOIs are minted under,
	// e.g. "10.5880".
	DOIPrefix string `yaml:"doi_prefix"`

	// DatabasePath is the SQLite file backing the reference-entity and
	// resource store. Empty selects the in-memory store.
	DatabasePath string `yaml:"database_path"`

	// RORLabelsPath points at an optional YAML dataset mapping canonical
	// ROR URLs to display labels.
	RORLabelsPath string `yaml:"ror_labels_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// DefaultPublisher is used when an imported document names no
	// publisher.
	DefaultPublisher PublisherConfig `yaml:"default_publisher"`
}

// PublisherConfig is the structured default-publisher entry.
type PublisherConfig struct {
	Name             string `yaml:"name"`
	Identifier       string `yaml:"identifier"`
	IdentifierScheme string `yaml:"identifier_scheme"`
	SchemeURI        string `yaml:"scheme_uri"`
	Language         string `yaml:"language"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		DOIPrefix: "10.5880",
		LogLevel:  "info",
	}
}

// Load reads a YAML configuration file, expands ${ENV_VAR} references,
// applies defaults for omitted fields, and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse builds a Config from raw YAML bytes.
func Parse(data []byte) (Config, error) {
	data = []byte(os.ExpandEnv(string(data)))

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the fields the core cannot default around.
func (c Config) Validate() error {
	if c.DOIPrefix == "" {
		return fmt.Errorf("doi_prefix must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (must be debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}
