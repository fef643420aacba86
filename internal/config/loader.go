package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	var c Config
	applyDefaults(&c)

	return &c
}

// DefaultFile is the configuration file picked up from the working directory
// when no path is given.
const DefaultFile = "errenum.yaml"

// Resolve loads the configuration at path. An empty path falls back to
// DefaultFile in dir when it exists, and to Default otherwise.
func Resolve(path, dir string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}

	candidate := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("failed to stat %s: %w", candidate, err)
	}

	return LoadFile(candidate)
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Apply defaults and normalize
	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = DefaultVersion
	}

	if c.Opaque == "" {
		c.Opaque = DefaultOpaque
	}

	if c.Output == "" {
		c.Output = DefaultOutput
	}

	if c.Naming.From == "" {
		c.Naming.From = DefaultFromNaming
	}

	if c.Naming.Wrap == "" {
		c.Naming.Wrap = DefaultWrapNaming
	}
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}
