package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatCSV  = "csv"
)

// Config is the on-disk configuration of the truthtable command.
// Example:
//
//	formulas:
//	  - a.b + c
//	  - a ^ c
//	width: 1
//	max-variables: 20
//	format: csv
//	output-file: table.csv
type Config struct {
	Formulas     []string `yaml:"formulas"`
	Width        int      `yaml:"width,omitempty"`
	MaxVariables int      `yaml:"max-variables,omitempty"`
	Format       string   `yaml:"format,omitempty"`
	OutputFile   string   `yaml:"output-file,omitempty"`
	Summary      bool     `yaml:"summary,omitempty"`

	Path string `yaml:"-"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Width: 1,
	}
}

// LoadConfig reads the YAML configuration at path. Missing keys keep their
// Default values.
func LoadConfig(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		// best effort, only used to make errors easier to act on
		absPath = path
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file %s: %w", absPath, err)
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", absPath, err)
	}
	config.Path = path

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", absPath, err)
	}
	return config, nil
}

// Validate checks that every set value is in range.
func (c *Config) Validate() error {
	if c.Width < 1 || c.Width > 64 {
		return fmt.Errorf("width must be between 1 and 64, got %d", c.Width)
	}
	if c.MaxVariables < 0 || c.MaxVariables > 62 {
		return fmt.Errorf("max-variables must be between 0 and 62, got %d", c.MaxVariables)
	}
	switch c.Format {
	case "", FormatText, FormatCSV:
	default:
		return fmt.Errorf("unknown format '%s', expected %s or %s", c.Format, FormatText, FormatCSV)
	}
	return nil
}

// Write stores the configuration at c.Path.
func (c *Config) Write() error {
	file, err := os.Create(c.Path)
	if err != nil {
		return fmt.Errorf("failed to create config file %s: %w", c.Path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	defer encoder.Close()

	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", c.Path, err)
	}
	return nil
}
