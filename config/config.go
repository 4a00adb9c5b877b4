// Package config loads the command line tool's settings from a YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/stopshape/gtfs"
	"gopkg.in/yaml.v3"
)

const (
	ErrorsFailFast = "fail_fast"
	ErrorsCollect  = "collect"

	OutputText = "text"
	OutputCsv  = "csv"
)

// Config is the root of the YAML configuration file.
type Config struct {
	// Errors selects how rows that fail to parse are handled.
	Errors string `yaml:"errors" validate:"omitempty,oneof=fail_fast collect"`
	// Output selects how stops are printed.
	Output string `yaml:"output" validate:"omitempty,oneof=text csv"`
	// Unique drops repeated records after parsing.
	Unique bool `yaml:"unique"`
	// Filters are applied to every query, keyed by GTFS column name.
	Filters map[string]string `yaml:"filters" validate:"dive,keys,required,endkeys"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Errors: ErrorsFailFast,
		Output: OutputText,
	}
}

// Load reads, validates and defaults the configuration at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates and defaults YAML configuration content.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Errors == "" {
		cfg.Errors = ErrorsFailFast
	}
	if cfg.Output == "" {
		cfg.Output = OutputText
	}
	return cfg, nil
}

// Strategy converts the errors setting into the parser's strategy.
func (cfg Config) Strategy() gtfs.ErrorStrategy {
	if cfg.Errors == ErrorsCollect {
		return gtfs.CollectErrors
	}
	return gtfs.FailFast
}
