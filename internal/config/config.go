// Package config loads ddlparse's CLI defaults from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// OutputFormat identifies how the CLI renders a parsed model.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

var validOutputFormats = map[OutputFormat]struct{}{
	OutputText: {},
	OutputJSON: {},
	OutputYAML: {},
}

// CustomTypeMapping overrides the type suggester's default SQLite-type to
// Go-type mapping (internal/typemap).
type CustomTypeMapping struct {
	SQLiteType string `toml:"sqlite_type"`
	GoType     string `toml:"go_type"`
	GoImport   string `toml:"go_import"`
}

// Config mirrors the expected ddlparse TOML schema.
type Config struct {
	Output       OutputFormat        `toml:"output"`
	VerifySQLite bool                `toml:"verify_sqlite"`
	CustomTypes  []CustomTypeMapping `toml:"custom_types"`
}

// Plan is the fully-resolved configuration the CLI runs with.
type Plan struct {
	Output       OutputFormat
	VerifySQLite bool
	CustomTypes  []CustomTypeMapping
}

// LoadOptions tunes config loading behavior.
type LoadOptions struct {
	Strict bool
}

// Result wraps a loaded plan alongside any non-fatal warnings.
type Result struct {
	Plan     Plan
	Warnings []string
}

// Default returns the CLI's defaults when no config file is given.
func Default() Plan {
	return Plan{Output: OutputText}
}

// Load reads, validates, and resolves a ddlparse configuration file.
func Load(path string, opts LoadOptions) (Result, error) {
	var res Result

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}

	unknownKeys, err := collectUnknownKeys(data)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	if len(unknownKeys) > 0 {
		slices.Sort(unknownKeys)
		message := fmt.Sprintf("%s: unknown configuration keys: %s", path, strings.Join(unknownKeys, ", "))
		if opts.Strict {
			return res, errors.New(message)
		}
		res.Warnings = append(res.Warnings, message)
	}

	output, err := resolveOutput(path, cfg.Output)
	if err != nil {
		return res, err
	}

	if err := validateCustomTypes(path, cfg.CustomTypes); err != nil {
		return res, err
	}

	res.Plan = Plan{
		Output:       output,
		VerifySQLite: cfg.VerifySQLite,
		CustomTypes:  cfg.CustomTypes,
	}
	return res, nil
}

func collectUnknownKeys(data []byte) ([]string, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	known := map[string]struct{}{
		"output":        {},
		"verify_sqlite": {},
		"custom_types":  {},
	}

	unknown := make([]string, 0)
	for key := range raw {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	return unknown, nil
}

func resolveOutput(path string, format OutputFormat) (OutputFormat, error) {
	if format == "" {
		return OutputText, nil
	}
	if _, ok := validOutputFormats[format]; !ok {
		return "", fmt.Errorf("%s: unsupported output format %q", path, format)
	}
	return format, nil
}

func validateCustomTypes(path string, mappings []CustomTypeMapping) error {
	for _, m := range mappings {
		if m.SQLiteType == "" {
			return fmt.Errorf("%s: custom_types entry missing sqlite_type", path)
		}
		if m.GoType == "" {
			return fmt.Errorf("%s: custom_types entry for %q missing go_type", path, m.SQLiteType)
		}
	}
	return nil
}
