// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

// Package config loads and validates Trackledger configuration.
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables
//   - Config file (config.yaml)
//   - Built-in defaults
package config

import (
	"fmt"
	"strings"
)

// Config is the root configuration for a report run.
type Config struct {
	Database DatabaseConfig `koanf:"database"`
	Logging  LoggingConfig  `koanf:"logging"`
	Report   ReportConfig   `koanf:"report"`
}

// DatabaseConfig configures the DuckDB connection.
type DatabaseConfig struct {
	// Path is the DuckDB database file, or ":memory:" for an in-memory
	// database (used by tests).
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB memory usage, e.g. "2GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads sets DuckDB worker threads. 0 means runtime.NumCPU().
	Threads int `koanf:"threads"`

	// ReadOnly opens the database in read-only mode. Report runs never
	// write; tests disable this to seed fixtures.
	ReadOnly bool `koanf:"read_only"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // json or console
}

// ReportConfig configures the report catalog and output.
type ReportConfig struct {
	// Country is the billing-country filter for the genre sales section.
	Country string `koanf:"country"`

	// OutputDir receives report.md and report.json.
	OutputDir string `koanf:"output_dir"`

	// Formats selects the rendered outputs: markdown, json.
	Formats []string `koanf:"formats"`

	// OtherThreshold is the minimum customers a country needs to keep its
	// own label in the country sales section; smaller groups fold into
	// the "Other" row.
	OtherThreshold int `koanf:"other_threshold"`
}

// validFormats enumerates the renderable report formats.
var validFormats = map[string]bool{
	"markdown": true,
	"json":     true,
}

// Validate checks the configuration for consistency.
// It returns an error describing the first problem found.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("database.threads must be >= 0, got %d", c.Database.Threads)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	if c.Report.Country == "" {
		return fmt.Errorf("report.country is required")
	}
	if c.Report.OtherThreshold < 1 {
		return fmt.Errorf("report.other_threshold must be >= 1, got %d", c.Report.OtherThreshold)
	}
	if len(c.Report.Formats) == 0 {
		return fmt.Errorf("report.formats must name at least one output format")
	}
	for _, f := range c.Report.Formats {
		if !validFormats[strings.ToLower(f)] {
			return fmt.Errorf("report.formats: unknown format %q", f)
		}
	}

	return nil
}
