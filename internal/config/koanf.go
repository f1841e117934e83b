// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/trackledger/config.yaml",
	"/etc/trackledger/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config
// file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:      "data/musicstore.duckdb",
			MaxMemory: "2GB",
			Threads:   0,    // 0 = use runtime.NumCPU()
			ReadOnly:  true, // report runs never write
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Report: ReportConfig{
			Country:        "USA",
			OutputDir:      "out",
			Formats:        []string{"markdown", "json"},
			OtherThreshold: 2,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML config file (if one exists)
//  3. Environment variables: override any setting
//
// Precedence: ENV > file > defaults.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Env vars arrive as strings; known slice fields are comma-separated.
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as
// comma-separated slices when sourced from environment variables.
var sliceConfigPaths = []string{
	"report.formats",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML or defaults) - nothing to do.
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envVarMappings maps environment variable names to koanf config paths.
// Only listed variables participate in configuration; everything else in the
// process environment is ignored.
var envVarMappings = map[string]string{
	"DUCKDB_PATH":            "database.path",
	"DUCKDB_MAX_MEMORY":      "database.max_memory",
	"DUCKDB_THREADS":         "database.threads",
	"DUCKDB_READ_ONLY":       "database.read_only",
	"LOG_LEVEL":              "logging.level",
	"LOG_FORMAT":             "logging.format",
	"REPORT_COUNTRY":         "report.country",
	"REPORT_OUTPUT_DIR":      "report.output_dir",
	"REPORT_FORMATS":         "report.formats",
	"REPORT_OTHER_THRESHOLD": "report.other_threshold",
}

// envTransformFunc transforms environment variable names to koanf config
// paths. Returning an empty string drops the variable.
//
// Examples:
//   - DUCKDB_PATH -> database.path
//   - REPORT_COUNTRY -> report.country
func envTransformFunc(key string) string {
	return envVarMappings[strings.ToUpper(key)]
}
