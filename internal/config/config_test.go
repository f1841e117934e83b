// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "data/musicstore.duckdb" {
		t.Errorf("Expected default database path, got %q", cfg.Database.Path)
	}
	if !cfg.Database.ReadOnly {
		t.Error("Expected read-only database by default")
	}
	if cfg.Report.Country != "USA" {
		t.Errorf("Expected default country USA, got %q", cfg.Report.Country)
	}
	if cfg.Report.OtherThreshold != 2 {
		t.Errorf("Expected default other_threshold 2, got %d", cfg.Report.OtherThreshold)
	}
	if len(cfg.Report.Formats) != 2 {
		t.Errorf("Expected markdown+json default formats, got %v", cfg.Report.Formats)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DUCKDB_PATH", "/tmp/store.duckdb")
	t.Setenv("REPORT_COUNTRY", "Canada")
	t.Setenv("REPORT_FORMATS", "json")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "/tmp/store.duckdb" {
		t.Errorf("Expected env database path, got %q", cfg.Database.Path)
	}
	if cfg.Report.Country != "Canada" {
		t.Errorf("Expected env country, got %q", cfg.Report.Country)
	}
	if len(cfg.Report.Formats) != 1 || cfg.Report.Formats[0] != "json" {
		t.Errorf("Expected formats [json] from env, got %v", cfg.Report.Formats)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected env log level, got %q", cfg.Logging.Level)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
database:
  path: /data/store.duckdb
report:
  country: Germany
  other_threshold: 3
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Path != "/data/store.duckdb" {
		t.Errorf("Expected file database path, got %q", cfg.Database.Path)
	}
	if cfg.Report.Country != "Germany" {
		t.Errorf("Expected file country, got %q", cfg.Report.Country)
	}
	if cfg.Report.OtherThreshold != 3 {
		t.Errorf("Expected file other_threshold 3, got %d", cfg.Report.OtherThreshold)
	}
	// Untouched keys keep defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level, got %q", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"negative threads", func(c *Config) { c.Database.Threads = -1 }, "database.threads"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"missing country", func(c *Config) { c.Report.Country = "" }, "report.country"},
		{"zero threshold", func(c *Config) { c.Report.OtherThreshold = 0 }, "other_threshold"},
		{"no formats", func(c *Config) { c.Report.Formats = nil }, "report.formats"},
		{"unknown format", func(c *Config) { c.Report.Formats = []string{"pdf"} }, "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate returned unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
