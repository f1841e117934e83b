// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

// Package main is the entry point for the Trackledger report generator.
//
// Trackledger runs a fixed catalog of analytical queries against a read-only
// DuckDB music-store database and writes the results as a Markdown report
// and a JSON artifact.
//
// # Application Flow
//
//  1. Configuration: load settings from config file and environment (Koanf v2)
//  2. Logging: initialize the global zerolog logger
//  3. Database: open the DuckDB file read-only
//  4. Report: run every section; failed sections are flagged, not fatal
//  5. Output: write report.md / report.json to the output directory
//
// # Configuration
//
// Configuration is layered (highest priority wins): environment variables,
// config.yaml, built-in defaults. Key variables:
//
//	DUCKDB_PATH       path to the music-store database file
//	REPORT_COUNTRY    billing-country filter for the genre section
//	REPORT_OUTPUT_DIR directory for rendered outputs
//	REPORT_FORMATS    comma-separated: markdown,json
//	LOG_LEVEL         debug, info, warn, error
//
// # Exit Codes
//
// The process exits non-zero only when the run itself cannot happen
// (configuration, connection, or output errors). Individual failed report
// sections are recorded in the report and logged, but do not fail the run.
package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/trackledger/trackledger/internal/config"
	"github.com/trackledger/trackledger/internal/database"
	"github.com/trackledger/trackledger/internal/logging"
	"github.com/trackledger/trackledger/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Timestamp: true,
	})

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Report run failed")
	}
}

func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	logging.Info().Str("database", cfg.Database.Path).Str("country", cfg.Report.Country).
		Msg("Starting report run")

	runner := report.NewRunner(db, report.DefaultSections(db, &cfg.Report))
	rep := runner.Run(context.Background())

	if failed := rep.FailedSections(); len(failed) > 0 {
		logging.Warn().Strs("sections", failed).Msg("Some report sections failed")
	}

	if err := os.MkdirAll(cfg.Report.OutputDir, 0o750); err != nil {
		return err
	}

	for _, format := range cfg.Report.Formats {
		switch strings.ToLower(format) {
		case "markdown":
			path := filepath.Join(cfg.Report.OutputDir, "report.md")
			if err := os.WriteFile(path, report.RenderMarkdown(rep), 0o640); err != nil {
				return err
			}
			logging.Info().Str("path", path).Msg("Wrote Markdown report")
		case "json":
			data, err := report.RenderJSON(rep)
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.Report.OutputDir, "report.json")
			if err := os.WriteFile(path, data, 0o640); err != nil {
				return err
			}
			logging.Info().Str("path", path).Msg("Wrote JSON report")
		}
	}

	logging.Info().Str("run_id", rep.RunID.String()).Int("sections", len(rep.Sections)).
		Msg("Report run completed")
	return nil
}
