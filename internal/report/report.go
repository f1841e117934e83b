// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

// Package report assembles the analytical report: it runs the query catalog
// section by section, isolates per-section failures, and renders the
// collected tables as Markdown and JSON.
package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/trackledger/trackledger/internal/database"
	"github.com/trackledger/trackledger/internal/logging"
	"github.com/trackledger/trackledger/internal/models"
)

// Section is one independent unit of the report. Build receives the run's
// as-of date (the maximum invoice date, derived once per run) and returns
// the section's table.
type Section struct {
	Title string

	// NeedsAsOf marks sections whose metrics depend on the as-of date.
	// When as-of derivation fails, only these sections fail.
	NeedsAsOf bool

	Build func(ctx context.Context, asOf time.Time) (*models.Table, error)
}

// Runner executes a report catalog against one database.
type Runner struct {
	db       *database.DB
	sections []Section
}

// NewRunner creates a report runner over the given sections.
func NewRunner(db *database.DB, sections []Section) *Runner {
	return &Runner{db: db, sections: sections}
}

// Run executes every section sequentially. A failed section is recorded
// with its error and the run continues; errors never cross section
// boundaries because sections share no state beyond the read-only dataset.
func (r *Runner) Run(ctx context.Context) *models.Report {
	rep := &models.Report{
		RunID:       uuid.New(),
		GeneratedAt: time.Now().UTC(),
	}

	asOf, asOfErr := r.db.MaxInvoiceDate(ctx)
	if asOfErr != nil {
		logging.Warn().Err(asOfErr).Msg("As-of date derivation failed; rate sections will be skipped")
	} else {
		rep.AsOfDate = asOf
	}

	for _, section := range r.sections {
		if section.NeedsAsOf && asOfErr != nil {
			rep.Sections = append(rep.Sections, failedSection(section.Title, asOfErr))
			continue
		}

		table, err := section.Build(ctx, asOf)
		if err != nil {
			logging.Error().Err(err).Str("section", section.Title).Msg("Report section failed")
			rep.Sections = append(rep.Sections, failedSection(section.Title, err))
			continue
		}

		logging.Debug().Str("section", section.Title).Int("rows", table.NumRows()).
			Msg("Report section completed")
		rep.Sections = append(rep.Sections, models.ReportSection{
			Title:  section.Title,
			Status: models.SectionOK,
			Table:  table,
		})
	}

	return rep
}

func failedSection(title string, err error) models.ReportSection {
	return models.ReportSection{
		Title:  title,
		Status: models.SectionFailed,
		Error:  err.Error(),
	}
}
