// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package models

import (
	"time"

	"github.com/google/uuid"
)

// SectionStatus reports whether a report section produced its table.
type SectionStatus string

// Section statuses. A failed section carries its error message and no table;
// the rest of the report is unaffected.
const (
	SectionOK     SectionStatus = "ok"
	SectionFailed SectionStatus = "failed"
)

// ReportSection is one rendered section of the report.
type ReportSection struct {
	Title  string        `json:"title"`
	Status SectionStatus `json:"status"`
	Error  string        `json:"error,omitempty"`
	Table  *Table        `json:"table,omitempty"`
}

// Report is the complete output of one report run. AsOfDate is the maximum
// invoice date in the dataset, fixed once per run and used by every
// time-based rate in the sections.
type Report struct {
	RunID       uuid.UUID       `json:"run_id"`
	GeneratedAt time.Time       `json:"generated_at"`
	AsOfDate    time.Time       `json:"as_of_date"`
	Sections    []ReportSection `json:"sections"`
}

// FailedSections returns the titles of sections that did not complete.
func (r *Report) FailedSections() []string {
	var failed []string
	for _, s := range r.Sections {
		if s.Status == SectionFailed {
			failed = append(failed, s.Title)
		}
	}
	return failed
}
