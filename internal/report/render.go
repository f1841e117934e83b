// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/trackledger/trackledger/internal/models"
)

// RenderJSON serializes the full report, tables included, for machine
// consumers.
func RenderJSON(rep *models.Report) ([]byte, error) {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return data, nil
}

// RenderMarkdown renders the report as a Markdown document with one pipe
// table per completed section. Failed sections are flagged inline so the
// rest of the report still reads normally.
func RenderMarkdown(rep *models.Report) []byte {
	var b strings.Builder

	b.WriteString("# Music Store Sales Report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", rep.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", rep.GeneratedAt.Format(time.RFC3339))
	if !rep.AsOfDate.IsZero() {
		fmt.Fprintf(&b, "- As-of date: %s\n", rep.AsOfDate.Format("2006-01-02"))
	}
	b.WriteString("\n")

	for _, section := range rep.Sections {
		fmt.Fprintf(&b, "## %s\n\n", section.Title)

		if section.Status == models.SectionFailed {
			fmt.Fprintf(&b, "**Section failed:** %s\n\n", section.Error)
			continue
		}

		if section.Table.NumRows() == 0 {
			b.WriteString("_No data._\n\n")
			continue
		}

		writeMarkdownTable(&b, section.Table)
		b.WriteString("\n")
	}

	return []byte(b.String())
}

// writeMarkdownTable writes one pipe table with a header row.
func writeMarkdownTable(b *strings.Builder, table *models.Table) {
	headers := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		headers[i] = col.Name
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(headers, " | "))

	separators := make([]string, len(table.Columns))
	for i := range separators {
		separators[i] = "---"
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(separators, " | "))

	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = formatCell(value, table.Columns[i].Type)
		}
		fmt.Fprintf(b, "| %s |\n", strings.Join(cells, " | "))
	}
}

// formatCell formats one value according to its column's semantic type.
func formatCell(value any, colType models.ColumnType) string {
	if value == nil {
		return ""
	}

	switch colType {
	case models.TypeFloat:
		if f, ok := toFloat(value); ok {
			return fmt.Sprintf("%.2f", f)
		}
	case models.TypeDate:
		if t, ok := value.(time.Time); ok {
			return t.Format("2006-01-02")
		}
	}

	return fmt.Sprintf("%v", value)
}

// toFloat normalizes the numeric types a driver or table builder may hand us.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
