// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/trackledger/trackledger/internal/models"
)

// QueryTable executes exactly one statement and materializes the full result
// set into a models.Table before releasing the connection. Column semantic
// types are derived from the driver's reported database types so renderers
// never inspect Go values.
//
// An empty result set is a valid zero-row table, not an error. Connection
// and statement failures wrap ErrDataAccess.
func (db *DB) QueryTable(ctx context.Context, query string, args ...any) (*models.Table, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dataAccessErr("execute statement", err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, dataAccessErr("read column types", err)
	}

	table := &models.Table{
		Columns: make([]models.Column, len(colTypes)),
		Rows:    [][]any{},
	}
	for i, ct := range colTypes {
		table.Columns[i] = models.Column{
			Name: ct.Name(),
			Type: semanticType(ct),
		}
	}

	for rows.Next() {
		values := make([]any, len(colTypes))
		ptrs := make([]any, len(colTypes))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, dataAccessErr("scan row", err)
		}
		table.Rows = append(table.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, dataAccessErr("iterate rows", err)
	}

	return table, nil
}

// semanticType maps a DuckDB column type to the report-facing semantic type.
func semanticType(ct *sql.ColumnType) models.ColumnType {
	name := strings.ToUpper(ct.DatabaseTypeName())

	switch {
	case name == "BOOLEAN":
		return models.TypeBool
	case name == "DATE" || strings.HasPrefix(name, "TIMESTAMP"):
		return models.TypeDate
	case strings.HasPrefix(name, "DECIMAL") || name == "FLOAT" || name == "DOUBLE" || name == "REAL":
		return models.TypeFloat
	case strings.Contains(name, "INT"): // TINYINT..HUGEINT and unsigned variants
		return models.TypeInteger
	default:
		return models.TypeString
	}
}
