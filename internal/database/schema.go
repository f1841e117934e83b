// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package database

import (
	"context"

	"github.com/trackledger/trackledger/internal/models"
)

// ListTablesAndViews enumerates the relations available in the main schema,
// name-ordered. Used for discovery and diagnostics only; the query catalog
// does not depend on it.
func (db *DB) ListTablesAndViews(ctx context.Context) ([]models.SchemaObject, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT table_name, table_type
		FROM information_schema.tables
		WHERE table_schema = 'main'
		ORDER BY table_name`

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, dataAccessErr("list tables and views", err)
	}
	defer rows.Close()

	var objects []models.SchemaObject
	for rows.Next() {
		var name, tableType string
		if err := rows.Scan(&name, &tableType); err != nil {
			return nil, dataAccessErr("scan schema object", err)
		}

		kind := "table"
		if tableType == "VIEW" {
			kind = "view"
		}
		objects = append(objects, models.SchemaObject{Name: name, Kind: kind})
	}

	if err := rows.Err(); err != nil {
		return nil, dataAccessErr("iterate schema objects", err)
	}

	return objects, nil
}
