// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

// Package models defines the typed results exchanged between the query
// library, the metric post-processors, and the report assembler.
package models

// ColumnType is the semantic type of a table column, used by report
// renderers to format values without inspecting Go types.
type ColumnType string

// Semantic column types.
const (
	TypeInteger ColumnType = "integer"
	TypeFloat   ColumnType = "float"
	TypeString  ColumnType = "string"
	TypeDate    ColumnType = "date"
	TypeBool    ColumnType = "bool"
)

// Column describes one column of a tabular result.
type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// Table is an ordered, fully materialized tabular result with a
// machine-readable schema. Row values are positional and correspond to
// Columns. Consumers must not mutate it.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// SchemaObject identifies one relation available in the data source.
type SchemaObject struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // table or view
}
