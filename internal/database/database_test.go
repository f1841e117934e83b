// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package database

import (
	"context"
	"testing"
	"time"

	"github.com/trackledger/trackledger/internal/config"
)

// testDBSemaphore serializes in-memory DuckDB creation. Concurrent CGO
// database setup can hang under CI resource pressure, so only one test holds
// an active connection at a time.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates a seeded in-memory music-store database. The schema
// mirrors the production dataset; fixtures are inserted per test. The
// semaphore is held for the whole test lifecycle and released via t.Cleanup.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
		ReadOnly:  false, // tests seed fixtures
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	seedMusicStoreSchema(t, db)
	return db
}

// seedMusicStoreSchema creates the music-store tables.
func seedMusicStoreSchema(t *testing.T, db *DB) {
	t.Helper()

	statements := []string{
		`CREATE TABLE genre (
			genre_id INTEGER PRIMARY KEY,
			name VARCHAR NOT NULL
		)`,
		`CREATE TABLE album (
			album_id INTEGER PRIMARY KEY
		)`,
		`CREATE TABLE track (
			track_id INTEGER PRIMARY KEY,
			album_id INTEGER,
			genre_id INTEGER
		)`,
		`CREATE TABLE employee (
			employee_id INTEGER PRIMARY KEY,
			first_name VARCHAR NOT NULL,
			last_name VARCHAR NOT NULL,
			hire_date DATE NOT NULL
		)`,
		`CREATE TABLE customer (
			customer_id INTEGER PRIMARY KEY,
			country VARCHAR NOT NULL,
			support_rep_id INTEGER
		)`,
		`CREATE TABLE invoice (
			invoice_id INTEGER PRIMARY KEY,
			customer_id INTEGER NOT NULL,
			invoice_date TIMESTAMP NOT NULL,
			billing_country VARCHAR NOT NULL,
			total DOUBLE NOT NULL
		)`,
		`CREATE TABLE invoice_line (
			invoice_line_id INTEGER PRIMARY KEY,
			invoice_id INTEGER NOT NULL,
			track_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price DOUBLE NOT NULL
		)`,
	}

	for _, stmt := range statements {
		mustExec(t, db, stmt)
	}
}

// mustExec runs a statement against the test database and fails the test on
// error.
func mustExec(t *testing.T, db *DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Conn().ExecContext(context.Background(), query, args...); err != nil {
		t.Fatalf("Exec failed: %v\nquery: %s", err, query)
	}
}

// Fixture helpers. IDs are explicit so tests read as data tables.

func insertGenre(t *testing.T, db *DB, id int, name string) {
	t.Helper()
	mustExec(t, db, `INSERT INTO genre VALUES (?, ?)`, id, name)
}

func insertAlbum(t *testing.T, db *DB, id int) {
	t.Helper()
	mustExec(t, db, `INSERT INTO album VALUES (?)`, id)
}

// insertTrack inserts a track; albumID 0 means no album (NULL).
func insertTrack(t *testing.T, db *DB, id, albumID, genreID int) {
	t.Helper()
	if albumID == 0 {
		mustExec(t, db, `INSERT INTO track VALUES (?, NULL, ?)`, id, genreID)
		return
	}
	mustExec(t, db, `INSERT INTO track VALUES (?, ?, ?)`, id, albumID, genreID)
}

func insertEmployee(t *testing.T, db *DB, id int, first, last string, hireDate time.Time) {
	t.Helper()
	mustExec(t, db, `INSERT INTO employee VALUES (?, ?, ?, ?)`, id, first, last, hireDate)
}

func insertCustomer(t *testing.T, db *DB, id int, country string, supportRepID int) {
	t.Helper()
	mustExec(t, db, `INSERT INTO customer VALUES (?, ?, ?)`, id, country, supportRepID)
}

func insertInvoice(t *testing.T, db *DB, id, customerID int, date time.Time, country string, total float64) {
	t.Helper()
	mustExec(t, db, `INSERT INTO invoice VALUES (?, ?, ?, ?, ?)`, id, customerID, date, country, total)
}

func insertInvoiceLine(t *testing.T, db *DB, lineID, invoiceID, trackID, quantity int, unitPrice float64) {
	t.Helper()
	mustExec(t, db, `INSERT INTO invoice_line VALUES (?, ?, ?, ?, ?)`, lineID, invoiceID, trackID, quantity, unitPrice)
}

func TestNew_InMemory(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Closing an already-closed database must not panic.
	_ = db.Close()
}
