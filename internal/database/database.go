// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

// Package database is the data source adapter and query library for the
// music-store dataset. It wraps a DuckDB connection and exposes one method
// per named analytical query, each returning typed rows from
// internal/models. The dataset is read-only for report runs; every derived
// result is recomputed per call and nothing is cached.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/trackledger/trackledger/internal/config"
)

// ErrDataAccess marks connection or statement failures at the data source
// boundary. A query returning it is fatal for the affected report section
// only; other sections still run.
var ErrDataAccess = errors.New("data access")

// DB wraps the DuckDB connection and provides data access methods.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig
}

// New opens the database described by cfg and verifies the connection.
// File databases honor cfg.ReadOnly; in-memory databases are always
// read-write since there is nothing to open read-only.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}

	accessMode := "read_only"
	if !cfg.ReadOnly || cfg.Path == ":memory:" || cfg.Path == "" {
		accessMode = "read_write"
	}

	connStr := fmt.Sprintf("%s?access_mode=%s&threads=%d&max_memory=%s",
		cfg.Path, accessMode, numThreads, cfg.MaxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", errors.Join(ErrDataAccess, err))
	}

	db := &DB{
		conn: conn,
		cfg:  cfg,
	}
	db.configureConnectionPool()

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", errors.Join(ErrDataAccess, err))
	}

	return db, nil
}

// configureConnectionPool sets connection pool parameters.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()
	return db.conn.PingContext(ctx)
}

// Close releases the database connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.cfg.Path
}

// Conn returns the underlying SQL database connection.
// Tests use this to seed fixture data; report code never writes through it.
func (db *DB) Conn() *sql.DB {
	return db.conn
}
