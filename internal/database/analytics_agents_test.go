// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/trackledger/trackledger/internal/metrics"
)

func TestAgentSales_OmitsAgentsWithoutInvoices(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	hired := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	insertEmployee(t, db, 1, "Jane", "Peacock", hired)
	insertEmployee(t, db, 2, "Steve", "Johnson", hired) // no assigned invoices

	insertCustomer(t, db, 1, "USA", 1)
	insertInvoice(t, db, 1, 1, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "USA", 9.99)

	agents, err := db.AgentSales(context.Background())
	if err != nil {
		t.Fatalf("AgentSales failed: %v", err)
	}

	if len(agents) != 1 {
		t.Fatalf("Expected 1 agent (no zero rows), got %d: %v", len(agents), agents)
	}
	if agents[0].EmployeeID != 1 || agents[0].EmployeeName != "Jane Peacock" {
		t.Errorf("Unexpected agent row: %+v", agents[0])
	}
	if agents[0].TotalSales != 9.99 {
		t.Errorf("Expected total 9.99, got %v", agents[0].TotalSales)
	}
}

func TestAgentPerformance_EqualDailyRates(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	asOf := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	// E1: 365 days tenure, 3650 total. E2: 100 days tenure, 1000 total.
	// Both must come out at 10/day and 300/month.
	insertEmployee(t, db, 1, "Jane", "Peacock", asOf.AddDate(0, 0, -365))
	insertEmployee(t, db, 2, "Margaret", "Park", asOf.AddDate(0, 0, -100))

	insertCustomer(t, db, 1, "USA", 1)
	insertCustomer(t, db, 2, "Canada", 2)

	insertInvoice(t, db, 1, 1, asOf, "USA", 3650)
	insertInvoice(t, db, 2, 2, asOf, "Canada", 1000)

	perf, err := db.AgentPerformance(context.Background(), asOf)
	if err != nil {
		t.Fatalf("AgentPerformance failed: %v", err)
	}

	if len(perf) != 2 {
		t.Fatalf("Expected 2 agents, got %d", len(perf))
	}

	for _, p := range perf {
		if p.SalesPerDay != 10 {
			t.Errorf("Agent %s: SalesPerDay = %v, want 10", p.EmployeeName, p.SalesPerDay)
		}
		if p.SalesPerMonth != 300 {
			t.Errorf("Agent %s: SalesPerMonth = %v, want 300", p.EmployeeName, p.SalesPerMonth)
		}
		if p.SalesPerMonth != p.SalesPerDay*30 {
			t.Errorf("Agent %s: SalesPerMonth must equal SalesPerDay*30 exactly", p.EmployeeName)
		}
		if p.DaysSinceReference <= 0 {
			t.Errorf("Agent %s: DaysSinceReference must be positive, got %d",
				p.EmployeeName, p.DaysSinceReference)
		}
	}
}

func TestAgentPerformance_HiredAfterAsOf(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	insertEmployee(t, db, 1, "Laura", "Callahan", asOf.AddDate(0, 0, 10))
	insertCustomer(t, db, 1, "USA", 1)
	insertInvoice(t, db, 1, 1, asOf, "USA", 50)

	_, err := db.AgentPerformance(context.Background(), asOf)
	if !errors.Is(err, metrics.ErrInputValidation) {
		t.Errorf("Expected ErrInputValidation for agent hired after as-of, got %v", err)
	}
}

func TestMaxInvoiceDate(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	insertEmployee(t, db, 1, "Jane", "Peacock", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	insertCustomer(t, db, 1, "USA", 1)

	newest := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	insertInvoice(t, db, 1, 1, newest.AddDate(0, -3, 0), "USA", 5)
	insertInvoice(t, db, 2, 1, newest, "USA", 7)
	insertInvoice(t, db, 3, 1, newest.AddDate(-1, 0, 0), "USA", 3)

	asOf, err := db.MaxInvoiceDate(context.Background())
	if err != nil {
		t.Fatalf("MaxInvoiceDate failed: %v", err)
	}
	if !asOf.Equal(newest) {
		t.Errorf("MaxInvoiceDate = %v, want %v", asOf, newest)
	}
}

func TestMaxInvoiceDate_EmptyInvoiceSet(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := db.MaxInvoiceDate(context.Background())
	if !errors.Is(err, metrics.ErrInputValidation) {
		t.Errorf("Expected ErrInputValidation for empty invoice set, got %v", err)
	}
}
