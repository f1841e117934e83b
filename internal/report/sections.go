// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package report

import (
	"context"
	"fmt"
	"time"

	"github.com/trackledger/trackledger/internal/config"
	"github.com/trackledger/trackledger/internal/database"
	"github.com/trackledger/trackledger/internal/models"
)

// DefaultSections returns the standard report catalog: genre sales for the
// configured country, agent performance, country sales with "Other"
// bucketing, the purchase-type breakdown, and the schema inventory.
func DefaultSections(db *database.DB, cfg *config.ReportConfig) []Section {
	return []Section{
		{
			Title: fmt.Sprintf("Genre Sales (%s)", cfg.Country),
			Build: func(ctx context.Context, _ time.Time) (*models.Table, error) {
				sales, err := db.GenreSalesByCountry(ctx, cfg.Country)
				if err != nil {
					return nil, err
				}
				return genreSalesTable(sales), nil
			},
		},
		{
			Title:     "Sales Agent Performance",
			NeedsAsOf: true,
			Build: func(ctx context.Context, asOf time.Time) (*models.Table, error) {
				perf, err := db.AgentPerformance(ctx, asOf)
				if err != nil {
					return nil, err
				}
				return agentPerformanceTable(perf), nil
			},
		},
		{
			Title: "Sales by Country",
			Build: func(ctx context.Context, _ time.Time) (*models.Table, error) {
				sales, err := db.CountrySales(ctx, cfg.OtherThreshold)
				if err != nil {
					return nil, err
				}
				return countrySalesTable(sales), nil
			},
		},
		{
			Title: "Album vs Single Track Purchases",
			Build: func(ctx context.Context, _ time.Time) (*models.Table, error) {
				breakdown, err := db.PurchaseTypeBreakdown(ctx)
				if err != nil {
					return nil, err
				}
				return purchaseTypeTable(breakdown), nil
			},
		},
		{
			Title: "Dataset Inventory",
			Build: func(ctx context.Context, _ time.Time) (*models.Table, error) {
				objects, err := db.ListTablesAndViews(ctx)
				if err != nil {
					return nil, err
				}
				return schemaObjectsTable(objects), nil
			},
		},
	}
}

// Typed rows flatten into models.Table so the renderers stay generic.

func genreSalesTable(sales []models.GenreSales) *models.Table {
	table := &models.Table{
		Columns: []models.Column{
			{Name: "genre", Type: models.TypeString},
			{Name: "tracks_sold", Type: models.TypeInteger},
			{Name: "pct_of_total", Type: models.TypeFloat},
		},
		Rows: [][]any{},
	}
	for _, gs := range sales {
		table.Rows = append(table.Rows, []any{gs.GenreName, gs.TracksSold, gs.PctOfTotal})
	}
	return table
}

func agentPerformanceTable(perf []models.AgentPerformance) *models.Table {
	table := &models.Table{
		Columns: []models.Column{
			{Name: "agent", Type: models.TypeString},
			{Name: "total_sales", Type: models.TypeFloat},
			{Name: "hire_date", Type: models.TypeDate},
			{Name: "days_since_reference", Type: models.TypeInteger},
			{Name: "sales_per_day", Type: models.TypeFloat},
			{Name: "sales_per_month", Type: models.TypeFloat},
		},
		Rows: [][]any{},
	}
	for _, p := range perf {
		table.Rows = append(table.Rows, []any{
			p.EmployeeName, p.TotalSales, p.HireDate,
			p.DaysSinceReference, p.SalesPerDay, p.SalesPerMonth,
		})
	}
	return table
}

func countrySalesTable(sales []models.CountrySales) *models.Table {
	table := &models.Table{
		Columns: []models.Column{
			{Name: "country", Type: models.TypeString},
			{Name: "customers", Type: models.TypeInteger},
			{Name: "total_sales", Type: models.TypeFloat},
			{Name: "avg_sales_per_customer", Type: models.TypeFloat},
			{Name: "avg_order_value", Type: models.TypeFloat},
		},
		Rows: [][]any{},
	}
	for _, cs := range sales {
		table.Rows = append(table.Rows, []any{
			cs.CountryLabel, cs.NCustomers, cs.TotalSales,
			cs.AvgSalesPerCustomer, cs.AvgOrderValue,
		})
	}
	return table
}

func purchaseTypeTable(breakdown []models.PurchaseTypeCount) *models.Table {
	table := &models.Table{
		Columns: []models.Column{
			{Name: "type_of_purchase", Type: models.TypeString},
			{Name: "invoices", Type: models.TypeInteger},
			{Name: "pct_of_total", Type: models.TypeFloat},
		},
		Rows: [][]any{},
	}
	for _, row := range breakdown {
		table.Rows = append(table.Rows, []any{string(row.Type), row.Count, row.PctOfTotal})
	}
	return table
}

func schemaObjectsTable(objects []models.SchemaObject) *models.Table {
	table := &models.Table{
		Columns: []models.Column{
			{Name: "name", Type: models.TypeString},
			{Name: "kind", Type: models.TypeString},
		},
		Rows: [][]any{},
	}
	for _, obj := range objects {
		table.Rows = append(table.Rows, []any{obj.Name, obj.Kind})
	}
	return table
}
