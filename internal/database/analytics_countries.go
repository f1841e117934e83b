// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package database

import (
	"context"
	"sort"

	"github.com/trackledger/trackledger/internal/metrics"
	"github.com/trackledger/trackledger/internal/models"
)

// countryStatsQuery aggregates customers, orders, and sales per customer
// country. The left join keeps countries whose customers have not ordered
// yet; COUNT(i.invoice_id) only counts actual invoices.
const countryStatsQuery = `
	SELECT
		c.country,
		CAST(COUNT(DISTINCT c.customer_id) AS BIGINT) AS n_customers,
		CAST(COUNT(i.invoice_id) AS BIGINT) AS n_orders,
		CAST(COALESCE(SUM(i.total), 0) AS DOUBLE) AS total_sales
	FROM customer c
	LEFT JOIN invoice i ON i.customer_id = c.customer_id
	GROUP BY c.country
	ORDER BY total_sales DESC, c.country ASC`

// CountryCustomerStats returns the raw per-country aggregation before any
// bucketing.
func (db *DB) CountryCustomerStats(ctx context.Context) ([]models.CountryStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, countryStatsQuery)
	if err != nil {
		return nil, dataAccessErr("query country stats", err)
	}
	defer rows.Close()

	var stats []models.CountryStats
	for rows.Next() {
		var cs models.CountryStats
		var nCustomers, nOrders int64
		if err := rows.Scan(&cs.Country, &nCustomers, &nOrders, &cs.TotalSales); err != nil {
			return nil, dataAccessErr("scan country stats row", err)
		}
		cs.NCustomers = int(nCustomers)
		cs.NOrders = int(nOrders)
		stats = append(stats, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, dataAccessErr("iterate country stats rows", err)
	}

	return stats, nil
}

// CountrySales returns the bucketed country report: countries with fewer
// than otherThreshold customers merge into one "Other" row whose sums and
// averages are recomputed over the merged population. Rows order by total
// sales descending (label ascending on ties); the "Other" row is always
// last regardless of its totals.
func (db *DB) CountrySales(ctx context.Context, otherThreshold int) ([]models.CountrySales, error) {
	stats, err := db.CountryCustomerStats(ctx)
	if err != nil {
		return nil, err
	}

	kept, folded := metrics.FoldSmallGroups(stats,
		func(cs models.CountryStats) int { return cs.NCustomers }, otherThreshold)

	sales := make([]models.CountrySales, 0, len(kept)+1)
	for _, cs := range kept {
		sales = append(sales, newCountrySales(cs.Country, cs))
	}

	sort.SliceStable(sales, func(i, j int) bool {
		if sales[i].TotalSales != sales[j].TotalSales {
			return sales[i].TotalSales > sales[j].TotalSales
		}
		return sales[i].CountryLabel < sales[j].CountryLabel
	})

	if len(folded) > 0 {
		var merged models.CountryStats
		for _, cs := range folded {
			merged.NCustomers += cs.NCustomers
			merged.NOrders += cs.NOrders
			merged.TotalSales += cs.TotalSales
		}
		sales = append(sales, newCountrySales(models.OtherCountryLabel, merged))
	}

	return sales, nil
}

// newCountrySales builds one report row from aggregated stats. A country
// whose customers have no orders yet averages to zero rather than dividing
// by a zero order count.
func newCountrySales(label string, cs models.CountryStats) models.CountrySales {
	row := models.CountrySales{
		CountryLabel: label,
		NCustomers:   cs.NCustomers,
		TotalSales:   cs.TotalSales,
	}
	if cs.NCustomers > 0 {
		row.AvgSalesPerCustomer = cs.TotalSales / float64(cs.NCustomers)
	}
	if cs.NOrders > 0 {
		row.AvgOrderValue = cs.TotalSales / float64(cs.NOrders)
	}
	return row
}
