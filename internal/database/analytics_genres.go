// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package database

import (
	"context"

	"github.com/trackledger/trackledger/internal/metrics"
	"github.com/trackledger/trackledger/internal/models"
)

// genreSalesQuery aggregates sold track quantities per genre for one billing
// country. The ordering (quantity desc, name asc) is part of the report
// contract: results must be deterministic across runs.
const genreSalesQuery = `
	SELECT
		g.name,
		CAST(SUM(il.quantity) AS BIGINT) AS tracks_sold
	FROM invoice_line il
	JOIN invoice i ON il.invoice_id = i.invoice_id
	JOIN track t ON il.track_id = t.track_id
	JOIN genre g ON t.genre_id = g.genre_id
	WHERE i.billing_country = ?
	GROUP BY g.name
	ORDER BY tracks_sold DESC, g.name ASC`

// GenreSalesByCountry returns per-genre track sales for invoices billed to
// the given country, with each genre's share of the filtered total. A country
// with no invoices yields an empty result, not an error.
func (db *DB) GenreSalesByCountry(ctx context.Context, country string) ([]models.GenreSales, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, genreSalesQuery, country)
	if err != nil {
		return nil, dataAccessErr("query genre sales", err)
	}
	defer rows.Close()

	var sales []models.GenreSales
	var grandTotal int64
	for rows.Next() {
		var gs models.GenreSales
		var sold int64
		if err := rows.Scan(&gs.GenreName, &sold); err != nil {
			return nil, dataAccessErr("scan genre sales row", err)
		}
		gs.TracksSold = int(sold)
		grandTotal += sold
		sales = append(sales, gs)
	}
	if err := rows.Err(); err != nil {
		return nil, dataAccessErr("iterate genre sales rows", err)
	}

	if len(sales) == 0 {
		return []models.GenreSales{}, nil
	}

	for i := range sales {
		pct, err := metrics.PercentOfTotal(float64(sales[i].TracksSold), float64(grandTotal))
		if err != nil {
			return nil, err
		}
		sales[i].PctOfTotal = pct
	}

	return sales, nil
}
