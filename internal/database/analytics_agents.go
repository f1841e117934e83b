// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/trackledger/trackledger/internal/metrics"
	"github.com/trackledger/trackledger/internal/models"
)

// agentSalesQuery attributes each invoice total to the support rep of the
// invoicing customer. Inner joins deliberately omit employees with no
// invoiced customers: an agent without sales has no row, not a zero row.
const agentSalesQuery = `
	SELECT
		e.employee_id,
		e.first_name || ' ' || e.last_name AS employee_name,
		CAST(SUM(i.total) AS DOUBLE) AS total_sales,
		e.hire_date
	FROM invoice i
	JOIN customer c ON i.customer_id = c.customer_id
	JOIN employee e ON c.support_rep_id = e.employee_id
	GROUP BY e.employee_id, e.first_name, e.last_name, e.hire_date
	ORDER BY total_sales DESC, e.employee_id ASC`

// AgentSales returns the total invoiced sales per support agent.
func (db *DB) AgentSales(ctx context.Context) ([]models.AgentSales, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, agentSalesQuery)
	if err != nil {
		return nil, dataAccessErr("query agent sales", err)
	}
	defer rows.Close()

	var agents []models.AgentSales
	for rows.Next() {
		var a models.AgentSales
		if err := rows.Scan(&a.EmployeeID, &a.EmployeeName, &a.TotalSales, &a.HireDate); err != nil {
			return nil, dataAccessErr("scan agent sales row", err)
		}
		agents = append(agents, a)
	}
	if err := rows.Err(); err != nil {
		return nil, dataAccessErr("iterate agent sales rows", err)
	}

	return agents, nil
}

// MaxInvoiceDate derives the analysis as-of date: the maximum invoice date
// in the dataset. The dataset is historical and static, so wall-clock time
// would skew every tenure-based rate; the newest invoice anchors the report
// reproducibly. An empty invoice table is an input-validation error.
func (db *DB) MaxInvoiceDate(ctx context.Context) (time.Time, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var maxDate sql.NullTime
	row := db.conn.QueryRowContext(ctx, `SELECT MAX(invoice_date) FROM invoice`)
	if err := row.Scan(&maxDate); err != nil {
		return time.Time{}, dataAccessErr("query max invoice date", err)
	}

	if !maxDate.Valid {
		return time.Time{}, fmt.Errorf("%w: cannot derive as-of date from an empty invoice set",
			metrics.ErrInputValidation)
	}

	return maxDate.Time, nil
}

// AgentPerformance combines agent sales totals with tenure-normalized rates
// against the explicit asOf date. An agent hired on or after asOf surfaces
// the validation error rather than a silently zero-divided rate.
func (db *DB) AgentPerformance(ctx context.Context, asOf time.Time) ([]models.AgentPerformance, error) {
	agents, err := db.AgentSales(ctx)
	if err != nil {
		return nil, err
	}

	perf := make([]models.AgentPerformance, 0, len(agents))
	for _, a := range agents {
		rates, err := metrics.NormalizeRates(a.TotalSales, a.HireDate, asOf)
		if err != nil {
			return nil, fmt.Errorf("agent %s: %w", a.EmployeeName, err)
		}
		perf = append(perf, models.AgentPerformance{
			EmployeeID:         a.EmployeeID,
			EmployeeName:       a.EmployeeName,
			TotalSales:         a.TotalSales,
			HireDate:           a.HireDate,
			DaysSinceReference: rates.DaysElapsed,
			SalesPerDay:        rates.SalesPerDay,
			SalesPerMonth:      rates.SalesPerMonth,
		})
	}

	return perf, nil
}
