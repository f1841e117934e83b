// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package models

import (
	"time"
)

// GenreSales represents track sales for one genre under a billing-country
// filter. PctOfTotal is relative to all genres under the same filter; the
// percentages of a full result set sum to 100.
type GenreSales struct {
	GenreName  string  `json:"genre_name"`
	TracksSold int     `json:"tracks_sold"`
	PctOfTotal float64 `json:"pct_of_total"`
}

// AgentSales represents the raw sales total attributed to one support agent.
// Agents with no invoiced customers do not appear.
type AgentSales struct {
	EmployeeID   int       `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	TotalSales   float64   `json:"total_sales"`
	HireDate     time.Time `json:"hire_date"`
}

// AgentPerformance extends AgentSales with tenure-normalized rates against
// an explicit as-of date. SalesPerMonth is always SalesPerDay * 30
// (fixed 30-day month).
type AgentPerformance struct {
	EmployeeID         int       `json:"employee_id"`
	EmployeeName       string    `json:"employee_name"`
	TotalSales         float64   `json:"total_sales"`
	HireDate           time.Time `json:"hire_date"`
	DaysSinceReference int       `json:"days_since_reference"`
	SalesPerDay        float64   `json:"sales_per_day"`
	SalesPerMonth      float64   `json:"sales_per_month"`
}

// CountryStats is the raw per-country aggregation before "Other" bucketing.
type CountryStats struct {
	Country    string  `json:"country"`
	NCustomers int     `json:"n_customers"`
	NOrders    int     `json:"n_orders"`
	TotalSales float64 `json:"total_sales"`
}

// OtherCountryLabel is the synthetic label for the merged row of countries
// that fall below the customer-count threshold.
const OtherCountryLabel = "Other"

// CountrySales is one row of the bucketed country report. CountryLabel is
// either a real country name or OtherCountryLabel; the Other row sorts last.
type CountrySales struct {
	CountryLabel        string  `json:"country_label"`
	NCustomers          int     `json:"n_customers"`
	TotalSales          float64 `json:"total_sales"`
	AvgSalesPerCustomer float64 `json:"avg_sales_per_customer"`
	AvgOrderValue       float64 `json:"avg_order_value"`
}

// PurchaseType classifies an invoice by how its track set relates to the
// anchor track's album.
type PurchaseType string

// Invoice purchase classifications. Mixed marks invoices whose lines span
// more than one album, where the anchor-track comparison is ambiguous.
const (
	PurchaseTypeAlbum       PurchaseType = "album"
	PurchaseTypeSingleTrack PurchaseType = "single_track"
	PurchaseTypeMixed       PurchaseType = "mixed"
)

// PurchaseTypeCount aggregates invoices per classification. Counts across
// all classifications partition the invoice set and percentages sum to 100.
type PurchaseTypeCount struct {
	Type       PurchaseType `json:"type_of_purchase"`
	Count      int          `json:"count"`
	PctOfTotal float64      `json:"pct_of_total"`
}

// InvoicePurchase is the raw classifier input for one invoice: the distinct
// purchased tracks and the distinct non-null albums those tracks belong to.
type InvoicePurchase struct {
	InvoiceID int   `json:"invoice_id"`
	TrackIDs  []int `json:"track_ids"`
	AlbumIDs  []int `json:"album_ids"`
}
