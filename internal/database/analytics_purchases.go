// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package database

import (
	"context"
	"database/sql"
	"sort"

	"github.com/trackledger/trackledger/internal/metrics"
	"github.com/trackledger/trackledger/internal/models"
)

// invoiceTrackSetsQuery lists the distinct tracks purchased on each invoice
// together with the album each track belongs to (null for album-less
// tracks). Classification happens in Go where set comparison is testable
// without a live database.
const invoiceTrackSetsQuery = `
	SELECT DISTINCT
		il.invoice_id,
		il.track_id,
		t.album_id
	FROM invoice_line il
	JOIN track t ON il.track_id = t.track_id
	ORDER BY il.invoice_id, il.track_id`

// albumTrackListsQuery lists the full track list of every album.
const albumTrackListsQuery = `
	SELECT album_id, track_id
	FROM track
	WHERE album_id IS NOT NULL
	ORDER BY album_id, track_id`

// InvoiceTrackSets returns, per invoice, the distinct purchased tracks and
// the distinct non-null albums those tracks belong to, invoice-ordered.
func (db *DB) InvoiceTrackSets(ctx context.Context) ([]models.InvoicePurchase, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, invoiceTrackSetsQuery)
	if err != nil {
		return nil, dataAccessErr("query invoice track sets", err)
	}
	defer rows.Close()

	byInvoice := make(map[int]*models.InvoicePurchase)
	albumSeen := make(map[int]map[int]bool)
	var order []int

	for rows.Next() {
		var invoiceID, trackID int
		var albumID sql.NullInt64
		if err := rows.Scan(&invoiceID, &trackID, &albumID); err != nil {
			return nil, dataAccessErr("scan invoice track row", err)
		}

		inv, ok := byInvoice[invoiceID]
		if !ok {
			inv = &models.InvoicePurchase{InvoiceID: invoiceID}
			byInvoice[invoiceID] = inv
			albumSeen[invoiceID] = make(map[int]bool)
			order = append(order, invoiceID)
		}
		inv.TrackIDs = append(inv.TrackIDs, trackID)

		if albumID.Valid {
			id := int(albumID.Int64)
			if !albumSeen[invoiceID][id] {
				albumSeen[invoiceID][id] = true
				inv.AlbumIDs = append(inv.AlbumIDs, id)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, dataAccessErr("iterate invoice track rows", err)
	}

	purchases := make([]models.InvoicePurchase, 0, len(order))
	for _, id := range order {
		purchases = append(purchases, *byInvoice[id])
	}
	return purchases, nil
}

// AlbumTrackLists returns the full track list of every album.
func (db *DB) AlbumTrackLists(ctx context.Context) (map[int][]int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, albumTrackListsQuery)
	if err != nil {
		return nil, dataAccessErr("query album track lists", err)
	}
	defer rows.Close()

	albums := make(map[int][]int)
	for rows.Next() {
		var albumID, trackID int
		if err := rows.Scan(&albumID, &trackID); err != nil {
			return nil, dataAccessErr("scan album track row", err)
		}
		albums[albumID] = append(albums[albumID], trackID)
	}
	if err := rows.Err(); err != nil {
		return nil, dataAccessErr("iterate album track rows", err)
	}

	return albums, nil
}

// PurchaseTypeBreakdown classifies every invoice as a full-album purchase, a
// single-track purchase, or a mixed-album purchase, and aggregates counts
// with percentage-of-total-invoices. The three buckets partition the invoice
// set exactly.
//
// An invoice is "album" iff its purchased track set equals the complete
// track list of its one album. Invoices spanning more than one album get
// the explicit "mixed" bucket: the anchor-track comparison would depend on
// which track is picked, so the case is surfaced instead of guessed.
// Album-less tracks belong to no album and can never satisfy the equality.
func (db *DB) PurchaseTypeBreakdown(ctx context.Context) ([]models.PurchaseTypeCount, error) {
	purchases, err := db.InvoiceTrackSets(ctx)
	if err != nil {
		return nil, err
	}
	if len(purchases) == 0 {
		return []models.PurchaseTypeCount{}, nil
	}

	albums, err := db.AlbumTrackLists(ctx)
	if err != nil {
		return nil, err
	}

	counts := map[models.PurchaseType]int{}
	for _, p := range purchases {
		counts[classifyPurchase(p, albums)]++
	}

	total := float64(len(purchases))
	types := []models.PurchaseType{
		models.PurchaseTypeAlbum,
		models.PurchaseTypeSingleTrack,
	}
	// The mixed bucket only appears when the ambiguous case exists in the
	// data, keeping the common two-way report shape otherwise.
	if counts[models.PurchaseTypeMixed] > 0 {
		types = append(types, models.PurchaseTypeMixed)
	}

	breakdown := make([]models.PurchaseTypeCount, 0, len(types))
	for _, pt := range types {
		pct, err := metrics.PercentOfTotal(float64(counts[pt]), total)
		if err != nil {
			return nil, err
		}
		breakdown = append(breakdown, models.PurchaseTypeCount{
			Type:       pt,
			Count:      counts[pt],
			PctOfTotal: pct,
		})
	}

	return breakdown, nil
}

// classifyPurchase decides the purchase type of one invoice.
func classifyPurchase(p models.InvoicePurchase, albums map[int][]int) models.PurchaseType {
	if len(p.AlbumIDs) > 1 {
		return models.PurchaseTypeMixed
	}
	if len(p.AlbumIDs) == 0 {
		// Only album-less tracks; there is no album to match.
		return models.PurchaseTypeSingleTrack
	}

	albumTracks := albums[p.AlbumIDs[0]]
	if sameTrackSet(p.TrackIDs, albumTracks) {
		return models.PurchaseTypeAlbum
	}
	return models.PurchaseTypeSingleTrack
}

// sameTrackSet reports whether two track id lists contain the same set of
// ids. Inputs may arrive in any order; duplicates are not expected (both
// sides are distinct by construction).
func sameTrackSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	as := append([]int(nil), a...)
	bs := append([]int(nil), b...)
	sort.Ints(as)
	sort.Ints(bs)

	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
