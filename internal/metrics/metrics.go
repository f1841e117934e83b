// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

// Package metrics derives secondary business metrics from already-fetched
// query results. Every function is pure: no I/O, no shared state.
package metrics

import (
	"errors"
	"fmt"
	"time"
)

// ErrZeroTotal is returned by PercentOfTotal when the reference total is
// zero. The policy is a hard error, never NaN; callers that can treat an
// empty aggregate as an empty result should do so before computing
// percentages.
var ErrZeroTotal = errors.New("reference total is zero")

// ErrInputValidation marks malformed metric inputs, such as a non-positive
// tenure or an empty invoice set during as-of date derivation.
var ErrInputValidation = errors.New("input validation")

// ErrNonPositiveTenure is returned when an entity's start date equals or
// postdates the as-of date. It wraps ErrInputValidation.
var ErrNonPositiveTenure = fmt.Errorf("%w: elapsed days must be positive", ErrInputValidation)

// DaysPerMonth is the fixed month length used for monthly rate
// normalization. A 30-day month is an intentional approximation, not
// calendar-accurate.
const DaysPerMonth = 30

// PercentOfTotal returns value / total * 100.
func PercentOfTotal(value, total float64) (float64, error) {
	if total == 0 {
		return 0, ErrZeroTotal
	}
	return value / total * 100, nil
}

// WholeDaysBetween returns the number of whole days from start to asOf.
// Partial days truncate toward zero.
func WholeDaysBetween(start, asOf time.Time) int {
	return int(asOf.Sub(start).Hours() / 24)
}

// Rates holds tenure-normalized sales rates. SalesPerMonth is always
// SalesPerDay * DaysPerMonth.
type Rates struct {
	DaysElapsed   int
	SalesPerDay   float64
	SalesPerMonth float64
}

// NormalizeRates converts a sales total into per-day and per-month rates
// over the interval from start to the explicit asOf date. The interval must
// be strictly positive in whole days.
func NormalizeRates(total float64, start, asOf time.Time) (Rates, error) {
	days := WholeDaysBetween(start, asOf)
	if days <= 0 {
		return Rates{}, fmt.Errorf("%w: start date %s is not before as-of date %s",
			ErrNonPositiveTenure, start.Format("2006-01-02"), asOf.Format("2006-01-02"))
	}

	perDay := total / float64(days)
	return Rates{
		DaysElapsed:   days,
		SalesPerDay:   perDay,
		SalesPerMonth: perDay * DaysPerMonth,
	}, nil
}

// FoldSmallGroups partitions items by group size: groups at or above
// threshold are kept, smaller ones are returned separately for the caller to
// merge into a synthetic "Other" group. Relative order is preserved in both
// partitions.
func FoldSmallGroups[T any](items []T, size func(T) int, threshold int) (kept, folded []T) {
	for _, item := range items {
		if size(item) >= threshold {
			kept = append(kept, item)
		} else {
			folded = append(folded, item)
		}
	}
	return kept, folded
}
