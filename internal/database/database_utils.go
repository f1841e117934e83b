// Trackledger - Digital Music Store Sales Analytics
// Copyright 2026 Trackledger Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/trackledger/trackledger

package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ensureContext creates a context with a 30-second timeout if none provided.
// Report queries are expected to run to completion; the default timeout
// keeps a wedged data source from hanging the whole run.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}

// dataAccessErr wraps a driver error so callers can classify it with
// errors.Is(err, ErrDataAccess) while keeping the original chain intact.
func dataAccessErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrDataAccess, err))
}

// closeQuietly closes a resource, discarding any error.
func closeQuietly(c io.Closer) {
	_ = c.Close()
}
