// Package store is the persistence layer for rooms, items, tags, preferences
// and the account. Functions take the *sql.DB handle opened by package db.
package store

import (
	"context"
	"database/sql"
	"errors"
)

// Sentinel errors returned by write operations.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnknownRoom  = errors.New("unknown room")
	ErrUnknownTag   = errors.New("unknown tag")
	ErrInvalidOrder = errors.New("room order must list every room exactly once")
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func count(ctx context.Context, q querier, query string, args ...any) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func affected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
