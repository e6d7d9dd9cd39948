// Package pgx implements store.NetworkStorage on PostgreSQL.
package pgx

import (
	"context"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ryuzo-k/kokoro-graph/pkg/store"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
	Begin(ctx context.Context) (pgxv5.Tx, error)
}

// NetworkDBStorage implements the NetworkStorage interface on top of a
// pgx connection or pool. All queries are owner-scoped; cross-owner
// reads are not possible through this type.
type NetworkDBStorage struct {
	conn pgxIConn
}

var _ store.NetworkStorage = (*NetworkDBStorage)(nil)

// NewNetworkDBStorageWithConnection creates a NetworkDBStorage using an
// existing connection. The caller keeps ownership of the connection's
// lifecycle.
func NewNetworkDBStorageWithConnection(conn pgxIConn) *NetworkDBStorage {
	return &NetworkDBStorage{conn: conn}
}
