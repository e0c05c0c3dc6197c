// Package repokit provides the shared seams repository implementations
// build on: the cache repo binds a Queryer, the audit repo a ClickHouse handle
package repokit

import (
	"context"

	"vindex/internal/platform/store"
	ch "vindex/internal/platform/store/ch"
)

// Queryer is the minimal read/write surface a SQL repo needs
type Queryer = store.RowQuerier

// RowQuerier is kept for callers that prefer the store name
type RowQuerier = store.RowQuerier

// TxRunner executes a function inside a transaction
type TxRunner = store.TxRunner

type (
	// Rows is a query result set
	Rows = store.Rows

	// Row is a single-row result
	Row = store.Row

	// CommandTag reports the outcome of a data-modifying command
	CommandTag = store.CommandTag
)

// WithTx runs fn inside a transaction; cache upsert-plus-prune uses this
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// PG hands back a Postgres RowQuerier without importing a driver
func PG(_ context.Context, q store.RowQuerier) store.RowQuerier { return q }

// TX hands back a TxRunner without importing a driver
func TX(_ context.Context, tx store.TxRunner) store.TxRunner { return tx }

// CH hands back the ClickHouse handle the audit repo writes through
func CH(_ context.Context, db *ch.CH) *ch.CH { return db }
