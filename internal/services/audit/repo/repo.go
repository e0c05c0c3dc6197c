// Package repo provides the ClickHouse repository for decode events
package repo

import (
	"context"
	"time"

	"vindex/internal/platform/store"
	"vindex/internal/services/audit/domain"
)

// Schema (managed out of band):
//
//	CREATE TABLE decode_events (
//	  id                UUID,
//	  at                DateTime64(3, 'UTC'),
//	  vin_hash          String,
//	  wmi               LowCardinality(String),
//	  source            LowCardinality(String),
//	  cache_hit         Bool,
//	  remote_status     Int32,
//	  remote_error_kind LowCardinality(String),
//	  latency_ms        Int64,
//	  decoder_version   Int32
//	) ENGINE = MergeTree ORDER BY at

// CH implements domain.StoragePort against the clickhouse seam
type CH struct{ db store.Clickhouse }

// NewCH binds the repo to a clickhouse seam
func NewCH(db store.Clickhouse) *CH { return &CH{db: db} }

// WriteBatch appends a batch of events
func (r *CH) WriteBatch(ctx context.Context, xs []domain.Event) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, e := range xs {
		rows = append(rows, []any{
			e.ID,
			e.At.UTC(),
			e.VINHash,
			e.WMI,
			e.Source,
			e.CacheHit,
			int32(e.RemoteStatus),
			e.RemoteErrorKind,
			e.LatencyMs,
			int32(e.DecoderVersion),
		})
	}
	return r.db.Insert(ctx,
		"decode_events (id, at, vin_hash, wmi, source, cache_hit, remote_status, remote_error_kind, latency_ms, decoder_version)",
		rows)
}

// Recent returns the newest events, newest first
func (r *CH) Recent(ctx context.Context, limit int) ([]domain.Event, error) {
	const q = `
		SELECT id, at, vin_hash, wmi, source, cache_hit, remote_status, remote_error_kind, latency_ms, decoder_version
		FROM decode_events
		ORDER BY at DESC
		LIMIT ?`
	rows, err := r.db.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Event
	for rows.Next() {
		var (
			e      domain.Event
			at     time.Time
			status int32
			ver    int32
		)
		if err := rows.Scan(&e.ID, &at, &e.VINHash, &e.WMI, &e.Source, &e.CacheHit, &status, &e.RemoteErrorKind, &e.LatencyMs, &ver); err != nil {
			return nil, err
		}
		e.At = at
		e.RemoteStatus = int(status)
		e.DecoderVersion = int(ver)
		out = append(out, e)
	}
	return out, rows.Err()
}
