package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"sync/atomic"
	"time"

	"vindex/internal/modkit/repokit"
	perr "vindex/internal/platform/errors"
	"vindex/internal/platform/store"
	"vindex/internal/services/decode/domain"
)

// pruneEvery bounds how often a write also sweeps expired rows
const pruneEvery = 128

// PG is the Postgres-backed cache. Same contract as Memory but entries
// survive process restarts; useful when several replicas share a cache.
// Schema:
//
//	CREATE TABLE vin_cache (
//	  vin_hash        BIGINT PRIMARY KEY,
//	  vin             TEXT NOT NULL,
//	  result          JSONB NOT NULL,
//	  decoder_version INT NOT NULL,
//	  created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
//	)
type PG struct {
	tx     repokit.TxRunner
	ttl    time.Duration
	writes atomic.Int64
}

// NewPG binds a Postgres cache to tx; ttl <= 0 selects DefaultTTL
func NewPG(tx repokit.TxRunner, ttl time.Duration) *PG {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if tx == nil {
		panic("cache: nil TxRunner")
	}
	return &PG{tx: tx, ttl: ttl}
}

// PGBinder adapts NewPG to the repokit binder shape for module wiring
func PGBinder(ttl time.Duration) repokit.BindFunc[domain.CachePort] {
	return func(q repokit.Queryer) domain.CachePort {
		tx, ok := q.(repokit.TxRunner)
		if !ok {
			panic("cache: queryer does not run transactions")
		}
		return NewPG(tx, ttl)
	}
}

// StatementTimeoutHook caps every cache transaction at d so a slow or
// wedged database degrades the cache, not the decode path
func StatementTimeoutHook(d time.Duration) repokit.BeginHook {
	return func(ctx context.Context, q repokit.Queryer) error {
		// SET LOCAL cannot take bind parameters; set_config(is_local=true) can
		_, err := q.Exec(ctx,
			"SELECT set_config('statement_timeout', $1, true)",
			strconv.FormatInt(int64(d/time.Millisecond), 10))
		return err
	}
}

// Get implements domain.CachePort; TTL and version are enforced in the query
func (p *PG) Get(ctx context.Context, vin string) (domain.Result, bool, error) {
	const q = `
		SELECT result
		FROM vin_cache
		WHERE vin_hash = $1
			AND decoder_version = $2
			AND created_at > now() - make_interval(secs => $3)`
	raw, err := store.Scalar[[]byte](ctx, p.tx, q, int64(Key(vin)), domain.Version, p.ttl.Seconds())
	if err != nil {
		if perr.IsNoRows(err) {
			return domain.Result{}, false, nil
		}
		return domain.Result{}, false, perr.FromPostgres(err, "vin cache get failed")
	}
	var res domain.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		// a row we cannot decode is as good as absent
		return domain.Result{}, false, nil
	}
	return res, true, nil
}

// Set implements domain.CachePort via upsert with a fresh timestamp
// Every pruneEvery-th write also sweeps expired rows in the same tx so
// the table does not grow without bound
func (p *PG) Set(ctx context.Context, vin string, res domain.Result) error {
	raw, err := json.Marshal(res)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "vin cache marshal failed")
	}
	const upsert = `
		INSERT INTO vin_cache (vin_hash, vin, result, decoder_version, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (vin_hash) DO UPDATE
			SET vin = EXCLUDED.vin,
				result = EXCLUDED.result,
				decoder_version = EXCLUDED.decoder_version,
				created_at = now()`
	const prune = `
		DELETE FROM vin_cache
		WHERE created_at <= now() - make_interval(secs => $1)`

	sweep := p.writes.Add(1)%pruneEvery == 0
	write := func() error {
		return repokit.WithTx(ctx, p.tx, func(q repokit.Queryer) error {
			if err := store.ExecOne(ctx, q, upsert, int64(Key(vin)), vin, raw, domain.Version); err != nil {
				return err
			}
			if sweep {
				if _, err := store.Exec(ctx, q, prune, p.ttl.Seconds()); err != nil {
					return err
				}
			}
			return nil
		})
	}

	err = write()
	if err != nil && perr.IsRetryable(err) {
		// concurrent upserts of the same VIN can trip serialization failures;
		// one immediate retry clears the common case
		err = write()
	}
	if err != nil {
		return perr.FromPostgres(err, "vin cache set failed")
	}
	return nil
}
