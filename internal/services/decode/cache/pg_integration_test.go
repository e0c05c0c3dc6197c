//go:build integration_pg
// +build integration_pg

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"vindex/internal/modkit/repokit"
	"vindex/internal/platform/store"
	"vindex/internal/services/decode/domain"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const createVinCache = `
	CREATE TABLE IF NOT EXISTS vin_cache (
		vin_hash        BIGINT PRIMARY KEY,
		vin             TEXT NOT NULL,
		result          JSONB NOT NULL,
		decoder_version INT NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}
	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("mapped port: %v", err)
	}
	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	return dsn, func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
}

func TestPG_RoundTripAndTTL(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2}})
	if err != nil {
		t.Fatalf("store open: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	if _, err := st.PG.Exec(ctx, createVinCache); err != nil {
		t.Fatalf("create table: %v", err)
	}

	const vin = "1HGCM82633A004352"
	c := NewPG(st.PG, time.Hour)

	if _, ok, err := c.Get(ctx, vin); err != nil || ok {
		t.Fatalf("empty cache should miss cleanly, ok=%v err=%v", ok, err)
	}

	want := domain.Result{Source: domain.SourceRemote, Brand: "HONDA", Model: "Accord", Year: "2003", Version: domain.Version}
	if err := c.Set(ctx, vin, want); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(ctx, vin)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if got.Brand != "HONDA" || got.Source != domain.SourceRemote {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	// upsert keeps a single row per vin
	want.Trim = "EX"
	if err := c.Set(ctx, vin, want); err != nil {
		t.Fatalf("second set: %v", err)
	}
	got, ok, _ = c.Get(ctx, vin)
	if !ok || got.Trim != "EX" {
		t.Fatalf("upsert should overwrite, got %+v", got)
	}

	// a zero TTL cache treats everything as stale
	stale := NewPG(st.PG, time.Nanosecond)
	if _, ok, _ := stale.Get(ctx, vin); ok {
		t.Fatalf("entry past TTL must be absent")
	}

	// rows written by another decoder revision are absent
	if _, err := st.PG.Exec(ctx, `UPDATE vin_cache SET decoder_version = decoder_version - 1`); err != nil {
		t.Fatalf("downgrade version: %v", err)
	}
	if _, ok, _ := c.Get(ctx, vin); ok {
		t.Fatalf("version mismatch must be absent")
	}
}

func TestPG_SweepsExpiredRows(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2}})
	if err != nil {
		t.Fatalf("store open: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()

	if _, err := st.PG.Exec(ctx, createVinCache); err != nil {
		t.Fatalf("create table: %v", err)
	}

	tx := repokit.WithBeginHooks(st.PG, StatementTimeoutHook(5*time.Second))
	c := NewPG(tx, time.Hour)

	// plant a long-expired row
	if err := c.Set(ctx, "5YJ3E1EA7KF000316", domain.Result{Source: domain.SourceRemote, Version: domain.Version}); err != nil {
		t.Fatalf("seed set: %v", err)
	}
	if _, err := st.PG.Exec(ctx, `UPDATE vin_cache SET created_at = now() - interval '2 hours'`); err != nil {
		t.Fatalf("age row: %v", err)
	}

	// arm the counter so the next write sweeps
	c.writes.Store(pruneEvery - 1)
	if err := c.Set(ctx, "1HGCM82633A004352", domain.Result{Source: domain.SourceRemote, Version: domain.Version}); err != nil {
		t.Fatalf("sweeping set: %v", err)
	}

	var n int64
	if err := st.PG.QueryRow(ctx, `SELECT count(*) FROM vin_cache`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected the expired row to be swept, have %d rows", n)
	}
}
