package store

import "time"

// Config aggregates per-backend configuration: Postgres for the VIN
// cache, ClickHouse for the audit trail
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures connectivity and tracing for the cache database
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// Guard/boot knobs:
	ConnectRetries int           // ping attempts before giving up; default 20
	PingTimeout    time.Duration // per-attempt ping budget; default 3s
}

// CHConfig configures the audit-trail connection
// ClientName/ClientTag identify the connecting process in system.query_log
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}

