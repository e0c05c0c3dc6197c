package module

import (
	"time"

	"vindex/internal/platform/config"
)

// Options holds configuration settings for the audit module
type Options struct {
	BufferSize    int
	FlushInterval time.Duration
	FlushBatch    int
	HardLimit     int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	a := cfg.Prefix("AUDIT_")
	return Options{
		BufferSize:    a.MayInt("BUFFER_SIZE", 1024),
		FlushInterval: a.MayDuration("FLUSH_INTERVAL", 2*time.Second),
		FlushBatch:    a.MayInt("FLUSH_BATCH", 256),
		HardLimit:     a.MayInt("HARD_LIMIT", 500),
	}
}
