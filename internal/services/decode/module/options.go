package module

import (
	"time"

	"vindex/internal/platform/config"
	"vindex/internal/services/decode/cache"
)

// Options holds configuration settings for the decode module
type Options struct {
	BaseURL        string
	UserAgent      string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	MaxRetries     int
	BackoffBase    time.Duration

	BreakerThreshold int
	BreakerCooldown  time.Duration

	CacheBackend string // memory | postgres
	CacheTTL     time.Duration
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	up := cfg.Prefix("VPIC_")
	dc := cfg.Prefix("DECODE_CACHE_")
	return Options{
		BaseURL:        up.MayString("BASE_URL", ""),
		UserAgent:      up.MayString("USER_AGENT", ""),
		ConnectTimeout: up.MayDuration("CONNECT_TIMEOUT", 5*time.Second),
		ReadTimeout:    up.MayDuration("READ_TIMEOUT", 45*time.Second),
		MaxRetries:     up.MayInt("MAX_RETRIES", 3),
		BackoffBase:    up.MayDuration("BACKOFF_BASE", 600*time.Millisecond),

		BreakerThreshold: up.MayInt("BREAKER_THRESHOLD", 5),
		BreakerCooldown:  up.MayDuration("BREAKER_COOLDOWN", 120*time.Second),

		CacheBackend: dc.MayEnum("BACKEND", "memory", "memory", "postgres"),
		CacheTTL:     dc.MayDuration("TTL", cache.DefaultTTL),
	}
}
