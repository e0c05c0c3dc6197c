// vindex-decode decodes VINs from the command line, one JSON result per line
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"vindex/internal/adapters/vpic"
	"vindex/internal/platform/config"
	"vindex/internal/platform/logger"
	"vindex/internal/services/decode/cache"
	decodemod "vindex/internal/services/decode/module"
	"vindex/internal/services/decode/service"
)

// offlineRemote satisfies service.RemotePort without touching the network,
// pushing every VIN down the deterministic fallback path
type offlineRemote struct{}

func (offlineRemote) Fetch(context.Context, string) vpic.Outcome {
	return vpic.Outcome{Kind: vpic.KindDisabled}
}

func main() {
	offline := flag.Bool("offline", false, "skip the upstream service and decode from local tables only")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-offline] VIN [VIN...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	vins := flag.Args()
	if len(vins) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	l := logger.Get()
	batch := uuid.NewString()
	log := l.With().Str("batch", batch).Logger()

	o := decodemod.FromConfig(config.New())

	var remote service.RemotePort = offlineRemote{}
	if !*offline {
		remote = vpic.NewClient(vpic.Options{
			BaseURL:        o.BaseURL,
			UserAgent:      o.UserAgent,
			ConnectTimeout: o.ConnectTimeout,
			ReadTimeout:    o.ReadTimeout,
			MaxRetries:     o.MaxRetries,
			BackoffBase:    o.BackoffBase,
		}, vpic.NewBreaker(o.BreakerThreshold, o.BreakerCooldown))
	}

	// a process-lifetime memory cache still dedupes repeated VINs in one batch
	svc := service.New(cache.NewMemory(o.CacheTTL), remote, nil)

	enc := json.NewEncoder(os.Stdout)
	ctx := context.Background()

	failed := 0
	for _, raw := range vins {
		res, err := svc.Decode(ctx, raw)
		if err != nil {
			log.Error().Str("vin", raw).Str("reason", err.Error()).Msg("invalid VIN")
			failed++
			continue
		}
		if !res.Usable() {
			failed++
		}
		if err := enc.Encode(res); err != nil {
			log.Panic().Err(err).Msg("encode failed")
		}
	}

	if failed > 0 {
		log.Warn().Int("failed", failed).Int("total", len(vins)).Msg("batch finished with failures")
		os.Exit(1)
	}
}
