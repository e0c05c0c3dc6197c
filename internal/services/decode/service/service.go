// Package service provides the decode orchestrator
// Pipeline per call: normalize -> validate -> cache read ->
// [breaker -> remote] -> offline fallback -> cache write -> result
package service

import (
	"context"
	"fmt"
	"time"

	"vindex/internal/adapters/vpic"
	"vindex/internal/core/vin"
	perr "vindex/internal/platform/errors"
	"vindex/internal/platform/logger"
	auditdom "vindex/internal/services/audit/domain"
	"vindex/internal/services/decode/cache"
	dom "vindex/internal/services/decode/domain"
)

// RemotePort is the slice of the vpic client the orchestrator needs
type RemotePort interface {
	Fetch(ctx context.Context, vin string) vpic.Outcome
}

// Service implements domain.ServicePort
// Cache and remote are injected so tests get a fresh breaker and cache
// per case; audit is optional and may be nil
type Service struct {
	cache  dom.CachePort
	remote RemotePort
	audit  auditdom.RecorderPort
	log    logger.Logger
	now    func() time.Time
}

// New constructs the decode service; audit may be nil
func New(c dom.CachePort, r RemotePort, audit auditdom.RecorderPort) *Service {
	return &Service{
		cache:  c,
		remote: r,
		audit:  audit,
		log:    *logger.Named("decode"),
		now:    time.Now,
	}
}

// Decode implements domain.ServicePort
func (s *Service) Decode(ctx context.Context, raw string) (dom.Result, error) {
	start := s.now()

	v := vin.Normalize(raw)
	if verr := vin.Validate(v); verr != nil {
		// terminal: no cache, no network, no audit noise
		return dom.Result{}, perr.WithField(perr.Validationf("%s", verr.Error()), "vin")
	}

	if res, ok, err := s.cache.Get(ctx, v); err != nil {
		// a broken cache must not take decoding down with it
		s.log.Warn().Err(err).Msg("cache read failed, continuing without it")
	} else if ok {
		s.record(v, res, true, start)
		return res, nil
	}

	out := s.remote.Fetch(ctx, v)
	if out.OK {
		res := s.fromRemote(v, out)
		s.cacheSet(ctx, v, res)
		s.record(v, res, false, start)
		return res, nil
	}

	res := s.fromFallback(v, out)
	if res.Source == dom.SourceOfflineFallback {
		// usable inference is worth caching; insufficient outcomes are
		// not, so the next call re-attempts the network
		s.cacheSet(ctx, v, res)
	}
	s.record(v, res, false, start)
	return res, nil
}

func (s *Service) cacheSet(ctx context.Context, v string, res dom.Result) {
	if err := s.cache.Set(ctx, v, res); err != nil {
		s.log.Warn().Err(err).Msg("cache write failed")
	}
}

func (s *Service) record(v string, res dom.Result, cacheHit bool, start time.Time) {
	if s.audit == nil {
		return
	}
	s.audit.Record(auditdom.Event{
		At:              s.now(),
		VINHash:         fmt.Sprintf("%016x", cache.Key(v)),
		WMI:             res.WMI,
		Source:          string(res.Source),
		CacheHit:        cacheHit,
		RemoteStatus:    res.RemoteStatus,
		RemoteErrorKind: res.RemoteErrorCode,
		LatencyMs:       s.now().Sub(start).Milliseconds(),
		DecoderVersion:  dom.Version,
	})
}
