// Package service provides the audit service: a bounded, asynchronous
// decode-event writer plus the read side for the ops endpoint
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vindex/internal/platform/logger"
	dom "vindex/internal/services/audit/domain"
)

// Config for the audit writer
type Config struct {
	BufferSize    int           // pending events before drops, default 1024
	FlushInterval time.Duration // default 2s
	FlushBatch    int           // max events per write, default 256
	HardLimit     int           // max rows Recent will return, default 500
}

// Service buffers events and flushes them in batches
// Record never blocks: when the buffer is full the event is dropped with
// a warning, auditing must not stand in the decode path
type Service struct {
	storage dom.StoragePort
	cfg     Config
	buf     chan dom.Event
	log     logger.Logger
}

// New constructs the audit service
func New(storage dom.StoragePort, cfg Config) *Service {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1024
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 2 * time.Second
	}
	if cfg.FlushBatch <= 0 {
		cfg.FlushBatch = 256
	}
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 500
	}
	return &Service{
		storage: storage,
		cfg:     cfg,
		buf:     make(chan dom.Event, cfg.BufferSize),
		log:     *logger.Named("audit"),
	}
}

// Record implements domain.RecorderPort
func (s *Service) Record(ev dom.Event) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	select {
	case s.buf <- ev:
	default:
		s.log.Warn().Str("vin_hash", ev.VINHash).Msg("audit buffer full, dropping event")
	}
}

// Recent implements domain.QueryPort
func (s *Service) Recent(ctx context.Context, limit int) ([]dom.Event, error) {
	if limit <= 0 || limit > s.cfg.HardLimit {
		limit = s.cfg.HardLimit
	}
	return s.storage.Recent(ctx, limit)
}

// Run drains the buffer until ctx is done, then flushes what is left
// Meant to be driven by an errgroup in main
func (s *Service) Run(ctx context.Context) error {
	tick := time.NewTicker(s.cfg.FlushInterval)
	defer tick.Stop()

	pending := make([]dom.Event, 0, s.cfg.FlushBatch)
	flush := func() {
		if len(pending) == 0 {
			return
		}
		// bounded write context so a dead sink cannot wedge the loop
		wctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s.storage.WriteBatch(wctx, pending); err != nil {
			s.log.Error().Err(err).Int("events", len(pending)).Msg("audit flush failed")
		}
		cancel()
		pending = pending[:0]
	}

	for {
		select {
		case <-ctx.Done():
			// drain whatever arrived before shutdown
			for {
				select {
				case ev := <-s.buf:
					pending = append(pending, ev)
					if len(pending) >= s.cfg.FlushBatch {
						flush()
					}
				default:
					flush()
					return ctx.Err()
				}
			}
		case ev := <-s.buf:
			pending = append(pending, ev)
			if len(pending) >= s.cfg.FlushBatch {
				flush()
			}
		case <-tick.C:
			flush()
		}
	}
}
