// Package vpic provides a resilient client for the NHTSA vPIC vehicle
// data API and the circuit breaker that guards it
package vpic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"vindex/internal/platform/logger"
)

const (
	baseURLDefault        = "https://vpic.nhtsa.dot.gov/api"
	defaultUA             = "vindex-decoder"
	defaultConnectTimeout = 5 * time.Second
	defaultReadTimeout    = 45 * time.Second
	defaultMaxRetries     = 3
	defaultBackoffBase    = 600 * time.Millisecond
	backoffCeiling        = 8 * time.Second
)

// retryableStatus is the fixed set of statuses worth another idempotent GET
var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// Retry config for transient statuses and transport timeouts
	MaxRetries  int
	BackoffBase time.Duration
}

// Client fetches decoded vehicle attributes for a VIN with timeouts,
// retries, and breaker protection. Safe for concurrent use
type Client struct {
	http    *http.Client
	opts    Options
	breaker *Breaker
	log     logger.Logger
	now     func() time.Time
	sleep   func(time.Duration)
}

// NewClient creates a Client with sane defaults around o
// breaker is required; share one per process
func NewClient(o Options, breaker *Breaker) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = defaultConnectTimeout
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = defaultReadTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetries
	}
	if o.BackoffBase <= 0 {
		o.BackoffBase = defaultBackoffBase
	}
	dialer := &net.Dialer{Timeout: o.ConnectTimeout}
	return &Client{
		http: &http.Client{
			Timeout:   o.ReadTimeout,
			Transport: &http.Transport{DialContext: dialer.DialContext},
		},
		opts:    o,
		breaker: breaker,
		log:     *logger.Named("vpic"),
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// Fetch performs one logical decode request for vin
// The breaker short-circuits without any network attempt while open;
// every real upstream interaction updates it
func (c *Client) Fetch(ctx context.Context, vin string) Outcome {
	if c.breaker.Open() {
		c.log.Debug().Str("vin", vin).Msg("vpic circuit open, short-circuiting")
		return failure(KindCircuitOpen, 0, "circuit open")
	}

	endpoint := fmt.Sprintf("%s/vehicles/DecodeVinValues/%s?format=json", c.opts.BaseURL, url.PathEscape(vin))
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			c.breaker.RecordFailure()
			return failure(KindRequestError, 0, ctx.Err().Error())
		default:
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			c.breaker.RecordFailure()
			return failure(KindRequestError, 0, err.Error())
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)
		req.Header.Set("Accept", "application/json")

		start := c.now()
		resp, err := c.http.Do(req)
		lat := c.now().Sub(start)

		if err != nil {
			if !isTimeout(err) {
				c.breaker.RecordFailure()
				return failure(KindRequestError, 0, err.Error())
			}
			if attempts >= c.opts.MaxRetries {
				c.breaker.RecordFailure()
				return failure(KindTimeout, 0, err.Error())
			}
			back := c.backoff(attempts)
			c.log.Warn().Dur("retry_in", back).Int("attempt", attempts).Msg("vpic timeout, retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.log.Debug().
			Str("vin", vin).
			Int("status", resp.StatusCode).
			Int("attempt", attempts).
			Dur("latency", lat).
			Msg("vpic http response")

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return c.consume(resp)
		}

		status := resp.StatusCode
		_ = drainAndClose(resp.Body)

		if retryableStatus[status] && attempts < c.opts.MaxRetries {
			back := c.backoff(attempts)
			c.log.Warn().Int("status", status).Dur("retry_in", back).Int("attempt", attempts).
				Msg("vpic transient status, retrying")
			c.sleep(back)
			attempts++
			continue
		}

		c.breaker.RecordFailure()
		return failure(KindHTTPError, status, fmt.Sprintf("unexpected status %d", status))
	}
}

// consume parses the response body and settles the breaker
func (c *Client) consume(resp *http.Response) Outcome {
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&env); err != nil {
		c.breaker.RecordFailure()
		return failure(KindBadResponse, resp.StatusCode, err.Error())
	}

	var rec record
	if len(env.Results) > 0 {
		rec = env.Results[0]
	}
	if rec.empty() {
		// valid VIN the upstream does not recognize; still an unproductive
		// interaction for breaker purposes
		c.breaker.RecordFailure()
		out := failure(KindNoData, resp.StatusCode, "upstream returned no usable record")
		out.ErrorText = rec.ErrorText
		out.ErrorCode = rec.ErrorCode
		return out
	}

	c.breaker.RecordSuccess()
	return success(rec.fields(), rec.ErrorText, rec.ErrorCode)
}

// backoff is exponential in the attempt index with a fixed ceiling
func (c *Client) backoff(attempt int) time.Duration {
	d := c.opts.BackoffBase << uint(attempt)
	if d > backoffCeiling {
		d = backoffCeiling
	}
	return d
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 4096))
	return rc.Close()
}
