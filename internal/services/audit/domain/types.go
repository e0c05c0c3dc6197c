// Package domain defines the types and interfaces for the audit service
package domain

import "time"

// Event is one decode outcome, recorded for support and debugging
// VINHash is the xxh3 of the normalized VIN; the raw VIN never leaves
// the decode path
type Event struct {
	ID              string    `json:"id"`
	At              time.Time `json:"at"`
	VINHash         string    `json:"vin_hash"`
	WMI             string    `json:"wmi,omitempty"`
	Source          string    `json:"source"`
	CacheHit        bool      `json:"cache_hit"`
	RemoteStatus    int       `json:"remote_status,omitempty"`
	RemoteErrorKind string    `json:"remote_error_kind,omitempty"`
	LatencyMs       int64     `json:"latency_ms"`
	DecoderVersion  int       `json:"decoder_version"`
}
