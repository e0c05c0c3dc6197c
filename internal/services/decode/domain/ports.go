package domain

import "context"

// ServicePort is the single public decode operation
type ServicePort interface {
	// Decode turns raw input into a Result. A non-nil error is returned
	// only for terminal validation failures; every other outcome,
	// including insufficient fallback data, arrives as a Result whose
	// Source tag tells the caller what it is
	Decode(ctx context.Context, raw string) (Result, error)
}

// CachePort maps a normalized VIN to a previously computed Result
// Implementations own their entries; staleness is decided inside Get
type CachePort interface {
	Get(ctx context.Context, vin string) (Result, bool, error)
	Set(ctx context.Context, vin string, res Result) error
}
