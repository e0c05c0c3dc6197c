package domain

import "context"

// RecorderPort accepts decode events; implementations must never block
// or fail the decode path on behalf of auditing
type RecorderPort interface {
	Record(ev Event)
}

// QueryPort reads events back for the ops endpoint
type QueryPort interface {
	Recent(ctx context.Context, limit int) ([]Event, error)
}

// StoragePort is the sink the audit service flushes batches into
type StoragePort interface {
	WriteBatch(ctx context.Context, xs []Event) error
	Recent(ctx context.Context, limit int) ([]Event, error)
}
