package indexpager

import "context"

// ScanRequest describes one primitive ordered scan. The Range is always
// canonical; Fields is the fully resolved index field list (tie-breakers
// included) and defines the sort key for Order.
type ScanRequest struct {
	Table  string
	Index  string
	Fields []string
	Range  Range
	Order  Order
	// Limit caps the number of returned rows; NoLimit means unbounded.
	Limit int
}

// Streamer is the ordered index scan primitive a storage backend supplies.
// Implementations must return rows sorted by the projected index key in the
// requested order and must not retry internally; errors propagate to the
// caller unchanged.
type Streamer[T any] interface {
	Scan(ctx context.Context, req ScanRequest) ([]T, error)
}
