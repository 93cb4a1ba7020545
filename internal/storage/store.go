package storage

import "context"

// HistoryStore keeps finished activity records, most recent first.
type HistoryStore interface {
	Prepend(ctx context.Context, record Record) error
	List(ctx context.Context) ([]Record, error)
	Clear(ctx context.Context) error
	Close() error
}

// TotalSeconds folds a history into its aggregate total.
func TotalSeconds(records []Record) int64 {
	var total int64
	for _, r := range records {
		total += r.Seconds
	}
	return total
}
