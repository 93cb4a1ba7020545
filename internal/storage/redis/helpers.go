package redis

import (
	"encoding/json"
	"fmt"

	"github.com/goodtune/countup/internal/storage"
)

// encodeRecord serialises a record for storage in the history list
func encodeRecord(record storage.Record) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to encode history record: %w", err)
	}
	return string(data), nil
}

// decodeRecord converts a history list item back into a Record
func decodeRecord(item string) (*storage.Record, error) {
	var record storage.Record
	if err := json.Unmarshal([]byte(item), &record); err != nil {
		return nil, fmt.Errorf("failed to decode history record: %w", err)
	}
	if record.Seconds < 0 {
		return nil, fmt.Errorf("failed to decode history record: negative seconds %d", record.Seconds)
	}
	return &record, nil
}
