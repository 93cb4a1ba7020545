package redis

import (
	"context"
	"fmt"

	"github.com/goodtune/countup/internal/storage"
	"github.com/redis/go-redis/v9"
)

// Prepend pushes a record onto the head of the history list
func (s *Store) Prepend(ctx context.Context, record storage.Record) error {
	payload, err := encodeRecord(record)
	if err != nil {
		return err
	}

	script := redis.NewScript(prependRecordScript)
	keys := []string{s.historyKey}
	args := []interface{}{payload}

	if err := script.Run(ctx, s.client, keys, args...).Err(); err != nil {
		return fmt.Errorf("failed to prepend history record: %w", err)
	}
	return nil
}

// List returns the history, most recent first
func (s *Store) List(ctx context.Context) ([]storage.Record, error) {
	items, err := s.client.LRange(ctx, s.historyKey, 0, -1).Result()
	if err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	records := make([]storage.Record, 0, len(items))
	for _, item := range items {
		record, err := decodeRecord(item)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, nil
}

// Clear discards the whole history
func (s *Store) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.historyKey).Err()
}
