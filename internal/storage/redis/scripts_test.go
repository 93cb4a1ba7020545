package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// setupTestRedis creates a miniredis instance for testing Lua scripts
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr
}

func TestPrependRecordScript(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer client.Close()
	defer mr.Close()

	ctx := context.Background()
	script := redis.NewScript(prependRecordScript)

	tests := []struct {
		name    string
		pushes  []string
		wantLen int64
		wantTop string
	}{
		{
			name:    "single",
			pushes:  []string{"one"},
			wantLen: 1,
			wantTop: "one",
		},
		{
			name:    "newest first",
			pushes:  []string{"one", "two", "three"},
			wantLen: 3,
			wantTop: "three",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "script:" + tt.name
			var length int64
			for _, p := range tt.pushes {
				n, err := script.Run(ctx, client, []string{key}, p).Int64()
				if err != nil {
					t.Fatalf("Script failed: %v", err)
				}
				length = n
			}

			if length != tt.wantLen {
				t.Errorf("Expected length %d, got %d", tt.wantLen, length)
			}

			items, err := mr.List(key)
			if err != nil {
				t.Fatalf("Failed to read list: %v", err)
			}
			if items[0] != tt.wantTop {
				t.Errorf("Expected head %q, got %q", tt.wantTop, items[0])
			}
		})
	}
}
