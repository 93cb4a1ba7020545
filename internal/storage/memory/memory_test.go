package memory

import (
	"context"
	"testing"

	"github.com/goodtune/countup/internal/storage"
)

func TestStorePrependOrder(t *testing.T) {
	store := New()
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	records := []storage.Record{
		{Title: "First", Seconds: 10, FinishedAt: "2024-01-15 09:00:10"},
		{Title: "Second", Seconds: 20, FinishedAt: "2024-01-15 09:01:00"},
		{Title: "Third", Seconds: 30, FinishedAt: "2024-01-15 09:02:00"},
	}
	for _, r := range records {
		if err := store.Prepend(ctx, r); err != nil {
			t.Fatalf("prepend: %v", err)
		}
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	if got[0].Title != "Third" || got[2].Title != "First" {
		t.Errorf("expected most recent first, got %+v", got)
	}
	if total := storage.TotalSeconds(got); total != 60 {
		t.Errorf("expected total 60, got %d", total)
	}
}

func TestStoreKeepsEveryRecord(t *testing.T) {
	store := New()
	ctx := context.Background()

	var want int64
	for i := 1; i <= 500; i++ {
		seconds := int64(i * 10)
		want += seconds
		if err := store.Prepend(ctx, storage.Record{Title: "task", Seconds: seconds}); err != nil {
			t.Fatalf("prepend: %v", err)
		}
	}

	got, _ := store.List(ctx)
	if len(got) != 500 {
		t.Fatalf("expected 500 records, got %d", len(got))
	}
	if total := storage.TotalSeconds(got); total != want {
		t.Errorf("expected total %d, got %d", want, total)
	}
}

func TestStoreListReturnsCopy(t *testing.T) {
	store := New()
	ctx := context.Background()
	_ = store.Prepend(ctx, storage.Record{Title: "original", Seconds: 5})

	got, _ := store.List(ctx)
	got[0].Title = "mutated"

	again, _ := store.List(ctx)
	if again[0].Title != "original" {
		t.Errorf("expected stored record to be immutable, got %q", again[0].Title)
	}
}

func TestStoreClear(t *testing.T) {
	store := New()
	ctx := context.Background()
	_ = store.Prepend(ctx, storage.Record{Title: "x", Seconds: 5})

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ := store.List(ctx)
	if len(got) != 0 {
		t.Errorf("expected empty history, got %d records", len(got))
	}
}
