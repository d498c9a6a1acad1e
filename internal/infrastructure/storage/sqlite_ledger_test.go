package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestLedger(t *testing.T) (*SQLiteLedger, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ledger.db")
	ledger, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = ledger.Close() })

	return ledger, path
}

func TestMarkSeenThenSeen(t *testing.T) {
	t.Parallel()

	ledger, _ := openTestLedger(t)
	ctx := context.Background()

	seen, err := ledger.Seen(ctx, "https://news.example/1")
	if err != nil {
		t.Fatalf("Seen error: %v", err)
	}
	if seen {
		t.Fatal("fresh URL reported as seen")
	}

	if err := ledger.MarkSeen(ctx, "https://news.example/1"); err != nil {
		t.Fatalf("MarkSeen error: %v", err)
	}

	seen, err = ledger.Seen(ctx, "https://news.example/1")
	if err != nil {
		t.Fatalf("Seen error: %v", err)
	}
	if !seen {
		t.Fatal("marked URL not reported as seen")
	}

	// Exact string match only: a trailing slash is a different URL.
	seen, err = ledger.Seen(ctx, "https://news.example/1/")
	if err != nil {
		t.Fatalf("Seen error: %v", err)
	}
	if seen {
		t.Fatal("variant URL unexpectedly reported as seen")
	}
}

func TestMarkSeenIdempotent(t *testing.T) {
	t.Parallel()

	ledger, _ := openTestLedger(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := ledger.MarkSeen(ctx, "https://news.example/dup"); err != nil {
			t.Fatalf("MarkSeen run %d error: %v", i, err)
		}
	}

	seen, err := ledger.Seen(ctx, "https://news.example/dup")
	if err != nil {
		t.Fatalf("Seen error: %v", err)
	}
	if !seen {
		t.Fatal("URL not seen after repeated marks")
	}
}

func TestLedgerPersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := first.MarkSeen(ctx, "https://news.example/persist"); err != nil {
		t.Fatalf("MarkSeen error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer second.Close()

	seen, err := second.Seen(ctx, "https://news.example/persist")
	if err != nil {
		t.Fatalf("Seen error: %v", err)
	}
	if !seen {
		t.Fatal("ledger entry lost across reopen")
	}
}

func TestEntries(t *testing.T) {
	t.Parallel()

	ledger, _ := openTestLedger(t)
	ctx := context.Background()

	for _, url := range []string{"https://news.example/a", "https://news.example/b"} {
		if err := ledger.MarkSeen(ctx, url); err != nil {
			t.Fatalf("MarkSeen error: %v", err)
		}
	}

	entries, err := ledger.Entries(ctx, 10)
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.URL == "" {
			t.Fatal("entry with empty URL")
		}
		if d := time.Since(e.WatchedAt); d < 0 || d > time.Minute {
			t.Fatalf("implausible WatchedAt %v", e.WatchedAt)
		}
	}

	limited, err := ledger.Entries(ctx, 1)
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 entry with limit, got %d", len(limited))
	}
}

func TestPruneBefore(t *testing.T) {
	t.Parallel()

	ledger, _ := openTestLedger(t)
	ctx := context.Background()

	if err := ledger.MarkSeen(ctx, "https://news.example/old"); err != nil {
		t.Fatalf("MarkSeen error: %v", err)
	}

	removed, err := ledger.PruneBefore(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("PruneBefore error: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}

	seen, err := ledger.Seen(ctx, "https://news.example/old")
	if err != nil {
		t.Fatalf("Seen error: %v", err)
	}
	if seen {
		t.Fatal("pruned URL still reported as seen")
	}

	removed, err = ledger.PruneBefore(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("PruneBefore error: %v", err)
	}
	if removed != 0 {
		t.Fatalf("expected 0 removed, got %d", removed)
	}
}
