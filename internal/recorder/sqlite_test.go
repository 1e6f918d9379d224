package recorder

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteRecorder_CycleInserts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	records := []*CycleRecord{
		{CoinA: "bitcoin", CoinB: "ethereum", Outcome: "COMMITTED", PointsA: 30, PointsB: 30, Duration: 250 * time.Millisecond},
		{CoinA: "bitcoin", CoinB: "ethereum", Outcome: "FAILED", Duration: 80 * time.Millisecond, Error: "rate limited"},
		{CoinA: "solana", CoinB: "ethereum", Outcome: "STALE", Duration: 120 * time.Millisecond},
	}
	for _, rec := range records {
		if err := r.RecordCycle(rec); err != nil {
			t.Fatalf("record cycle %s: %v", rec.Outcome, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM fetch_cycles`).Scan(&n); err != nil {
		t.Fatalf("count cycles: %v", err)
	}
	if n != len(records) {
		t.Fatalf("expected %d cycle rows, got %d", len(records), n)
	}

	var coinA, coinB, outcome, errMsg string
	var pointsA, pointsB int
	var durationMs int64
	err = db.QueryRow(`SELECT coin_a, coin_b, outcome, points_a, points_b, duration_ms, error
		FROM fetch_cycles ORDER BY id LIMIT 1`).
		Scan(&coinA, &coinB, &outcome, &pointsA, &pointsB, &durationMs, &errMsg)
	if err != nil {
		t.Fatalf("read first cycle row: %v", err)
	}
	if coinA != "bitcoin" || coinB != "ethereum" || outcome != "COMMITTED" {
		t.Errorf("unexpected row: %s/%s %s", coinA, coinB, outcome)
	}
	if pointsA != 30 || pointsB != 30 {
		t.Errorf("unexpected point counts: %d/%d", pointsA, pointsB)
	}
	if durationMs != 250 {
		t.Errorf("duration stored as %dms, want 250", durationMs)
	}
	if errMsg != "" {
		t.Errorf("unexpected error text %q", errMsg)
	}

	if err := db.QueryRow(`SELECT error FROM fetch_cycles WHERE outcome = 'FAILED'`).Scan(&errMsg); err != nil {
		t.Fatalf("read failed cycle row: %v", err)
	}
	if errMsg != "rate limited" {
		t.Errorf("failed cycle error %q, want %q", errMsg, "rate limited")
	}
}

func TestSQLiteRecorder_SearchFailureInserts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	if err := r.RecordSearchFailure(&SearchFailure{Slot: "a", Query: "bit", Error: "provider down"}); err != nil {
		t.Fatalf("record search failure: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var slot, query, errMsg string
	err = db.QueryRow(`SELECT slot, query, error FROM search_failures`).Scan(&slot, &query, &errMsg)
	if err != nil {
		t.Fatalf("read search failure row: %v", err)
	}
	if slot != "a" || query != "bit" || errMsg != "provider down" {
		t.Errorf("unexpected row: %s %q %q", slot, query, errMsg)
	}
}

func TestSQLiteRecorder_ReopenKeepsSchema(t *testing.T) {
	// Migrations are idempotent: reopening an existing database must not fail
	// and must keep earlier rows.
	path := filepath.Join(t.TempDir(), "diag.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.RecordCycle(&CycleRecord{CoinA: "bitcoin", CoinB: "ethereum", Outcome: "COMMITTED"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}

	r2, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r2.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM fetch_cycles`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 row after reopen, got %d", n)
	}
}

func TestNewSQLiteRecorder_OpenFailure(t *testing.T) {
	// Parent directory does not exist; the open must fail, matching the
	// noop-fallback path in main.
	path := filepath.Join(t.TempDir(), "missing", "diag.db")
	if _, err := NewSQLiteRecorder(path); err == nil {
		t.Fatal("expected error for unreachable database path")
	}
}
