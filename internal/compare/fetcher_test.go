package compare

import (
	"context"
	"sync"
	"testing"
	"time"

	"CoinCompare/internal/model"
)

type windowCapture struct {
	mu      sync.Mutex
	windows [][2]time.Time
}

func (w *windowCapture) Name() string { return "capture" }

func (w *windowCapture) PriceRange(_ context.Context, _ string, from, to time.Time) ([]model.PricePoint, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.windows = append(w.windows, [2]time.Time{from, to})
	return fixedPoints(3), nil
}

func TestFetchPair_WindowFixedAtCycleStart(t *testing.T) {
	captured := &windowCapture{}
	f := NewFetcher(captured, 30*24*time.Hour, time.Second)

	before := time.Now()
	a, b, err := f.FetchPair(context.Background(),
		model.Selection{ID: "bitcoin", Name: "Bitcoin"},
		model.Selection{ID: "ethereum", Name: "Ethereum"})
	if err != nil {
		t.Fatalf("fetch pair: %v", err)
	}

	captured.mu.Lock()
	defer captured.mu.Unlock()
	if len(captured.windows) != 2 {
		t.Fatalf("expected 2 range requests, got %d", len(captured.windows))
	}
	// Both requests share the exact same window, computed once.
	if !captured.windows[0][0].Equal(captured.windows[1][0]) || !captured.windows[0][1].Equal(captured.windows[1][1]) {
		t.Errorf("requests used different windows: %v vs %v", captured.windows[0], captured.windows[1])
	}
	from, to := captured.windows[0][0], captured.windows[0][1]
	if got := to.Sub(from); got != 30*24*time.Hour {
		t.Errorf("window span %v, want 30 days", got)
	}
	if to.Before(before) {
		t.Errorf("window end %v predates cycle start %v", to, before)
	}

	if a.Slot != model.SlotA || b.Slot != model.SlotB {
		t.Errorf("series slots %q / %q, want a / b", a.Slot, b.Slot)
	}
	if a.Name != "Bitcoin" || b.Name != "Ethereum" {
		t.Errorf("series names %q / %q", a.Name, b.Name)
	}
}
