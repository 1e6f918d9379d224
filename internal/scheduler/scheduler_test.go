package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"CoinCompare/internal/compare"
	"CoinCompare/internal/model"
	"CoinCompare/internal/recorder"
)

type countingProvider struct {
	calls atomic.Int32
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) PriceRange(_ context.Context, _ string, from, _ time.Time) ([]model.PricePoint, error) {
	p.calls.Add(1)
	return []model.PricePoint{{Time: from, Price: 100}}, nil
}

func newRefreshStore(p *countingProvider) *compare.Store {
	fetcher := compare.NewFetcher(p, 30*24*time.Hour, time.Second)
	return compare.NewStore(context.Background(), fetcher, recorder.NewNoopRecorder(),
		"#3b82f6", "#f59e0b", 10*time.Millisecond)
}

func waitStatus(t *testing.T, s *compare.Store, want model.Status) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Status() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("status never reached %q, stuck at %q", want, s.Status())
}

func TestRegister_RejectsBadCronSpec(t *testing.T) {
	s := NewScheduler(newRefreshStore(&countingProvider{}))
	if err := s.Register("not a cron"); err == nil {
		t.Fatal("expected error for malformed cron spec")
	}
	if err := s.Register("0 */15 * * * *"); err != nil {
		t.Fatalf("valid cron spec rejected: %v", err)
	}
}

func TestRefresh_RerunsCurrentPair(t *testing.T) {
	p := &countingProvider{}
	store := newRefreshStore(p)
	s := NewScheduler(store)

	// No pair selected: refresh must not issue requests.
	s.refresh()
	time.Sleep(50 * time.Millisecond)
	if n := p.calls.Load(); n != 0 {
		t.Fatalf("refresh with empty slots issued %d requests", n)
	}

	selA := &model.Selection{ID: "bitcoin", Name: "Bitcoin"}
	selB := &model.Selection{ID: "ethereum", Name: "Ethereum"}
	store.SetSelection(model.SlotA, selA)
	store.SetSelection(model.SlotB, selB)
	waitStatus(t, store, model.StatusReady)
	before := p.calls.Load()

	s.refresh()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && p.calls.Load() < before+2 {
		time.Sleep(5 * time.Millisecond)
	}
	if got := p.calls.Load(); got != before+2 {
		t.Fatalf("expected refresh to issue 2 more requests, got %d -> %d", before, got)
	}
	waitStatus(t, store, model.StatusReady)
}
