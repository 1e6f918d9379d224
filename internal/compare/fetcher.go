package compare

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"CoinCompare/internal/model"
	"CoinCompare/internal/provider"
)

// Fetcher retrieves the paired price history for two selected coins.
type Fetcher struct {
	Provider       provider.PriceProvider
	Window         time.Duration // trailing window, e.g. 30 days
	RequestTimeout time.Duration // per-request bound; a hung request fails the cycle
}

// NewFetcher creates a Fetcher with the given trailing window and
// per-request timeout.
func NewFetcher(p provider.PriceProvider, window, requestTimeout time.Duration) *Fetcher {
	return &Fetcher{Provider: p, Window: window, RequestTimeout: requestTimeout}
}

// FetchPair issues the two range requests concurrently and waits for both.
// The window is fixed at call time and not re-evaluated mid-fetch. The join
// is all-or-nothing: if either request fails, both results are discarded
// and an error is returned.
func (f *Fetcher) FetchPair(ctx context.Context, selA, selB model.Selection) (*model.PriceSeries, *model.PriceSeries, error) {
	to := time.Now()
	from := to.Add(-f.Window)

	type result struct {
		points []model.PricePoint
		err    error
	}
	results := make([]result, 2)
	sels := []model.Selection{selA, selB}

	var wg sync.WaitGroup
	for i := range sels {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reqCtx, cancel := context.WithTimeout(ctx, f.RequestTimeout)
			defer cancel()
			points, err := f.Provider.PriceRange(reqCtx, sels[i].ID, from, to)
			results[i] = result{points: points, err: err}
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		if res.err != nil {
			return nil, nil, fmt.Errorf("price range for %s: %w", sels[i].ID, res.err)
		}
	}

	// Timeline labels are derived from series A; the provider is trusted to
	// return both series on the same timestamps for an identical window.
	if len(results[0].points) != len(results[1].points) {
		log.Printf("[WARN] series length mismatch: %s has %d points, %s has %d",
			selA.ID, len(results[0].points), selB.ID, len(results[1].points))
	}

	seriesA := &model.PriceSeries{Slot: model.SlotA, CoinID: selA.ID, Name: selA.Name, Points: results[0].points}
	seriesB := &model.PriceSeries{Slot: model.SlotB, CoinID: selB.ID, Name: selB.Name, Points: results[1].points}
	return seriesA, seriesB, nil
}
