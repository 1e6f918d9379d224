package provider

import (
	"context"
	"time"

	"CoinCompare/internal/model"
)

// SearchProvider looks up coins by free-text query and returns candidates
// in the provider's own ranking order.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]model.SearchCandidate, error)
	Name() string
}

// PriceProvider returns the historical price points for a coin over a
// closed time window, ordered by timestamp.
type PriceProvider interface {
	PriceRange(ctx context.Context, coinID string, from, to time.Time) ([]model.PricePoint, error)
	Name() string
}
