package provider

import (
	"context"
	"time"

	"CoinCompare/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Candidates []model.SearchCandidate
	Points     map[string][]model.PricePoint
	SearchErr  error
	RangeErr   error
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Search(_ context.Context, _ string) ([]model.SearchCandidate, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Candidates, nil
}

func (m *MockProvider) PriceRange(_ context.Context, coinID string, from, to time.Time) ([]model.PricePoint, error) {
	if m.RangeErr != nil {
		return nil, m.RangeErr
	}
	if pts, ok := m.Points[coinID]; ok {
		return pts, nil
	}
	return generateMockPoints(from, to, 100), nil
}

func generateMockPoints(from, to time.Time, base float64) []model.PricePoint {
	const count = 30
	step := to.Sub(from) / count
	points := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		points[i] = model.PricePoint{
			Time:  from.Add(time.Duration(i) * step),
			Price: base * (1 + float64(i-count/2)*0.002),
		}
	}
	return points
}
