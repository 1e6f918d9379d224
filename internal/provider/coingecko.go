package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"CoinCompare/internal/model"
)

// CoinGeckoClient implements SearchProvider and PriceProvider using the
// CoinGecko public API.
type CoinGeckoClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewCoinGeckoClient creates a CoinGecko client with optional proxy support.
func NewCoinGeckoClient(baseURL, apiKey, proxyURL string, timeout time.Duration) *CoinGeckoClient {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGeckoClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (c *CoinGeckoClient) Name() string { return "coingecko" }

// geckoSearch is the response structure of /api/v3/search.
type geckoSearch struct {
	Coins []struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Symbol        string `json:"symbol"`
		Thumb         string `json:"thumb"`
		MarketCapRank int    `json:"market_cap_rank"`
	} `json:"coins"`
}

// geckoRange is the response structure of /api/v3/coins/{id}/market_chart/range.
// Each entry is a [timestampMillis, price] pair.
type geckoRange struct {
	Prices [][2]float64 `json:"prices"`
}

func (c *CoinGeckoClient) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := fmt.Sprintf("%s%s?%s", c.BaseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// Search returns coin candidates for a free-text query, in the provider's
// ranking order. Ordering is not re-sorted locally.
func (c *CoinGeckoClient) Search(ctx context.Context, query string) ([]model.SearchCandidate, error) {
	q := url.Values{}
	q.Set("query", query)

	body, err := c.get(ctx, "/api/v3/search", q)
	if err != nil {
		return nil, err
	}

	var res geckoSearch
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("coingecko decode search: %w", err)
	}

	candidates := make([]model.SearchCandidate, 0, len(res.Coins))
	for _, coin := range res.Coins {
		candidates = append(candidates, model.SearchCandidate{
			ID:     coin.ID,
			Name:   coin.Name,
			Symbol: coin.Symbol,
			Icon:   coin.Thumb,
			Rank:   coin.MarketCapRank,
		})
	}
	return candidates, nil
}

// PriceRange returns USD price points for coinID between from and to,
// ordered by timestamp.
func (c *CoinGeckoClient) PriceRange(ctx context.Context, coinID string, from, to time.Time) ([]model.PricePoint, error) {
	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("from", fmt.Sprintf("%d", from.Unix()))
	q.Set("to", fmt.Sprintf("%d", to.Unix()))

	path := fmt.Sprintf("/api/v3/coins/%s/market_chart/range", url.PathEscape(coinID))
	body, err := c.get(ctx, path, q)
	if err != nil {
		return nil, err
	}

	var res geckoRange
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("coingecko decode range: %w", err)
	}
	if len(res.Prices) == 0 {
		return nil, fmt.Errorf("coingecko: no price data for %s", coinID)
	}

	points := make([]model.PricePoint, 0, len(res.Prices))
	for _, pair := range res.Prices {
		points = append(points, model.PricePoint{
			Time:  time.UnixMilli(int64(pair[0])),
			Price: pair[1],
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points, nil
}
