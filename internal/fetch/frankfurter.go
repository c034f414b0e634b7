package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/at-tailor-made/market-intelligence/internal/model"
)

const frankfurterDefaultBaseURL = "https://api.frankfurter.dev"

// FrankfurterFetcher implements RateFetcher using the Frankfurter public
// exchange-rate API.
type FrankfurterFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewFrankfurterFetcher creates a new fetcher with optional proxy support.
func NewFrankfurterFetcher(baseURL, proxyURL string) *FrankfurterFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = frankfurterDefaultBaseURL
	}
	return &FrankfurterFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *FrankfurterFetcher) Name() string { return "frankfurter" }

// frankfurterLatest is the response shape from the latest-rates endpoint.
type frankfurterLatest struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRate quotes how many base-currency units one quote unit buys, so for
// MXN-USD it asks the API with base=USD and reads the MXN entry.
func (f *FrankfurterFetcher) FetchRate(ctx context.Context, pair model.Pair) ([]float64, error) {
	endpoint := fmt.Sprintf("%s/v1/latest?base=%s&symbols=%s",
		f.BaseURL, url.QueryEscape(pair.Quote), url.QueryEscape(pair.Base))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("frankfurter fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("frankfurter: status %d, body: %s", resp.StatusCode, string(body))
	}

	var latest frankfurterLatest
	if err := json.NewDecoder(resp.Body).Decode(&latest); err != nil {
		return nil, fmt.Errorf("frankfurter decode: %w", err)
	}

	rate, ok := latest.Rates[pair.Base]
	if !ok {
		return nil, fmt.Errorf("frankfurter: no %s rate in response", pair.Base)
	}
	return []float64{rate}, nil
}
