package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/at-tailor-made/market-intelligence/internal/model"
)

const amadeusDefaultBaseURL = "https://test.api.amadeus.com"

// AmadeusFetcher implements PriceFetcher using the Amadeus flight offers API.
// Quotes are requested in USD. The OAuth token is cached and refreshed a
// minute before it expires.
type AmadeusFetcher struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Keep      int // quotes kept per fetch
	Max       int // offers requested from the API
	Client    *http.Client

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewAmadeusFetcher creates a new fetcher with optional proxy support.
func NewAmadeusFetcher(baseURL, apiKey, apiSecret, proxyURL string) *AmadeusFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = amadeusDefaultBaseURL
	}
	return &AmadeusFetcher{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		APISecret: apiSecret,
		Keep:      5,
		Max:       10,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AmadeusFetcher) Name() string { return "amadeus" }

// amadeusToken is the OAuth2 token response shape.
type amadeusToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// amadeusOffers is the flight offers response shape.
type amadeusOffers struct {
	Data []struct {
		Price struct {
			Total string `json:"total"`
		} `json:"price"`
	} `json:"data"`
}

func (f *AmadeusFetcher) accessToken(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.token != "" && time.Now().Before(f.expires) {
		return f.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", f.APIKey)
	form.Set("client_secret", f.APISecret)

	req, err := http.NewRequestWithContext(ctx, "POST", f.BaseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("amadeus token: status %d, body: %s", resp.StatusCode, string(body))
	}

	var tok amadeusToken
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("amadeus decode token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("amadeus token: empty access_token")
	}

	f.token = tok.AccessToken
	f.expires = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	return f.token, nil
}

func (f *AmadeusFetcher) FetchPrices(ctx context.Context, route model.Route, departure time.Time) ([]float64, error) {
	token, err := f.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("originLocationCode", route.Origin)
	q.Set("destinationLocationCode", route.Destination)
	q.Set("departureDate", departure.Format("2006-01-02"))
	q.Set("adults", "1")
	q.Set("max", strconv.Itoa(f.Max))
	q.Set("currencyCode", "USD")

	endpoint := f.BaseURL + "/v2/shopping/flight-offers?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus fetch offers: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("amadeus read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("amadeus: status %d, body: %s", resp.StatusCode, string(body))
	}

	var offers amadeusOffers
	if err := json.Unmarshal(body, &offers); err != nil {
		return nil, fmt.Errorf("amadeus decode offers: %w", err)
	}
	return parseOfferPrices(&offers, f.Keep), nil
}

// parseOfferPrices extracts price totals from the offers payload, keeping the
// first keep usable quotes. Offers with missing or unparseable totals are
// skipped, not fatal.
func parseOfferPrices(offers *amadeusOffers, keep int) []float64 {
	prices := make([]float64, 0, keep)
	for _, offer := range offers.Data {
		p, err := strconv.ParseFloat(offer.Price.Total, 64)
		if err != nil {
			continue
		}
		prices = append(prices, p)
		if len(prices) == keep {
			break
		}
	}
	return prices
}
