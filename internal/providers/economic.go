package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// seriesResponse is the FRED-style observations payload.
type seriesResponse struct {
	Observations []observation `json:"observations"`
}

type observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// EconomicProvider derives the stress multiplier from two public
// indicators: the VIX volatility index and quarterly GDP growth. Both are
// optional; if either observation is missing the other still contributes.
type EconomicProvider struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewEconomicProvider(url, apiKey string, timeout time.Duration) *EconomicProvider {
	return &EconomicProvider{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CurrentMultiplier maps the indicators into [1.0, 2.0]. A VIX above its
// long-run average of 20 adds up to 0.6; negative GDP growth adds up to
// 0.4. Calm markets and positive growth leave the multiplier at 1.0.
func (p *EconomicProvider) CurrentMultiplier(ctx context.Context) (float64, error) {
	multiplier := 1.0
	fetched := 0

	if vix, err := p.latestValue(ctx, "VIXCLS"); err == nil {
		if vix > 20 {
			component := (vix - 20) / 50
			if component > 0.6 {
				component = 0.6
			}
			multiplier += component
		}
		fetched++
	}

	if gdp, err := p.latestValue(ctx, "A191RL1Q225SBEA"); err == nil {
		if gdp < 0 {
			component := -gdp / 10
			if component > 0.4 {
				component = 0.4
			}
			multiplier += component
		}
		fetched++
	}

	if fetched == 0 {
		return 0, fmt.Errorf("no economic indicators available")
	}

	if multiplier > 2.0 {
		multiplier = 2.0
	}
	return multiplier, nil
}

func (p *EconomicProvider) latestValue(ctx context.Context, series string) (float64, error) {
	url := fmt.Sprintf("%s?series_id=%s&api_key=%s&file_type=json&sort_order=desc&limit=1",
		p.url, series, p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch series %s: %w", series, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("series %s: unexpected status %d", series, resp.StatusCode)
	}

	var parsed seriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("failed to decode series %s: %w", series, err)
	}
	if len(parsed.Observations) == 0 {
		return 0, fmt.Errorf("series %s has no observations", series)
	}

	v, err := strconv.ParseFloat(parsed.Observations[0].Value, 64)
	if err != nil {
		return 0, fmt.Errorf("series %s: bad value %q", series, parsed.Observations[0].Value)
	}
	return v, nil
}
