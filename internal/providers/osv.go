// Package providers implements the external data feeds the scorer consumes:
// per-library vulnerability scores and the macro-economic stress indicator.
// Every provider call is bounded by the caller's context; failures surface
// as errors and the scorer recovers with its local fallback.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// osvQuery is the request body for the OSV query endpoint.
type osvQuery struct {
	Package osvPackage `json:"package"`
}

type osvPackage struct {
	Name      string `json:"name"`
	Ecosystem string `json:"ecosystem"`
}

// osvResponse carries the vulnerability list for one package.
type osvResponse struct {
	Vulns []osvVuln `json:"vulns"`
}

type osvVuln struct {
	ID       string `json:"id"`
	Severity []struct {
		Type  string `json:"type"`
		Score string `json:"score"`
	} `json:"severity"`
}

// OSVProvider resolves per-library vulnerability scores from the OSV.dev
// batch query API. The score is derived from the count of known advisories
// for the package, clamped to [0, 8].
type OSVProvider struct {
	url        string
	ecosystem  string
	httpClient *http.Client
}

func NewOSVProvider(url string, timeout time.Duration) *OSVProvider {
	return &OSVProvider{
		url:       url,
		ecosystem: "PyPI",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// LibraryScore maps the advisory count for a package to [0, 8]: two points
// per known advisory. Packages with no advisories score 0.
func (p *OSVProvider) LibraryScore(ctx context.Context, name string) (int, error) {
	body, err := json.Marshal(osvQuery{Package: osvPackage{Name: name, Ecosystem: p.ecosystem}})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("osv query for %s failed: %w", name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("osv query for %s: unexpected status %d", name, resp.StatusCode)
	}

	var parsed osvResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("failed to decode osv response for %s: %w", name, err)
	}

	score := len(parsed.Vulns) * 2
	if score > 8 {
		score = 8
	}
	return score, nil
}
