package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// economicServer serves FRED-style observations keyed by series id. A series
// absent from the map gets a 404.
func economicServer(t *testing.T, series map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("series_id")
		value, ok := series[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		resp := seriesResponse{Observations: []observation{{Date: "2025-06-01", Value: value}}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestEconomicCalmConditions(t *testing.T) {
	srv := economicServer(t, map[string]string{"VIXCLS": "14.2", "A191RL1Q225SBEA": "2.5"})
	defer srv.Close()

	p := NewEconomicProvider(srv.URL, "test-key", time.Second)

	m, err := p.CurrentMultiplier(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, m)
}

func TestEconomicElevatedVIX(t *testing.T) {
	srv := economicServer(t, map[string]string{"VIXCLS": "30", "A191RL1Q225SBEA": "1.0"})
	defer srv.Close()

	p := NewEconomicProvider(srv.URL, "test-key", time.Second)

	m, err := p.CurrentMultiplier(context.Background())
	require.NoError(t, err)
	// (30 - 20) / 50 = 0.2
	assert.InDelta(t, 1.2, m, 0.0001)
}

func TestEconomicVIXComponentCapped(t *testing.T) {
	srv := economicServer(t, map[string]string{"VIXCLS": "80", "A191RL1Q225SBEA": "1.0"})
	defer srv.Close()

	p := NewEconomicProvider(srv.URL, "test-key", time.Second)

	m, err := p.CurrentMultiplier(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1.6, m, 0.0001)
}

func TestEconomicNegativeGDP(t *testing.T) {
	srv := economicServer(t, map[string]string{"VIXCLS": "15", "A191RL1Q225SBEA": "-2.0"})
	defer srv.Close()

	p := NewEconomicProvider(srv.URL, "test-key", time.Second)

	m, err := p.CurrentMultiplier(context.Background())
	require.NoError(t, err)
	// -(-2.0) / 10 = 0.2
	assert.InDelta(t, 1.2, m, 0.0001)
}

func TestEconomicCombinedStress(t *testing.T) {
	srv := economicServer(t, map[string]string{"VIXCLS": "80", "A191RL1Q225SBEA": "-8.0"})
	defer srv.Close()

	p := NewEconomicProvider(srv.URL, "test-key", time.Second)

	m, err := p.CurrentMultiplier(context.Background())
	require.NoError(t, err)
	// 0.6 + 0.4, both capped
	assert.InDelta(t, 2.0, m, 0.0001)
}

func TestEconomicPartialData(t *testing.T) {
	// only VIX available, GDP errors: the one indicator still counts
	srv := economicServer(t, map[string]string{"VIXCLS": "25"})
	defer srv.Close()

	p := NewEconomicProvider(srv.URL, "test-key", time.Second)

	m, err := p.CurrentMultiplier(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 1.1, m, 0.0001)
}

func TestEconomicNoDataIsError(t *testing.T) {
	srv := economicServer(t, map[string]string{})
	defer srv.Close()

	p := NewEconomicProvider(srv.URL, "test-key", time.Second)

	_, err := p.CurrentMultiplier(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no economic indicators")
}

func TestEconomicBadValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := seriesResponse{Observations: []observation{{Date: "2025-06-01", Value: "."}}}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	p := NewEconomicProvider(srv.URL, "test-key", time.Second)

	// FRED uses "." for missing observations; both series fail to parse
	_, err := p.CurrentMultiplier(context.Background())
	assert.Error(t, err)
}

func TestStaticProviders(t *testing.T) {
	stress := StaticStressProvider{Multiplier: 1.3}
	m, err := stress.CurrentMultiplier(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.3, m)

	scores := StaticScoreProvider{Scores: map[string]int{"requests": 2}, Default: 1}
	s, err := scores.LibraryScore(context.Background(), "requests")
	require.NoError(t, err)
	assert.Equal(t, 2, s)
	s, err = scores.LibraryScore(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Equal(t, 1, s)
}
