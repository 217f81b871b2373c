package scoring

import (
	"context"
	"fmt"
	"time"

	"ai-scm-toolkit/internal/models"
)

// VulnerabilityScoreProvider resolves a per-library vulnerability score in
// [0, 8]. Implementations must return within a bounded time; any error makes
// the scorer fall back to pattern-based tiers.
type VulnerabilityScoreProvider interface {
	LibraryScore(ctx context.Context, name string) (int, error)
}

// StressIndicatorProvider returns the external stress multiplier in
// [1.0, 2.0]. Any error makes the scorer fall back to a fixed default.
type StressIndicatorProvider interface {
	CurrentMultiplier(ctx context.Context) (float64, error)
}

// Fixed factor weights. The sum of the fixed weights (75) plus the maximum
// third-party contribution (20) stays under 100, so the cap is reachable but
// rarely the dominant clamp.
const (
	weightDataLineage     = 20
	weightExplainability  = 15
	weightDriftMonitoring = 25
	weightDataEncryption  = 10
	weightAccessControls  = 5

	thirdPartyMax = 20
	libScoreMax   = 8

	// defaultStressMultiplier is the conservative fallback when the stress
	// provider is unavailable.
	defaultStressMultiplier = 1.2

	// elevatedStressThreshold is the multiplier above which an explanation
	// is appended to the risk factors.
	elevatedStressThreshold = 1.2
)

// Result is the immutable output of one scoring run.
type Result struct {
	OverallScore     int       `json:"overall_risk_score"`
	RiskFactors      []string  `json:"risk_factors"`
	StressMultiplier float64   `json:"stress_multiplier"`
	ComputedAt       time.Time `json:"assessment_timestamp"`
}

// Scorer evaluates a system description against the weighted factor table.
// Stateless per call except for the stress cache.
type Scorer struct {
	vulns   VulnerabilityScoreProvider // nil means pattern fallback only
	stress  StressIndicatorProvider    // nil means fixed default
	cache   *StressCache
	timeout time.Duration
	now     func() time.Time
}

// NewScorer wires a scorer with its providers and stress cache. Either
// provider may be nil; the scorer then uses its deterministic fallback.
func NewScorer(vulns VulnerabilityScoreProvider, stress StressIndicatorProvider, cache *StressCache, timeout time.Duration) *Scorer {
	return &Scorer{
		vulns:   vulns,
		stress:  stress,
		cache:   cache,
		timeout: timeout,
		now:     time.Now,
	}
}

// WithClock injects a clock for deterministic tests.
func (s *Scorer) WithClock(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// Score computes the bounded risk score for a system description. It never
// fails: provider errors resolve to documented fallbacks.
//
// The multiplied score is truncated toward zero before capping, matching the
// documented integer conversion, so identical inputs always produce
// identical scores.
func (s *Scorer) Score(ctx context.Context, desc models.SystemDescription) Result {
	base := 0
	factors := []string{}

	if !desc.LineageDocumented() {
		base += weightDataLineage
		factors = append(factors, "Missing data lineage documentation")
	}

	if IsBlackBoxModel(desc.ModelType) {
		base += weightExplainability
		factors = append(factors, "Black-box model with limited explainability")
	}

	if !desc.DriftMonitoring() {
		base += weightDriftMonitoring
		factors = append(factors, "No ML model drift monitoring")
	}

	thirdParty := s.thirdPartyRisk(ctx, desc.ThirdPartyLibs)
	base += thirdParty
	if thirdParty > 10 {
		factors = append(factors, "High-risk third-party dependencies")
	}

	if !desc.EncryptionEnabled() {
		base += weightDataEncryption
		factors = append(factors, "Data encryption not implemented")
	}

	if !desc.AccessControlsEnabled() {
		base += weightAccessControls
		factors = append(factors, "Insufficient access controls")
	}

	multiplier := s.multiplier(ctx)
	score := int(float64(base) * multiplier)

	if multiplier > elevatedStressThreshold {
		factors = append(factors, fmt.Sprintf("Elevated external stress (multiplier: %.2f)", multiplier))
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return Result{
		OverallScore:     score,
		RiskFactors:      factors,
		StressMultiplier: multiplier,
		ComputedAt:       s.now().UTC(),
	}
}

// Breakdown returns the per-factor contribution for a description, useful
// for report rendering and debugging weight changes.
func (s *Scorer) Breakdown(ctx context.Context, desc models.SystemDescription) map[string]int {
	b := map[string]int{
		"data_lineage":         0,
		"model_explainability": 0,
		"drift_monitoring":     0,
		"third_party_risk":     s.thirdPartyRisk(ctx, desc.ThirdPartyLibs),
		"data_security":        0,
	}
	if !desc.LineageDocumented() {
		b["data_lineage"] = weightDataLineage
	}
	if IsBlackBoxModel(desc.ModelType) {
		b["model_explainability"] = weightExplainability
	}
	if !desc.DriftMonitoring() {
		b["drift_monitoring"] = weightDriftMonitoring
	}
	if !desc.EncryptionEnabled() {
		b["data_security"] += weightDataEncryption
	}
	if !desc.AccessControlsEnabled() {
		b["data_security"] += weightAccessControls
	}
	return b
}

// thirdPartyRisk scores the dependency list. Per-library scores are summed,
// not averaged: more libraries with vulnerabilities compounds risk. A volume
// penalty kicks in for large dependency counts and a concentration penalty
// when several libraries individually score high. Clamped to [0, 20].
func (s *Scorer) thirdPartyRisk(ctx context.Context, libs []string) int {
	if len(libs) == 0 {
		return 0
	}

	total := 0
	highScoring := 0
	for _, lib := range libs {
		sc := s.libraryScore(ctx, lib)
		if sc >= 5 {
			highScoring++
		}
		total += sc
	}

	switch {
	case len(libs) > 15:
		total += 5
	case len(libs) > 10:
		total += 3
	case len(libs) > 5:
		total += 1
	}

	switch {
	case highScoring > 3:
		total += 4
	case highScoring > 1:
		total += 2
	}

	if total > thirdPartyMax {
		total = thirdPartyMax
	}
	if total < 0 {
		total = 0
	}
	return total
}

func (s *Scorer) libraryScore(ctx context.Context, name string) int {
	if s.vulns != nil {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		sc, err := s.vulns.LibraryScore(callCtx, name)
		cancel()
		if err == nil {
			if sc < 0 {
				sc = 0
			}
			if sc > libScoreMax {
				sc = libScoreMax
			}
			return sc
		}
	}
	return fallbackLibraryScore(name)
}

// multiplier resolves the stress multiplier, reusing the cached value within
// its validity window. Provider failure is recovered locally with the fixed
// default; the result is always clamped to [1.0, 2.0].
func (s *Scorer) multiplier(ctx context.Context) float64 {
	if s.cache != nil {
		if v, ok := s.cache.Get(); ok {
			return v
		}
	}

	v := defaultStressMultiplier
	if s.stress != nil {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		m, err := s.stress.CurrentMultiplier(callCtx)
		cancel()
		if err == nil {
			v = m
		}
	}

	if v < 1.0 {
		v = 1.0
	}
	if v > 2.0 {
		v = 2.0
	}

	if s.cache != nil {
		s.cache.Put(v)
	}
	return v
}

// StressDescription classifies a multiplier into a qualitative level.
func StressDescription(multiplier float64) string {
	switch {
	case multiplier >= 2.0:
		return "Crisis-level economic stress"
	case multiplier >= 1.5:
		return "High economic stress"
	case multiplier >= 1.2:
		return "Moderate economic stress"
	default:
		return "Normal economic conditions"
	}
}
