package scoring

import "strings"

// Pattern tables are kept as data so matching behavior can be tested and
// extended without touching the scoring logic.

// blackBoxTerms mark model types with limited explainability.
var blackBoxTerms = []string{"neural", "deep", "black", "ensemble"}

// Fallback library tiers used when the vulnerability provider is
// unavailable. Heavy ML/data stacks carry more attack surface than common
// web libraries; anything unrecognized scores low but never zero.
var (
	highRiskLibPatterns   = []string{"pytorch", "tensorflow", "scikit", "pandas", "numpy"}
	mediumRiskLibPatterns = []string{"requests", "flask", "django"}
)

const (
	fallbackScoreHigh   = 3
	fallbackScoreMedium = 2
	fallbackScoreLow    = 1
)

// IsBlackBoxModel reports whether the model type matches a known
// black-box term, case-insensitive substring match.
func IsBlackBoxModel(modelType string) bool {
	return matchesAny(modelType, blackBoxTerms)
}

func matchesAny(s string, patterns []string) bool {
	lower := strings.ToLower(s)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

func fallbackLibraryScore(name string) int {
	switch {
	case matchesAny(name, highRiskLibPatterns):
		return fallbackScoreHigh
	case matchesAny(name, mediumRiskLibPatterns):
		return fallbackScoreMedium
	default:
		return fallbackScoreLow
	}
}
