package models

// RiskLevel is a severity / risk classification. The string values are part
// of the wire contract: downstream consumers key off the exact literals.
type RiskLevel string

const (
	RiskCritical RiskLevel = "Critical"
	RiskHigh     RiskLevel = "High"
	RiskMedium   RiskLevel = "Medium"
	RiskLow      RiskLevel = "Low"
)

// Rank orders severities for sorting: Critical first, Low last.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskCritical:
		return 0
	case RiskHigh:
		return 1
	case RiskMedium:
		return 2
	case RiskLow:
		return 3
	}
	return 4
}

// ClassifyScore converts an overall risk score into a risk level.
func ClassifyScore(score int) RiskLevel {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 40:
		return RiskMedium
	default:
		return RiskLow
	}
}
