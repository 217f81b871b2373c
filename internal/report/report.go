// Package report builds the compliance report payload. It produces data
// only; paginated/styled document generation stays with external renderers.
package report

import (
	"time"

	"ai-scm-toolkit/internal/assessment"
	"ai-scm-toolkit/internal/models"
	"ai-scm-toolkit/internal/planner"
	"ai-scm-toolkit/internal/scoring"
)

// Summary is the executive overview of one assessment.
type Summary struct {
	OverallRiskScore int              `json:"overall_risk_score"`
	RiskLevel        models.RiskLevel `json:"risk_level"`
	CriticalGaps     int              `json:"critical_gaps"`
	TotalGaps        int              `json:"total_gaps"`
	StressConditions string           `json:"stress_conditions"`
}

// Report is the complete compliance report payload.
type Report struct {
	Organization     string                `json:"organization"`
	GeneratedAt      time.Time             `json:"assessment_date"`
	ExecutiveSummary Summary               `json:"executive_summary"`
	Findings         assessment.Assessment `json:"detailed_findings"`
	RemediationPlan  planner.DetailedPlan  `json:"remediation_roadmap"`
}

// Build assembles the report payload from an assessment and its phased plan.
func Build(organization string, a assessment.Assessment, plan planner.DetailedPlan) Report {
	critical := 0
	for _, gap := range a.ComplianceGaps {
		if gap.Severity == models.RiskCritical {
			critical++
		}
	}

	return Report{
		Organization: organization,
		GeneratedAt:  time.Now().UTC(),
		ExecutiveSummary: Summary{
			OverallRiskScore: a.OverallRiskScore,
			RiskLevel:        a.RiskLevel,
			CriticalGaps:     critical,
			TotalGaps:        len(a.ComplianceGaps),
			StressConditions: scoring.StressDescription(a.StressMultiplier),
		},
		Findings:        a,
		RemediationPlan: plan,
	}
}
