package report

import (
	"testing"

	"ai-scm-toolkit/internal/assessment"
	"ai-scm-toolkit/internal/csfmap"
	"ai-scm-toolkit/internal/models"
	"ai-scm-toolkit/internal/planner"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	a := assessment.Assessment{
		SystemName:       "Fraud Detector",
		OverallRiskScore: 72,
		RiskLevel:        models.RiskHigh,
		StressMultiplier: 1.0,
		ComplianceGaps: []csfmap.Gap{
			{Category: "PR.DS-06", Severity: models.RiskCritical},
			{Category: "GV.SC-01", Severity: models.RiskHigh},
			{Category: "ID.AM-03", Severity: models.RiskMedium},
		},
	}
	plan := planner.DetailedPlan{SystemName: "Fraud Detector", TotalGaps: 3}

	rep := Build("Acme Corp", a, plan)

	assert.Equal(t, "Acme Corp", rep.Organization)
	assert.Equal(t, 72, rep.ExecutiveSummary.OverallRiskScore)
	assert.Equal(t, 1, rep.ExecutiveSummary.CriticalGaps)
	assert.Equal(t, 3, rep.ExecutiveSummary.TotalGaps)
	assert.NotEmpty(t, rep.ExecutiveSummary.StressConditions)
	assert.Equal(t, a, rep.Findings)
	assert.Equal(t, plan, rep.RemediationPlan)
	assert.False(t, rep.GeneratedAt.IsZero())
}
