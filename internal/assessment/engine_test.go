package assessment

import (
	"context"
	"testing"
	"time"

	"ai-scm-toolkit/internal/knowledge"
	"ai-scm-toolkit/internal/models"
	"ai-scm-toolkit/internal/providers"
	"ai-scm-toolkit/internal/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func newTestEngine(t *testing.T, stressMultiplier float64) *Engine {
	t.Helper()
	kb, err := knowledge.Load("../../data")
	require.NoError(t, err)

	scorer := scoring.NewScorer(
		providers.StaticScoreProvider{Scores: map[string]int{"tensorflow": 4, "pytorch": 4}},
		providers.StaticStressProvider{Multiplier: stressMultiplier},
		scoring.NewStressCache(time.Hour),
		time.Second,
	)
	return NewEngine(kb, scorer)
}

func secureSystem() models.SystemDescription {
	return models.SystemDescription{
		SystemName:          "Churn Model",
		ModelType:           "Linear Regression",
		DataSources:         []string{"internal_db"},
		DeploymentEnv:       "on_prem",
		DataLineageDocumented:  boolPtr(true),
		DriftMonitoringEnabled: boolPtr(true),
		DataEncryption:         boolPtr(true),
		AccessControls:         boolPtr(true),
		DataIntegrityChecks:    boolPtr(true),
		SupplyChainPolicy:      boolPtr(true),
		VendorAssessment:       boolPtr(true),
	}
}

func riskySystem() models.SystemDescription {
	return models.SystemDescription{
		SystemName:     "Credit Scorer",
		ModelType:      "Deep Neural Network",
		DataSources:    []string{"internal_db", "partner_api"},
		DeploymentEnv:  "aws_cloud",
		ThirdPartyLibs: []string{"tensorflow", "pytorch"},
	}
}

func TestAssessSecureSystem(t *testing.T) {
	eng := newTestEngine(t, 1.0)

	a := eng.Assess(context.Background(), secureSystem())

	assert.Equal(t, "Churn Model", a.SystemName)
	assert.Equal(t, 0, a.OverallRiskScore)
	assert.Equal(t, models.RiskLow, a.RiskLevel)
	assert.Empty(t, a.ComplianceGaps)
	assert.Empty(t, a.ActionPlan)
	assert.Equal(t, []string{"Continue following current security practices"}, a.RecommendedActions)
}

func TestAssessRiskySystem(t *testing.T) {
	eng := newTestEngine(t, 1.0)

	a := eng.Assess(context.Background(), riskySystem())

	// lineage 20 + explainability 15 + drift 25 + libraries 8
	assert.Equal(t, 68, a.OverallRiskScore)
	assert.Equal(t, models.RiskHigh, a.RiskLevel)
	assert.Equal(t, 1.0, a.StressMultiplier)

	categories := make([]string, 0, len(a.ComplianceGaps))
	for _, g := range a.ComplianceGaps {
		categories = append(categories, g.Category)
	}
	assert.ElementsMatch(t,
		[]string{"GV.SC-01", "ID.AM-03", "DE.CM-07", "ID.SC-04", "PR.DS-06"},
		categories)

	assert.Len(t, a.ActionPlan, 5)
	assert.ElementsMatch(t, []string{
		"Develop comprehensive risk management policy",
		"Implement data integrity verification mechanisms",
		"Deploy continuous monitoring for ML model performance",
	}, a.RecommendedActions)
}

func TestAssessStressMultiplierApplied(t *testing.T) {
	eng := newTestEngine(t, 1.5)

	a := eng.Assess(context.Background(), riskySystem())

	// 68 * 1.5 = 102, capped at 100
	assert.Equal(t, 100, a.OverallRiskScore)
	assert.Equal(t, models.RiskCritical, a.RiskLevel)
	assert.Contains(t, a.RiskFactors, "Elevated external stress (multiplier: 1.50)")

	// integrity gap escalates to Critical once the score passes 70
	for _, g := range a.ComplianceGaps {
		if g.Category == "PR.DS-06" {
			assert.Equal(t, models.RiskCritical, g.Severity)
		}
	}
}

func TestAssessDetailed(t *testing.T) {
	eng := newTestEngine(t, 1.0)

	a, plan := eng.AssessDetailed(context.Background(), riskySystem())

	assert.Equal(t, a.OverallRiskScore, plan.OverallRiskScore)
	assert.Equal(t, len(a.ComplianceGaps), plan.TotalGaps)
	require.Len(t, plan.Phases, 3)
	assert.NotEmpty(t, plan.ExecutiveSummary)
	assert.Greater(t, plan.EstimatedTotalCost.Max, plan.EstimatedTotalCost.Min)
}

func TestMapRisk(t *testing.T) {
	eng := newTestEngine(t, 1.0)

	mapping, ok := eng.MapRisk("model_drift")
	require.True(t, ok)
	require.NotNil(t, mapping)
	assert.NotEmpty(t, mapping.Categories)
	assert.NotEmpty(t, mapping.Description)

	_, ok = eng.MapRisk("quantum_hacking")
	assert.False(t, ok)
}

func TestRiskTypes(t *testing.T) {
	eng := newTestEngine(t, 1.0)

	types := eng.RiskTypes()
	assert.Len(t, types, 6)
	assert.Contains(t, types, "supply_chain_compromise")
	assert.Contains(t, types, "model_drift")
}
