// Package assessment composes the scorer, gap mapper, and planner into the
// single entry point the transport layer calls.
package assessment

import (
	"context"
	"strings"

	"ai-scm-toolkit/internal/csfmap"
	"ai-scm-toolkit/internal/knowledge"
	"ai-scm-toolkit/internal/models"
	"ai-scm-toolkit/internal/planner"
	"ai-scm-toolkit/internal/scoring"
)

// Assessment is one complete assessment result. Data flows one way through
// it: score, then gaps, then plan; no stage mutates another's output.
type Assessment struct {
	SystemName         string               `json:"system_name"`
	OverallRiskScore   int                  `json:"overall_risk_score"`
	RiskLevel          models.RiskLevel     `json:"risk_level"`
	RiskFactors        []string             `json:"risk_factors"`
	StressMultiplier   float64              `json:"stress_multiplier"`
	ComplianceGaps     []csfmap.Gap         `json:"csf_compliance_gaps"`
	RecommendedActions []string             `json:"recommended_actions"`
	ActionPlan         []planner.ActionItem `json:"action_plan"`
}

// Engine wires the three core components over a shared knowledge base.
type Engine struct {
	kb      *knowledge.Base
	scorer  *scoring.Scorer
	mapper  *csfmap.Mapper
	planner *planner.Planner
}

func NewEngine(kb *knowledge.Base, scorer *scoring.Scorer) *Engine {
	return &Engine{
		kb:      kb,
		scorer:  scorer,
		mapper:  csfmap.NewMapper(kb),
		planner: planner.NewPlanner(kb),
	}
}

// Assess runs the full pipeline for one system description. It never fails:
// every fallible step inside resolves to a documented fallback.
func (e *Engine) Assess(ctx context.Context, desc models.SystemDescription) Assessment {
	result := e.scorer.Score(ctx, desc)
	gaps := e.mapper.IdentifyGaps(desc, result)
	plan := e.planner.Plan(gaps, desc, result.OverallScore)

	return Assessment{
		SystemName:         desc.SystemName,
		OverallRiskScore:   result.OverallScore,
		RiskLevel:          models.ClassifyScore(result.OverallScore),
		RiskFactors:        result.RiskFactors,
		StressMultiplier:   result.StressMultiplier,
		ComplianceGaps:     gaps,
		RecommendedActions: recommendations(gaps),
		ActionPlan:         plan,
	}
}

// AssessDetailed additionally builds the phased plan for report rendering.
func (e *Engine) AssessDetailed(ctx context.Context, desc models.SystemDescription) (Assessment, planner.DetailedPlan) {
	a := e.Assess(ctx, desc)
	detailed := e.planner.PlanDetailed(a.ComplianceGaps, desc, a.OverallRiskScore)
	return a, detailed
}

// MapRisk answers the ad hoc risk-type query. ok is false for unknown keys.
func (e *Engine) MapRisk(riskType string) (*csfmap.RiskMapping, bool) {
	return e.mapper.MapRiskToCSF(riskType)
}

// RiskTypes lists the known risk type keys.
func (e *Engine) RiskTypes() []string {
	return e.kb.RiskTypeKeys()
}

// recommendations derives short remediation hints from which CSF category
// families the gaps fall into.
func recommendations(gaps []csfmap.Gap) []string {
	var recs []string

	has := func(prefix string) bool {
		for _, g := range gaps {
			if strings.Contains(g.Category, prefix) {
				return true
			}
		}
		return false
	}

	if has("GV.SC") {
		recs = append(recs, "Develop comprehensive risk management policy")
	}
	if has("PR.DS") {
		recs = append(recs, "Implement data integrity verification mechanisms")
	}
	if has("DE.CM") {
		recs = append(recs, "Deploy continuous monitoring for ML model performance")
	}
	if has("ID.RA") {
		recs = append(recs, "Conduct thorough risk assessment of AI system components")
	}

	if len(recs) == 0 {
		recs = []string{"Continue following current security practices"}
	}
	return recs
}
