// Package planner turns compliance gaps into prioritized remediation plans
// backed by the remediation knowledge base.
package planner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"ai-scm-toolkit/internal/csfmap"
	"ai-scm-toolkit/internal/knowledge"
	"ai-scm-toolkit/internal/models"
	"ai-scm-toolkit/internal/scoring"
)

// ActionItem is one remediation action in the simple plan form.
type ActionItem struct {
	Action          string   `json:"action"`
	Category        string   `json:"category"`
	Priority        string   `json:"priority"` // High / Medium
	Timeline        string   `json:"timeline"`
	CostEstimate    string   `json:"cost_estimate"`
	SuccessCriteria string   `json:"success_criteria"`
	ResponsibleTeam string   `json:"responsible_team"`
	Dependencies    []string `json:"dependencies,omitempty"`
	Phase           string   `json:"phase"`
	NISTReference   string   `json:"nist_reference"`
}

// CostRange is a min/max cost estimate in a single currency.
type CostRange struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Currency    string  `json:"currency"`
	Description string  `json:"description,omitempty"`
}

// DetailedAction is one action in the phased plan.
type DetailedAction struct {
	CSFCategory     string           `json:"csf_category"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Severity        models.RiskLevel `json:"severity"`
	Urgency         string           `json:"urgency"`
	EffortLevel     string           `json:"effort_level"`
	Timeline        string           `json:"estimated_timeline"`
	Steps           []string         `json:"detailed_actions"`
	EstimatedCost   CostRange        `json:"estimated_cost"`
	SuccessCriteria []string         `json:"success_criteria"`
	ResponsibleTeam string           `json:"responsible_team"`
	Dependencies    []string         `json:"dependencies"`
}

// Phase is one time-horizon bucket of the detailed plan.
type Phase struct {
	Name         string           `json:"name"`
	Timeline     string           `json:"timeline"`
	Description  string           `json:"description"`
	Actions      []DetailedAction `json:"actions"`
	TotalActions int              `json:"total_actions"`
}

// Recommendation is a system-specific add-on independent of any gap.
type Recommendation struct {
	Category       string `json:"category"`
	Recommendation string `json:"recommendation"`
	Timeline       string `json:"timeline"`
	Effort         string `json:"effort"`
}

// RiskReduction projects the score after implementing the plan.
type RiskReduction struct {
	CurrentRiskScore    int    `json:"current_risk_score"`
	ProjectedRiskScore  int    `json:"projected_risk_score"`
	EstimatedReduction  int    `json:"estimated_reduction"`
	ReductionPercentage string `json:"reduction_percentage"`
	TargetRiskLevel     string `json:"target_risk_level"`
}

// DetailedPlan is the full multi-phase remediation plan.
type DetailedPlan struct {
	GeneratedAt          time.Time        `json:"generated_date"`
	SystemName           string           `json:"system_name"`
	OverallRiskScore     int              `json:"overall_risk_score"`
	TotalGaps            int              `json:"total_gaps"`
	EstimatedTotalCost   CostRange        `json:"estimated_total_cost"`
	EstimatedCompletion  string           `json:"estimated_completion_time"`
	ExecutiveSummary     string           `json:"executive_summary"`
	Phases               []Phase          `json:"implementation_phases"`
	SystemSpecificAdvice []Recommendation `json:"system_specific_recommendations"`
	SuccessMetrics       SuccessMetrics   `json:"success_metrics"`
	RiskReduction        RiskReduction    `json:"risk_reduction_projection"`
}

// SuccessMetrics lists the plan-wide targets.
type SuccessMetrics struct {
	RiskScoreTarget    string   `json:"risk_score_target"`
	ComplianceTarget   string   `json:"compliance_target"`
	OperationalMetrics []string `json:"operational_metrics"`
	BusinessMetrics    []string `json:"business_metrics"`
}

// Cost matrix per effort tier, USD.
var costEstimates = map[string]CostRange{
	"Low":    {Min: 5000, Max: 15000, Currency: "USD", Description: "Primarily process and policy changes"},
	"Medium": {Min: 15000, Max: 50000, Currency: "USD", Description: "Some tooling and system modifications"},
	"High":   {Min: 50000, Max: 150000, Currency: "USD", Description: "Significant system changes and new tools"},
}

var responsibleTeams = map[string]string{
	"GV": "Governance, Risk & Compliance (GRC)",
	"ID": "Security Operations Center (SOC)",
	"PR": "Information Security Team",
	"DE": "Security Operations Center (SOC)",
	"RS": "Incident Response Team",
	"RC": "Business Continuity Team",
}

var successCriteria = map[string][]string{
	"GV.SC-01": {
		"Supply chain risk management policy approved and published",
		"Supplier security assessment program operational",
		"100% of critical suppliers assessed within 90 days",
	},
	"PR.DS-06": {
		"Cryptographic integrity verification implemented for all training data",
		"Automated data validation processes operational",
		"Zero data integrity incidents in 30-day period",
	},
	"DE.CM-07": {
		"Model drift detection system deployed and operational",
		"Performance monitoring dashboards accessible to operations team",
		"Automated alerting functional with <5 minute response time",
	},
}

var defaultSuccessCriteria = []string{
	"Implementation completed and tested",
	"Documentation updated and approved",
	"Team trained on new procedures",
}

var nistReferences = map[string]string{
	"GV.SC-01": "https://nvlpubs.nist.gov/nistpubs/CSWP/NIST.CSWP.29.pdf#page=25",
	"GV.SC-04": "https://nvlpubs.nist.gov/nistpubs/CSWP/NIST.CSWP.29.pdf#page=25",
	"GV.OC-02": "https://nvlpubs.nist.gov/nistpubs/CSWP/NIST.CSWP.29.pdf#page=23",
	"ID.RA-01": "https://nvlpubs.nist.gov/nistpubs/ai/NIST.AI.100-1.pdf#page=45",
	"ID.AM-03": "https://nvlpubs.nist.gov/nistpubs/CSWP/NIST.CSWP.29.pdf#page=30",
	"ID.SC-04": "https://nvlpubs.nist.gov/nistpubs/CSWP/NIST.CSWP.29.pdf#page=32",
	"PR.DS-06": "https://nvlpubs.nist.gov/nistpubs/SpecialPublications/NIST.SP.800-53r5.pdf#page=195",
	"PR.DS-08": "https://nvlpubs.nist.gov/nistpubs/SpecialPublications/NIST.SP.800-53r5.pdf#page=195",
	"DE.CM-07": "https://nvlpubs.nist.gov/nistpubs/CSWP/NIST.CSWP.29.pdf#page=40",
	"DE.AE-02": "https://nvlpubs.nist.gov/nistpubs/CSWP/NIST.CSWP.29.pdf#page=39",
	"RS.AN-01": "https://nvlpubs.nist.gov/nistpubs/CSWP/NIST.CSWP.29.pdf#page=43",
	"RC.RP-04": "https://nvlpubs.nist.gov/nistpubs/CSWP/NIST.CSWP.29.pdf#page=46",
}

const nistReferenceDefault = "https://nvlpubs.nist.gov/nistpubs/CSWP/NIST.CSWP.29.pdf"

// externalSourceTerms mark data source names that look externally sourced.
var externalSourceTerms = []string{"api", "external", "social", "web"}

// Planner builds remediation plans from gaps and the knowledge base.
type Planner struct {
	kb  *knowledge.Base
	now func() time.Time
}

func NewPlanner(kb *knowledge.Base) *Planner {
	return &Planner{kb: kb, now: time.Now}
}

// WithClock injects a clock for deterministic tests.
func (p *Planner) WithClock(now func() time.Time) *Planner {
	p.now = now
	return p
}

// Plan builds the simple plan form: one action per gap, sorted by priority
// then category code, capped at the top 10. An empty gap list yields an
// empty plan, never an error.
func (p *Planner) Plan(gaps []csfmap.Gap, desc models.SystemDescription, overallScore int) []ActionItem {
	items := []ActionItem{}

	for _, gap := range gaps {
		tmpl := p.kb.Template(gap.Category)

		priority := "Medium"
		if gap.Severity == models.RiskCritical || gap.Severity == models.RiskHigh {
			priority = "High"
		}

		cost := estimateCost(tmpl.Effort)
		criteria := criteriaFor(gap.Category)

		ref, ok := nistReferences[gap.Category]
		if !ok {
			ref = nistReferenceDefault
		}

		items = append(items, ActionItem{
			Action:          tmpl.Title,
			Category:        gap.Category,
			Priority:        priority,
			Timeline:        tmpl.Timeline,
			CostEstimate:    fmt.Sprintf("$%s - $%s", formatUSD(cost.Min), formatUSD(cost.Max)),
			SuccessCriteria: strings.Join(criteria, "; "),
			ResponsibleTeam: responsibleTeam(gap.Category),
			Dependencies:    dependenciesFor(gap.Category, gaps),
			Phase:           phaseFor(calculateUrgency(gap.Severity, overallScore), gap.Severity),
			NISTReference:   ref,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority == "High"
		}
		return items[i].Category < items[j].Category
	})

	if len(items) > 10 {
		items = items[:10]
	}
	return items
}

// PlanDetailed builds the full phased plan with cost totals, executive
// summary, system-specific recommendations, and a risk-reduction projection.
func (p *Planner) PlanDetailed(gaps []csfmap.Gap, desc models.SystemDescription, overallScore int) DetailedPlan {
	phase1 := []DetailedAction{}
	phase2 := []DetailedAction{}
	phase3 := []DetailedAction{}

	totalMaxCost := 0.0

	for _, gap := range gaps {
		tmpl := p.kb.Template(gap.Category)
		urgency := calculateUrgency(gap.Severity, overallScore)
		cost := estimateCost(tmpl.Effort)

		action := DetailedAction{
			CSFCategory:     gap.Category,
			Title:           tmpl.Title,
			Description:     tmpl.Description,
			Severity:        gap.Severity,
			Urgency:         urgency,
			EffortLevel:     tmpl.Effort,
			Timeline:        tmpl.Timeline,
			Steps:           tmpl.Actions,
			EstimatedCost:   cost,
			SuccessCriteria: criteriaFor(gap.Category),
			ResponsibleTeam: responsibleTeam(gap.Category),
			Dependencies:    dependenciesFor(gap.Category, gaps),
		}

		switch phaseFor(urgency, gap.Severity) {
		case "Immediate":
			phase1 = append(phase1, action)
		case "Short-term":
			phase2 = append(phase2, action)
		default:
			phase3 = append(phase3, action)
		}

		totalMaxCost += cost.Max
	}

	sortBySeverity(phase1)
	sortBySeverity(phase2)
	sortBySeverity(phase3)

	return DetailedPlan{
		GeneratedAt:      p.now().UTC(),
		SystemName:       desc.SystemName,
		OverallRiskScore: overallScore,
		TotalGaps:        len(gaps),
		EstimatedTotalCost: CostRange{
			// Asymmetric contingency band: implementations tend to
			// overshoot the estimate more often than undershoot it.
			Min:      totalMaxCost * 0.6,
			Max:      totalMaxCost * 1.2,
			Currency: "USD",
		},
		EstimatedCompletion: "3-6 months",
		ExecutiveSummary:    executiveSummary(len(gaps), overallScore, totalMaxCost),
		Phases: []Phase{
			{
				Name:         "Immediate",
				Timeline:     "0-30 days",
				Description:  "Critical security gaps requiring immediate attention",
				Actions:      phase1,
				TotalActions: len(phase1),
			},
			{
				Name:         "Short-term",
				Timeline:     "30-90 days",
				Description:  "High-priority improvements and system enhancements",
				Actions:      phase2,
				TotalActions: len(phase2),
			},
			{
				Name:         "Long-term",
				Timeline:     "90+ days",
				Description:  "Strategic improvements and advanced security measures",
				Actions:      phase3,
				TotalActions: len(phase3),
			},
		},
		SystemSpecificAdvice: systemSpecificAdvice(desc),
		SuccessMetrics:       defaultSuccessMetrics(),
		RiskReduction:        projectRiskReduction(gaps, overallScore),
	}
}

// calculateUrgency combines gap severity with the overall score.
func calculateUrgency(severity models.RiskLevel, overallScore int) string {
	switch {
	case severity == models.RiskCritical || overallScore >= 80:
		return "Immediate"
	case severity == models.RiskHigh || overallScore >= 60:
		return "High"
	case severity == models.RiskMedium || overallScore >= 40:
		return "Medium"
	default:
		return "Low"
	}
}

func phaseFor(urgency string, severity models.RiskLevel) string {
	switch {
	case urgency == "Immediate" || severity == models.RiskCritical:
		return "Immediate"
	case urgency == "High" || severity == models.RiskHigh:
		return "Short-term"
	default:
		return "Long-term"
	}
}

func estimateCost(effort string) CostRange {
	if c, ok := costEstimates[effort]; ok {
		return c
	}
	return costEstimates["Medium"]
}

func criteriaFor(category string) []string {
	if c, ok := successCriteria[category]; ok {
		return c
	}
	return defaultSuccessCriteria
}

func responsibleTeam(category string) string {
	fn, _, found := strings.Cut(category, ".")
	if found {
		if team, ok := responsibleTeams[fn]; ok {
			return team
		}
	}
	return "Information Security Team"
}

// dependenciesFor applies the fixed pairwise dependency rules: monitoring
// depends on data lineage when both gaps are present, and protection
// actions wait on the identification phase.
func dependenciesFor(category string, all []csfmap.Gap) []string {
	var deps []string

	if category == "DE.CM-07" {
		for _, g := range all {
			if g.Category == "ID.AM-03" {
				deps = append(deps, "ID.AM-03: Data lineage documentation must be completed first")
				break
			}
		}
	}

	if strings.HasPrefix(category, "PR.") {
		var idCategories []string
		for _, g := range all {
			if strings.HasPrefix(g.Category, "ID.") {
				idCategories = append(idCategories, g.Category)
			}
		}
		if len(idCategories) > 2 {
			idCategories = idCategories[:2]
		}
		if len(idCategories) > 0 {
			deps = append(deps, fmt.Sprintf("Complete identification phase first: %s", strings.Join(idCategories, ", ")))
		}
	}

	return deps
}

func systemSpecificAdvice(desc models.SystemDescription) []Recommendation {
	advice := []Recommendation{}

	if scoring.IsBlackBoxModel(desc.ModelType) {
		advice = append(advice, Recommendation{
			Category:       "Model Explainability",
			Recommendation: "Implement explainable AI techniques (SHAP, LIME) for black-box model transparency",
			Timeline:       "45-60 days",
			Effort:         "Medium",
		})
	}

	if strings.Contains(strings.ToLower(desc.DeploymentEnv), "cloud") {
		advice = append(advice, Recommendation{
			Category:       "Cloud Security",
			Recommendation: "Implement cloud-specific security controls and shared responsibility model documentation",
			Timeline:       "30-45 days",
			Effort:         "Medium",
		})
	}

	var external []string
	for _, src := range desc.DataSources {
		lower := strings.ToLower(src)
		for _, term := range externalSourceTerms {
			if strings.Contains(lower, term) {
				external = append(external, src)
				break
			}
		}
	}
	if len(external) > 0 {
		if len(external) > 3 {
			external = external[:3]
		}
		advice = append(advice, Recommendation{
			Category:       "External Data Security",
			Recommendation: fmt.Sprintf("Implement enhanced validation and monitoring for external data sources: %s", strings.Join(external, ", ")),
			Timeline:       "21-30 days",
			Effort:         "Medium",
		})
	}

	return advice
}

// projectRiskReduction estimates the score after remediation: per-gap
// reductions summed, capped at 60% of the current score, projected score
// floored at 15.
func projectRiskReduction(gaps []csfmap.Gap, currentScore int) RiskReduction {
	if currentScore <= 0 {
		return RiskReduction{
			ReductionPercentage: "0%",
			TargetRiskLevel:     string(models.RiskLow),
		}
	}

	total := 0
	for _, gap := range gaps {
		switch gap.Severity {
		case models.RiskCritical:
			total += 20
		case models.RiskHigh:
			total += 15
		case models.RiskMedium:
			total += 10
		default:
			total += 5
		}
	}

	maxReduction := float64(total)
	if limit := float64(currentScore) * 0.6; maxReduction > limit {
		maxReduction = limit
	}
	projected := float64(currentScore) - maxReduction
	if projected < 15 {
		projected = 15
	}

	target := "High"
	if projected < 40 {
		target = "Low"
	} else if projected < 60 {
		target = "Medium"
	}

	return RiskReduction{
		CurrentRiskScore:    currentScore,
		ProjectedRiskScore:  int(projected),
		EstimatedReduction:  int(maxReduction),
		ReductionPercentage: fmt.Sprintf("%d%%", int(maxReduction/float64(currentScore)*100)),
		TargetRiskLevel:     target,
	}
}

func defaultSuccessMetrics() SuccessMetrics {
	return SuccessMetrics{
		RiskScoreTarget:  "Reduce overall risk score to <40 (Medium risk)",
		ComplianceTarget: "Achieve 95% CSF compliance within 6 months",
		OperationalMetrics: []string{
			"Zero critical security incidents related to AI systems",
			"100% of remediation actions completed within timeline",
			"All team members trained on new security procedures",
		},
		BusinessMetrics: []string{
			"Maintain AI system availability >99.5%",
			"Zero regulatory compliance violations",
			"Audit readiness achieved within 90 days",
		},
	}
}

func executiveSummary(totalGaps, riskScore int, totalMaxCost float64) string {
	level := "Medium"
	if riskScore >= 80 {
		level = "Critical"
	} else if riskScore >= 60 {
		level = "High"
	}

	projected := riskScore - 30
	if projected < 15 {
		projected = 15
	}

	return fmt.Sprintf(
		"This AI system presents %s cybersecurity risk with %d NIST CSF compliance gaps identified. "+
			"The remediation plan addresses all critical vulnerabilities through a phased approach over 3-6 months. "+
			"Estimated investment: $%s - $%s. Projected risk reduction: %d to %d points.",
		strings.ToLower(level), totalGaps, formatUSD(totalMaxCost), formatUSD(totalMaxCost*1.2), riskScore, projected)
}

func sortBySeverity(actions []DetailedAction) {
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Severity.Rank() < actions[j].Severity.Rank()
	})
}

// formatUSD renders a dollar amount with thousands separators.
func formatUSD(v float64) string {
	n := int64(v)
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}
