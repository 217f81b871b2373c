// Package csfmap cross-references system descriptions and risk assessments
// against the NIST CSF 2.0 taxonomy.
package csfmap

import (
	"fmt"

	"ai-scm-toolkit/internal/knowledge"
	"ai-scm-toolkit/internal/models"
	"ai-scm-toolkit/internal/scoring"
)

// Gap is a detected absence of a control tied to a CSF category.
type Gap struct {
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Severity    models.RiskLevel `json:"severity"`
}

// MappedCategory is one CSF category a risk type maps to.
type MappedCategory struct {
	Code        string           `json:"code"`
	Severity    models.RiskLevel `json:"severity"`
	Description string           `json:"description"`
}

// RiskMapping is the full CSF mapping for one AI risk type.
type RiskMapping struct {
	Categories        []MappedCategory `json:"categories"`
	Description       string           `json:"description"`
	SupplyChainImpact string           `json:"supply_chain_impact"`
}

// Severity heuristic sets for risk-type mappings.
var (
	criticalCategories = map[string]bool{
		"GV.SC-01": true,
		"PR.DS-06": true,
		"ID.RA-01": true,
	}
	highCategories = map[string]bool{
		"DE.CM-07": true,
		"GV.SC-04": true,
		"PR.DS-08": true,
	}
)

// gapRule tests one posture flag and emits at most one gap. Rules are
// independent: several may fire for the same description and none
// suppresses another.
type gapRule struct {
	applies     func(models.SystemDescription) bool
	category    string
	description string
	severity    func(overallScore int) models.RiskLevel
}

func staticSeverity(level models.RiskLevel) func(int) models.RiskLevel {
	return func(int) models.RiskLevel { return level }
}

// gapRules is the fixed ordered rule list. The data-integrity rule is the
// only one whose severity depends on the overall score; that coupling of a
// gap's severity to a score partly derived from other factors is
// intentional and inherited from the assessment contract.
var gapRules = []gapRule{
	{
		applies:     func(d models.SystemDescription) bool { return !d.HasSupplyChainPolicy() },
		category:    "GV.SC-01",
		description: "Missing cybersecurity supply chain risk management strategy",
		severity:    staticSeverity(models.RiskHigh),
	},
	{
		applies:     func(d models.SystemDescription) bool { return !d.LineageDocumented() },
		category:    "ID.AM-03",
		description: "Data flow and lineage not documented",
		severity:    staticSeverity(models.RiskMedium),
	},
	{
		applies:     func(d models.SystemDescription) bool { return !d.DriftMonitoring() },
		category:    "DE.CM-07",
		description: "ML model drift monitoring not implemented",
		severity:    staticSeverity(models.RiskHigh),
	},
	{
		applies: func(d models.SystemDescription) bool {
			return len(d.ThirdPartyLibs) > 0 && !d.VendorAssessed()
		},
		category:    "ID.SC-04",
		description: "Third-party ML libraries not assessed for security",
		severity:    staticSeverity(models.RiskMedium),
	},
	{
		applies:     func(d models.SystemDescription) bool { return !d.IntegrityChecks() },
		category:    "PR.DS-06",
		description: "Training data integrity verification not implemented",
		severity: func(score int) models.RiskLevel {
			if score > 70 {
				return models.RiskCritical
			}
			return models.RiskHigh
		},
	},
}

// Mapper answers gap and risk-type queries against the knowledge base.
// Both operations are pure functions of their inputs plus the preloaded,
// immutable knowledge base.
type Mapper struct {
	kb *knowledge.Base
}

func NewMapper(kb *knowledge.Base) *Mapper {
	return &Mapper{kb: kb}
}

// IdentifyGaps runs the fixed rule list over a description and its risk
// assessment. It never fails; gaps sharing a category are not deduplicated
// here, that is a presentation concern.
func (m *Mapper) IdentifyGaps(desc models.SystemDescription, res scoring.Result) []Gap {
	gaps := []Gap{}
	for _, rule := range gapRules {
		if !rule.applies(desc) {
			continue
		}
		gaps = append(gaps, Gap{
			Category:    rule.category,
			Description: rule.description,
			Severity:    rule.severity(res.OverallScore),
		})
	}
	return gaps
}

// MapRiskToCSF maps an AI risk type key to its CSF categories. Returns
// (nil, false) for unknown keys, never an error.
func (m *Mapper) MapRiskToCSF(riskType string) (*RiskMapping, bool) {
	rt, ok := m.kb.RiskType(riskType)
	if !ok {
		return nil, false
	}

	categories := make([]MappedCategory, 0, len(rt.CSFMappings))
	for _, code := range rt.CSFMappings {
		desc, found := m.kb.CategoryDescription(code)
		if !found {
			desc = fmt.Sprintf("NIST CSF category %s", code)
		}
		categories = append(categories, MappedCategory{
			Code:        code,
			Severity:    categorySeverity(code, rt.BaseRiskScore),
			Description: desc,
		})
	}

	return &RiskMapping{
		Categories:        categories,
		Description:       rt.Description,
		SupplyChainImpact: rt.SupplyChainImpact,
	}, true
}

func categorySeverity(code string, baseScore int) models.RiskLevel {
	switch {
	case criticalCategories[code] && baseScore > 30:
		return models.RiskCritical
	case highCategories[code] || baseScore > 25:
		return models.RiskHigh
	case baseScore > 15:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
