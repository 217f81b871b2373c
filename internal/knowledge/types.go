package knowledge

// Taxonomy is the NIST CSF 2.0 category tree: functions -> categories -> subcategories.
type Taxonomy struct {
	Functions map[string]Function `yaml:"functions"`
}

// Function is a top-level CSF function (GV, ID, PR, DE, RS, RC).
type Function struct {
	Name       string              `yaml:"name"`
	Categories map[string]Category `yaml:"categories"`
}

// Category groups subcategories under a code like "GV.SC".
type Category struct {
	Name          string            `yaml:"name"`
	Subcategories map[string]string `yaml:"subcategories"` // code -> description
}

// RiskType describes one AI risk category from the risk catalog.
type RiskType struct {
	Description       string   `yaml:"description"`
	BaseRiskScore     int      `yaml:"base_risk_score"`
	CSFMappings       []string `yaml:"csf_mappings"`
	SupplyChainImpact string   `yaml:"supply_chain_impact"`
}

// RemediationTemplate describes how to close a gap in one CSF category.
type RemediationTemplate struct {
	Code        string   `yaml:"code"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Actions     []string `yaml:"actions"`
	Effort      string   `yaml:"effort"` // Low / Medium / High
	Timeline    string   `yaml:"timeline"`
	Priority    string   `yaml:"priority"`
}
