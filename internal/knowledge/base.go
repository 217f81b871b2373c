package knowledge

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Base holds the three static catalogs. Loaded once at startup, read-only
// afterwards, shared by reference across all assessments.
type Base struct {
	taxonomy  Taxonomy
	riskTypes map[string]RiskType
	templates map[string]RemediationTemplate
	fallback  RemediationTemplate
}

type riskCatalog struct {
	AIRiskCategories map[string]RiskType `yaml:"ai_risk_categories"`
}

type templateCatalog struct {
	Templates []RemediationTemplate `yaml:"templates"`
	Default   RemediationTemplate   `yaml:"default"`
}

// Load reads the catalogs from dir. A missing or malformed catalog is a hard
// error: serving assessments without reference data would produce plausible
// but wrong results.
func Load(dir string) (*Base, error) {
	b := &Base{
		riskTypes: make(map[string]RiskType),
		templates: make(map[string]RemediationTemplate),
	}

	if err := readYAML(filepath.Join(dir, "csf_categories.yaml"), &b.taxonomy); err != nil {
		return nil, err
	}
	if len(b.taxonomy.Functions) == 0 {
		return nil, fmt.Errorf("csf_categories.yaml contains no functions")
	}

	var risks riskCatalog
	if err := readYAML(filepath.Join(dir, "ai_risks.yaml"), &risks); err != nil {
		return nil, err
	}
	if len(risks.AIRiskCategories) == 0 {
		return nil, fmt.Errorf("ai_risks.yaml contains no risk categories")
	}
	b.riskTypes = risks.AIRiskCategories

	var tmpls templateCatalog
	if err := readYAML(filepath.Join(dir, "remediation_templates.yaml"), &tmpls); err != nil {
		return nil, err
	}
	if len(tmpls.Templates) == 0 {
		return nil, fmt.Errorf("remediation_templates.yaml contains no templates")
	}
	for _, t := range tmpls.Templates {
		b.templates[t.Code] = t
	}
	b.fallback = tmpls.Default

	b.validate()
	return b, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// validate logs orphan category references. Orphans are tolerated: a risk
// type pointing at a code missing from the taxonomy still maps, it just
// renders with a generic description.
func (b *Base) validate() {
	for key, rt := range b.riskTypes {
		for _, code := range rt.CSFMappings {
			if _, ok := b.CategoryDescription(code); !ok {
				log.Printf("risk type %s references unknown csf category %s", key, code)
			}
		}
	}
	for code := range b.templates {
		if _, ok := b.CategoryDescription(code); !ok {
			log.Printf("remediation template %s has no matching csf category", code)
		}
	}
}

// CategoryDescription resolves a CSF code to its human-readable name,
// checking category codes first, then subcategory codes nested under them.
func (b *Base) CategoryDescription(code string) (string, bool) {
	for _, fn := range b.taxonomy.Functions {
		for catCode, cat := range fn.Categories {
			if catCode == code {
				return cat.Name, true
			}
			if desc, ok := cat.Subcategories[code]; ok {
				return desc, true
			}
		}
	}
	return "", false
}

// RiskType returns the catalog entry for an AI risk type key.
func (b *Base) RiskType(key string) (RiskType, bool) {
	rt, ok := b.riskTypes[key]
	return rt, ok
}

// RiskTypeKeys lists the known risk type keys.
func (b *Base) RiskTypeKeys() []string {
	keys := make([]string, 0, len(b.riskTypes))
	for k := range b.riskTypes {
		keys = append(keys, k)
	}
	return keys
}

// Template returns the remediation template for a category code, falling
// back to the default template so the planner always has something to
// render instead of silently dropping a gap.
func (b *Base) Template(code string) RemediationTemplate {
	if t, ok := b.templates[code]; ok {
		return t
	}
	t := b.fallback
	t.Code = code
	return t
}

// HasTemplate reports whether an exact template exists for the code.
func (b *Base) HasTemplate(code string) bool {
	_, ok := b.templates[code]
	return ok
}

// Categories flattens the taxonomy into (function, category code, name)
// rows, used to seed the reference table at startup.
func (b *Base) Categories() []CategoryRow {
	var rows []CategoryRow
	for fnCode, fn := range b.taxonomy.Functions {
		for catCode, cat := range fn.Categories {
			rows = append(rows, CategoryRow{
				FunctionCode: fnCode,
				FunctionName: fn.Name,
				Code:         catCode,
				Name:         cat.Name,
			})
			for subCode, desc := range cat.Subcategories {
				rows = append(rows, CategoryRow{
					FunctionCode: fnCode,
					FunctionName: fn.Name,
					Code:         subCode,
					Name:         desc,
				})
			}
		}
	}
	return rows
}

// CategoryRow is one flattened taxonomy entry.
type CategoryRow struct {
	FunctionCode string
	FunctionName string
	Code         string
	Name         string
}
