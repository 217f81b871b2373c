package database

import (
	"encoding/json"
	"log"

	"ai-scm-toolkit/internal/assessment"
	"ai-scm-toolkit/internal/models"

	"github.com/google/uuid"
)

// SaveAssessment records a completed assessment. Best-effort: the core never
// requires reading history back, so write failures are logged, not returned.
func SaveAssessment(a assessment.Assessment, modelType string) {
	if DB == nil {
		return
	}

	gaps, err := json.Marshal(a.ComplianceGaps)
	if err != nil {
		log.Printf("failed to marshal gaps for %s: %v", a.SystemName, err)
		return
	}
	plan, err := json.Marshal(a.ActionPlan)
	if err != nil {
		log.Printf("failed to marshal action plan for %s: %v", a.SystemName, err)
		return
	}

	record := models.Assessment{
		ID:             uuid.NewString(),
		SystemName:     a.SystemName,
		ModelType:      modelType,
		RiskScore:      a.OverallRiskScore,
		RiskLevel:      string(a.RiskLevel),
		ComplianceGaps: string(gaps),
		ActionPlan:     string(plan),
	}
	if err := DB.Create(&record).Error; err != nil {
		log.Printf("failed to save assessment for %s: %v", a.SystemName, err)
	}
}

// RecentAssessments returns the newest records, newest first.
func RecentAssessments(limit int) ([]models.Assessment, error) {
	var records []models.Assessment
	err := DB.Order("created_at desc").Limit(limit).Find(&records).Error
	return records, err
}
