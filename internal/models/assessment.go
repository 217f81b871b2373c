package models

import "time"

// Assessment is the persisted record of one completed assessment.
type Assessment struct {
	ID             string    `gorm:"primaryKey;size:36"`
	CreatedAt      time.Time `gorm:"index"`
	SystemName     string    `gorm:"size:255;index"`
	ModelType      string    `gorm:"size:255"`
	RiskScore      int
	RiskLevel      string `gorm:"size:16"`
	ComplianceGaps string `gorm:"type:text"` // JSON
	ActionPlan     string `gorm:"type:text"` // JSON
}

// CSFCategoryRecord mirrors the taxonomy into a reference table, seeded from
// the knowledge base at startup.
type CSFCategoryRecord struct {
	ID           uint   `gorm:"primaryKey"`
	CategoryCode string `gorm:"size:32;uniqueIndex"`
	FunctionCode string `gorm:"size:8"`
	FunctionName string `gorm:"size:64"`
	Description  string `gorm:"type:text"`
}
