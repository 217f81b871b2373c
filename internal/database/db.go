package database

import (
	"log"
	"time"

	"ai-scm-toolkit/internal/knowledge"
	"ai-scm-toolkit/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init connects to the database, runs migrations, and seeds the CSF
// category reference table from the knowledge base. Persistence is optional
// at the service level, but once a DSN is configured a dead database is a
// configuration error.
func Init(dsn string, kb *knowledge.Base) {
	var err error

	const maxAttempts = 10
	for i := 1; i <= maxAttempts; i++ {
		log.Printf("trying to connect to DB (attempt %d/%d)...", i, maxAttempts)

		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Println("connected to DB successfully")
			break
		}

		log.Printf("failed to connect to DB: %v", err)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatalf("failed to connect to db after %d attempts: %v", maxAttempts, err)
	}

	err = DB.AutoMigrate(
		&models.Assessment{},
		&models.CSFCategoryRecord{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedCategories(kb)
}

// seedCategories mirrors the taxonomy into the reference table so report
// consumers can join on category codes. Existing rows are left alone.
func seedCategories(kb *knowledge.Base) {
	for _, row := range kb.Categories() {
		var count int64
		if err := DB.Model(&models.CSFCategoryRecord{}).
			Where("category_code = ?", row.Code).
			Count(&count).Error; err != nil {
			log.Printf("failed to check csf category %s: %v", row.Code, err)
			continue
		}
		if count > 0 {
			continue
		}

		record := models.CSFCategoryRecord{
			CategoryCode: row.Code,
			FunctionCode: row.FunctionCode,
			FunctionName: row.FunctionName,
			Description:  row.Name,
		}
		if err := DB.Create(&record).Error; err != nil {
			log.Printf("failed to seed csf category %s: %v", row.Code, err)
		}
	}
}
