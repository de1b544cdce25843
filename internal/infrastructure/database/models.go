package database

import (
	"online-health-consultation/internal/domain/entity"

	"gorm.io/gorm"
)

// Models lists every persisted entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&entity.User{},
		&entity.Profile{},
		&entity.Doctor{},
		&entity.Appointment{},
		&entity.MedicalRecord{},
		&entity.Prescription{},
		&entity.ArticleCategory{},
		&entity.HealthArticle{},
		&entity.Question{},
		&entity.Answer{},
		&entity.Tip{},
		&entity.EmergencyContact{},
		&entity.AuditLog{},
	}
}

// AutoMigrate builds the schema from the entity tags. SQL migrations remain the
// source of truth for PostgreSQL; this is used for embedded test databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
