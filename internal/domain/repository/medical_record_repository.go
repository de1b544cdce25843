package repository

import (
	"context"

	"online-health-consultation/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error
	FindByIDForUser(ctx context.Context, db *gorm.DB, id, userID uuid.UUID) (*entity.MedicalRecord, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]entity.MedicalRecord, error)
}
