package repository

import (
	"context"

	"online-health-consultation/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmergencyContactRepository interface {
	Create(ctx context.Context, db *gorm.DB, contact *entity.EmergencyContact) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.EmergencyContact, error)
	List(ctx context.Context, db *gorm.DB, filter entity.EmergencyFilter) ([]entity.EmergencyContact, int64, error)
	Resolve(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}
