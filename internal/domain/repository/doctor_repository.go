package repository

import (
	"context"

	"online-health-consultation/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error)
	FindByLicense(ctx context.Context, db *gorm.DB, license string) (*entity.Doctor, error)
	Search(ctx context.Context, db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error)
	Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
}
