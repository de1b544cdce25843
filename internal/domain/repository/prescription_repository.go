package repository

import (
	"context"

	"online-health-consultation/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error
	FindByIDForPatient(ctx context.Context, db *gorm.DB, id, patientID uuid.UUID) (*entity.Prescription, error)
	FindByIDForDoctor(ctx context.Context, db *gorm.DB, id, doctorID uuid.UUID) (*entity.Prescription, error)
	ListByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID, onlyActive bool) ([]entity.Prescription, error)
	ListByDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Prescription, error)
	Deactivate(ctx context.Context, db *gorm.DB, id, doctorID uuid.UUID) (int64, error)
}
