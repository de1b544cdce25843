package repository

import (
	"context"
	"errors"

	"online-health-consultation/internal/domain/entity"
	domainRepo "online-health-consultation/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(ctx context.Context, db *gorm.DB, prescription *entity.Prescription) error {
	return db.WithContext(ctx).Omit("Patient", "Doctor").Create(prescription).Error
}

func (r *prescriptionRepository) FindByIDForPatient(ctx context.Context, db *gorm.DB, id, patientID uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.WithContext(ctx).
		Preload("Doctor.User").
		Where("id = ? AND patient_id = ?", id, patientID).
		First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) FindByIDForDoctor(ctx context.Context, db *gorm.DB, id, doctorID uuid.UUID) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.WithContext(ctx).
		Preload("Patient").
		Where("id = ? AND doctor_id = ?", id, doctorID).
		First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, db *gorm.DB, patientID uuid.UUID, onlyActive bool) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	query := db.WithContext(ctx).Preload("Doctor.User").Where("patient_id = ?", patientID)
	if onlyActive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("created_at DESC").Find(&prescriptions).Error; err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) ListByDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.WithContext(ctx).
		Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

// Deactivate flips is_active only for the prescribing doctor's active rows.
func (r *prescriptionRepository) Deactivate(ctx context.Context, db *gorm.DB, id, doctorID uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Prescription{}).
		Where("id = ? AND doctor_id = ? AND is_active = ?", id, doctorID, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
