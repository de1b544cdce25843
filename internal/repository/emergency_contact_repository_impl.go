package repository

import (
	"context"
	"errors"
	"time"

	"online-health-consultation/internal/domain/entity"
	domainRepo "online-health-consultation/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type emergencyContactRepository struct{}

func NewEmergencyContactRepository() domainRepo.EmergencyContactRepository {
	return &emergencyContactRepository{}
}

func (r *emergencyContactRepository) Create(ctx context.Context, db *gorm.DB, contact *entity.EmergencyContact) error {
	return db.WithContext(ctx).Create(contact).Error
}

func (r *emergencyContactRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.EmergencyContact, error) {
	var contact entity.EmergencyContact
	err := db.WithContext(ctx).Where("id = ?", id).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

func (r *emergencyContactRepository) List(ctx context.Context, db *gorm.DB, filter entity.EmergencyFilter) ([]entity.EmergencyContact, int64, error) {
	query := db.WithContext(ctx).Model(&entity.EmergencyContact{})
	if filter.Resolved != nil {
		query = query.Where("is_resolved = ?", *filter.Resolved)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contacts []entity.EmergencyContact
	err := paginate(query.Order("created_at DESC"), filter.Limit, filter.Offset).Find(&contacts).Error
	if err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (r *emergencyContactRepository) Resolve(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.EmergencyContact{}).
		Where("id = ? AND is_resolved = ?", id, false).
		Updates(map[string]interface{}{
			"is_resolved": true,
			"resolved_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}
