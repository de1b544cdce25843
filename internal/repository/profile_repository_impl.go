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

type profileRepository struct{}

func NewProfileRepository() domainRepo.ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.Profile) error {
	return db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	err := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.Profile) error {
	return db.WithContext(ctx).Save(profile).Error
}

// CreateMissing gives every profile-less user an empty profile. Users with a
// doctors row keep the doctor role.
func (r *profileRepository) CreateMissing(ctx context.Context, db *gorm.DB) (int64, error) {
	now := time.Now().UTC()
	result := db.WithContext(ctx).Exec(`
		INSERT INTO profiles (user_id, is_doctor, phone_number, blood_group, emergency_contact_name, emergency_contact_phone, created_at, updated_at)
		SELECT users.id, EXISTS (SELECT 1 FROM doctors WHERE doctors.user_id = users.id), '', '', '', '', ?, ?
		FROM users
		LEFT JOIN profiles ON profiles.user_id = users.id
		WHERE profiles.user_id IS NULL`, now, now)
	return result.RowsAffected, result.Error
}
