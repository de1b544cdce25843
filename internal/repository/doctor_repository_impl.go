package repository

import (
	"context"
	"errors"

	"online-health-consultation/internal/domain/entity"
	domainRepo "online-health-consultation/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Omit("User").Create(doctor).Error
}

func (r *doctorRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByLicense(ctx context.Context, db *gorm.DB, license string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Where("license_number = ?", license).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

// Search returns doctors with an active account. Time narrows the result to
// windows containing it; Date plus Time also drops doctors whose slot is taken.
func (r *doctorRepository) Search(ctx context.Context, db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	query := db.WithContext(ctx).
		Joins("JOIN users ON users.id = doctors.user_id").
		Where("users.is_active = ?", true)

	if filter.OnlyAvailable {
		query = query.Where("doctors.is_available = ?", true)
	}
	if filter.Specialization != "" {
		query = query.Where("LOWER(doctors.specialization) LIKE LOWER(?)", "%"+filter.Specialization+"%")
	}
	if filter.Name != "" {
		query = query.Where("LOWER(users.first_name || ' ' || users.last_name) LIKE LOWER(?)", "%"+filter.Name+"%")
	}
	if filter.Time != "" {
		minutes, err := entity.ParseClock(filter.Time)
		if err != nil {
			return nil, err
		}
		clock := entity.FormatClock(minutes)
		query = query.Where("doctors.available_from <= ? AND doctors.available_to > ?", clock, clock)

		if filter.Date != nil {
			d := filter.Date.UTC()
			slot := timeOfDay(d, minutes)
			query = query.Where(
				"NOT EXISTS (SELECT 1 FROM appointments WHERE appointments.doctor_id = doctors.user_id AND appointments.scheduled_at = ? AND appointments.status IN ?)",
				slot, entity.ActiveAppointmentStatuses,
			)
		}
	}

	var doctors []entity.Doctor
	err := query.Preload("User").
		Order("doctors.specialization ASC, users.last_name ASC").
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return db.WithContext(ctx).Omit("User").Save(doctor).Error
}
