package repository

import (
	"context"
	"errors"
	"time"

	"online-health-consultation/internal/domain/entity"
	domainRepo "online-health-consultation/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// activeSlotPredicate must match the predicate of the uniq_active_slot index
// for ON CONFLICT to infer it.
const activeSlotPredicate = "status = 'scheduled' OR status = 'confirmed'"

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) CreateIfSlotFree(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) (bool, error) {
	result := db.WithContext(ctx).
		Omit("Patient", "Doctor").
		Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "doctor_id"}, {Name: "scheduled_at"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: activeSlotPredicate}}},
			DoNothing:   true,
		}).
		Create(appointment)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return r.FindByIDScoped(ctx, db, id, entity.AppointmentScope{})
}

func (r *appointmentRepository) FindByIDScoped(ctx context.Context, db *gorm.DB, id uuid.UUID, scope entity.AppointmentScope) (*entity.Appointment, error) {
	var appointment entity.Appointment
	query := applyScope(db.WithContext(ctx).Where("id = ?", id), scope)
	err := query.Preload("Patient").Preload("Doctor.User").First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	query := db.WithContext(ctx).Model(&entity.Appointment{})
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ActiveOnly {
		query = query.Where("status IN ?", entity.ActiveAppointmentStatuses)
	}
	if filter.From != nil {
		query = query.Where("scheduled_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("scheduled_at < ?", filter.To.UTC())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	query = query.Preload("Patient").Preload("Doctor.User").Order("scheduled_at ASC")
	if err := paginate(query, filter.Limit, filter.Offset).Find(&appointments).Error; err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND status = ?", doctorID, status).
		Count(&count).Error
	return count, err
}

func (r *appointmentRepository) TransitionStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, scope entity.AppointmentScope, to entity.AppointmentStatus) (int64, error) {
	sources := entity.SourcesFor(to)
	if len(sources) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{"status": to}
	switch to {
	case entity.AppointmentStatusCancelled:
		updates["cancelled_at"] = now
	case entity.AppointmentStatusCompleted:
		updates["completed_at"] = now
	}

	query := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status IN ?", id, sources)
	result := applyScope(query, scope).Updates(updates)
	return result.RowsAffected, result.Error
}

func applyScope(query *gorm.DB, scope entity.AppointmentScope) *gorm.DB {
	if scope.PatientID != nil {
		query = query.Where("patient_id = ?", *scope.PatientID)
	}
	if scope.DoctorID != nil {
		query = query.Where("doctor_id = ?", *scope.DoctorID)
	}
	return query
}

func timeOfDay(day time.Time, minutes int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(time.Duration(minutes) * time.Minute)
}
