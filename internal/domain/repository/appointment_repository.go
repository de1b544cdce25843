package repository

import (
	"context"

	"online-health-consultation/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	// CreateIfSlotFree inserts the appointment unless the doctor already has an
	// active appointment at the same time. It reports whether a row was written.
	CreateIfSlotFree(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) (bool, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByIDScoped(ctx context.Context, db *gorm.DB, id uuid.UUID, scope entity.AppointmentScope) (*entity.Appointment, error)
	List(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	CountByStatus(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, status entity.AppointmentStatus) (int64, error)
	// TransitionStatus moves the appointment to status `to` only when it is
	// inside scope and currently in a status from which `to` is reachable.
	// It returns the number of rows updated (0 or 1).
	TransitionStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, scope entity.AppointmentScope, to entity.AppointmentStatus) (int64, error)
}
