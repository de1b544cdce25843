package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentType string

const (
	AppointmentTypeConsultation   AppointmentType = "consultation"
	AppointmentTypeFollowUp       AppointmentType = "follow_up"
	AppointmentTypeRoutineCheckup AppointmentType = "routine_checkup"
	AppointmentTypeEmergency      AppointmentType = "emergency"
)

func (t AppointmentType) IsValid() bool {
	switch t {
	case AppointmentTypeConsultation, AppointmentTypeFollowUp, AppointmentTypeRoutineCheckup, AppointmentTypeEmergency:
		return true
	}
	return false
}

// AppointmentStatus transitions:
//
//	scheduled → confirmed → completed
//	scheduled → cancelled
//	confirmed → cancelled
//	confirmed → no_show
//
// completed, cancelled and no_show are terminal.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusScheduled: {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow},
	AppointmentStatusCompleted: {},
	AppointmentStatusCancelled: {},
	AppointmentStatusNoShow:    {},
}

// ActiveAppointmentStatuses occupy a slot.
var ActiveAppointmentStatuses = []AppointmentStatus{AppointmentStatusScheduled, AppointmentStatusConfirmed}

func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if _, ok := appointmentTransitions[status]; !ok {
		return "", fmt.Errorf("unknown appointment status %q", s)
	}
	return status, nil
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s AppointmentStatus) IsTerminal() bool {
	return len(appointmentTransitions[s]) == 0
}

func (s AppointmentStatus) IsActive() bool {
	return s == AppointmentStatusScheduled || s == AppointmentStatusConfirmed
}

// SourcesFor lists the statuses from which target is reachable in one step.
func SourcesFor(target AppointmentStatus) []AppointmentStatus {
	var sources []AppointmentStatus
	for _, from := range []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusConfirmed,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusNoShow,
	} {
		if from.CanTransitionTo(target) {
			sources = append(sources, from)
		}
	}
	return sources
}

// Appointment books a patient into a doctor's slot. The partial unique index
// uniq_active_slot keeps at most one scheduled or confirmed row per
// (doctor_id, scheduled_at).
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID    uuid.UUID         `gorm:"type:uuid;not null;index;uniqueIndex:uniq_active_slot,where:status = 'scheduled' OR status = 'confirmed'" json:"doctor_id"`
	ScheduledAt time.Time         `gorm:"not null;index;uniqueIndex:uniq_active_slot" json:"scheduled_at"`
	Type        AppointmentType   `gorm:"type:varchar(30);not null" json:"type"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Symptoms    string            `gorm:"type:text" json:"symptoms,omitempty"`
	Notes       string            `gorm:"type:text" json:"notes,omitempty"`
	CancelledAt *time.Time        `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *User   `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  *Doctor `gorm:"foreignKey:DoctorID;references:UserID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AppointmentScope restricts a status write to rows owned by a patient or a
// doctor. The zero value means no ownership restriction (admin).
type AppointmentScope struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
}

type AppointmentFilter struct {
	PatientID  *uuid.UUID
	DoctorID   *uuid.UUID
	Status     AppointmentStatus
	ActiveOnly bool
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}
