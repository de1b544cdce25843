package dto

import (
	"time"

	"github.com/google/uuid"
)

type BookAppointmentRequest struct {
	DoctorID    string    `json:"doctor_id" validate:"required,uuid"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Type        string    `json:"appointment_type" validate:"required,oneof=consultation follow_up routine_checkup emergency"`
	Symptoms    string    `json:"symptoms" validate:"omitempty,max=2000"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled confirmed completed cancelled no_show"`
}

type AppointmentFilterRequest struct {
	Status string
	Date   string
	Page   int
	Limit  int
}

type AppointmentResponse struct {
	ID          uuid.UUID       `json:"id"`
	PatientID   uuid.UUID       `json:"patient_id"`
	PatientName string          `json:"patient_name,omitempty"`
	DoctorID    uuid.UUID       `json:"doctor_id"`
	Doctor      *DoctorResponse `json:"doctor,omitempty"`
	ScheduledAt time.Time       `json:"scheduled_at"`
	Type        string          `json:"appointment_type"`
	Status      string          `json:"status"`
	Symptoms    string          `json:"symptoms,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
	CompletedAt *time.Time      `json:"completed_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"-"`
	Limit        int                   `json:"-"`
}
