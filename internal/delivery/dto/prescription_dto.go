package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreatePrescriptionRequest binds to a completed appointment or, without one,
// names the patient directly.
type CreatePrescriptionRequest struct {
	AppointmentID string `json:"appointment_id" validate:"required_without=PatientID,omitempty,uuid"`
	PatientID     string `json:"patient_id" validate:"required_without=AppointmentID,omitempty,uuid"`
	Diagnosis     string `json:"diagnosis" validate:"required,max=5000"`
	Medications   string `json:"medications" validate:"required,max=5000"`
	Instructions  string `json:"instructions" validate:"omitempty,max=5000"`
}

type PrescriptionResponse struct {
	ID            uuid.UUID       `json:"id"`
	PatientID     uuid.UUID       `json:"patient_id"`
	PatientName   string          `json:"patient_name,omitempty"`
	DoctorID      uuid.UUID       `json:"doctor_id"`
	Doctor        *DoctorResponse `json:"doctor,omitempty"`
	AppointmentID *uuid.UUID      `json:"appointment_id,omitempty"`
	Diagnosis     string          `json:"diagnosis"`
	Medications   string          `json:"medications"`
	Instructions  string          `json:"instructions,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}
