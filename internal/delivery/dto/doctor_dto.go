package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SearchDoctorsRequest struct {
	Specialization string `json:"specialization"`
	Name           string `json:"name"`
	Date           string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time           string `json:"time" validate:"omitempty,hhmm"`
}

type UpdateAvailabilityRequest struct {
	AvailableFrom string `json:"available_from" validate:"required,hhmm"`
	AvailableTo   string `json:"available_to" validate:"required,hhmm"`
	IsAvailable   *bool  `json:"is_available" validate:"required"`
}

type DoctorResponse struct {
	ID              uuid.UUID       `json:"id"`
	FullName        string          `json:"full_name,omitempty"`
	Email           string          `json:"email,omitempty"`
	Specialization  string          `json:"specialization"`
	LicenseNumber   string          `json:"license_number"`
	ExperienceYears int             `json:"experience_years"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	AvailableFrom   string          `json:"available_from"`
	AvailableTo     string          `json:"available_to"`
	IsAvailable     bool            `json:"is_available"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type AvailabilityResponse struct {
	AvailableFrom string `json:"available_from"`
	AvailableTo   string `json:"available_to"`
	IsAvailable   bool   `json:"is_available"`
}
