package dto

import "github.com/google/uuid"

type UpdateProfileRequest struct {
	FirstName             *string `json:"first_name" validate:"omitempty,min=1,max=150"`
	LastName              *string `json:"last_name" validate:"omitempty,min=1,max=150"`
	Email                 *string `json:"email" validate:"omitempty,email,max=255"`
	PhoneNumber           *string `json:"phone_number" validate:"omitempty,phone"`
	DateOfBirth           *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	BloodGroup            *string `json:"blood_group" validate:"omitempty,bloodgroup"`
	EmergencyContactName  *string `json:"emergency_contact_name" validate:"omitempty,max=100"`
	EmergencyContactPhone *string `json:"emergency_contact_phone" validate:"omitempty,phone"`
}

type ProfileResponse struct {
	UserID                uuid.UUID `json:"user_id"`
	IsDoctor              bool      `json:"is_doctor"`
	PhoneNumber           string    `json:"phone_number,omitempty"`
	DateOfBirth           string    `json:"date_of_birth,omitempty"`
	BloodGroup            string    `json:"blood_group,omitempty"`
	EmergencyContactName  string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string    `json:"emergency_contact_phone,omitempty"`
}

type BackfillResponse struct {
	Created int64 `json:"created"`
}
