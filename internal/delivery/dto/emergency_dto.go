package dto

import (
	"time"

	"github.com/google/uuid"
)

type EmergencyContactRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	ContactNumber string `json:"contact_number" validate:"required,phone"`
	Location      string `json:"location" validate:"required,max=1000"`
	EmergencyType string `json:"emergency_type" validate:"required,oneof=medical accident cardiac respiratory mental_health other"`
	Description   string `json:"description" validate:"required,max=5000"`
}

type EmergencyContactResponse struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	ContactNumber string     `json:"contact_number"`
	Location      string     `json:"location"`
	EmergencyType string     `json:"emergency_type"`
	Description   string     `json:"description"`
	IsResolved    bool       `json:"is_resolved"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type EmergencyContactListResponse struct {
	Contacts []EmergencyContactResponse `json:"contacts"`
	Total    int64                      `json:"total"`
	Page     int                        `json:"-"`
	Limit    int                        `json:"-"`
}
