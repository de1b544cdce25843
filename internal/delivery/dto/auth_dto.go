package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// RegisterRequest covers both roles; the doctor block is required only when
// Role is "doctor".
type RegisterRequest struct {
	Username              string `json:"username" validate:"required,min=3,max=150"`
	Email                 string `json:"email" validate:"required,email,max=255"`
	Password              string `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirm       string `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName             string `json:"first_name" validate:"required,max=150"`
	LastName              string `json:"last_name" validate:"required,max=150"`
	DateOfBirth           string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	PhoneNumber           string `json:"phone_number" validate:"omitempty,phone"`
	BloodGroup            string `json:"blood_group" validate:"omitempty,bloodgroup"`
	EmergencyContactName  string `json:"emergency_contact_name" validate:"required,max=100"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"required,phone"`
	Role                  string `json:"role" validate:"required,oneof=patient doctor"`

	Specialization  string `json:"specialization" validate:"required_if=Role doctor,max=100"`
	LicenseNumber   string `json:"license_number" validate:"required_if=Role doctor,max=50"`
	ExperienceYears *int   `json:"experience_years" validate:"required_if=Role doctor,omitempty,gte=0,lte=80"`
	ConsultationFee string `json:"consultation_fee" validate:"required_if=Role doctor,omitempty,numeric"`
}

type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Role         string `json:"role"`
}

type UserResponse struct {
	ID        uuid.UUID        `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Role      string           `json:"role"`
	IsActive  bool             `json:"is_active"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
	Doctor    *DoctorResponse  `json:"doctor,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
	Page  int            `json:"-"`
	Limit int            `json:"-"`
}
