package entity

import (
	"time"

	"github.com/google/uuid"
)

var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// Profile extends every user with the role flag and demographic data.
type Profile struct {
	UserID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	IsDoctor              bool       `gorm:"not null;index" json:"is_doctor"`
	PhoneNumber           string     `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	DateOfBirth           *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	BloodGroup            string     `gorm:"type:varchar(3)" json:"blood_group,omitempty"`
	EmergencyContactName  string     `gorm:"type:varchar(100)" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `gorm:"type:varchar(20)" json:"emergency_contact_phone,omitempty"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
