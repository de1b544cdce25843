package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmergencyType string

const (
	EmergencyTypeMedical      EmergencyType = "medical"
	EmergencyTypeAccident     EmergencyType = "accident"
	EmergencyTypeCardiac      EmergencyType = "cardiac"
	EmergencyTypeRespiratory  EmergencyType = "respiratory"
	EmergencyTypeMentalHealth EmergencyType = "mental_health"
	EmergencyTypeOther        EmergencyType = "other"
)

func (t EmergencyType) IsValid() bool {
	switch t {
	case EmergencyTypeMedical, EmergencyTypeAccident, EmergencyTypeCardiac,
		EmergencyTypeRespiratory, EmergencyTypeMentalHealth, EmergencyTypeOther:
		return true
	}
	return false
}

// EmergencyContact is an anonymous intake record with no link to users.
type EmergencyContact struct {
	ID            uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string        `gorm:"type:varchar(100);not null" json:"name"`
	ContactNumber string        `gorm:"type:varchar(20);not null" json:"contact_number"`
	Location      string        `gorm:"type:text;not null" json:"location"`
	EmergencyType EmergencyType `gorm:"type:varchar(30);not null" json:"emergency_type"`
	Description   string        `gorm:"type:text;not null" json:"description"`
	IsResolved    bool          `gorm:"not null;index" json:"is_resolved"`
	ResolvedAt    *time.Time    `json:"resolved_at,omitempty"`
	CreatedAt     time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
}

func (EmergencyContact) TableName() string {
	return "emergency_contacts"
}

func (e *EmergencyContact) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type EmergencyFilter struct {
	Resolved *bool
	Limit    int
	Offset   int
}
