package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultAvailableFrom = "09:00"
	DefaultAvailableTo   = "17:00"

	clockLayout = "15:04"
)

// Doctor carries practice attributes and exists only for users registered
// with the doctor role.
type Doctor struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	LicenseNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	ExperienceYears int             `gorm:"not null" json:"experience_years"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"consultation_fee"`
	AvailableFrom   string          `gorm:"type:varchar(5);not null" json:"available_from"`
	AvailableTo     string          `gorm:"type:varchar(5);not null" json:"available_to"`
	IsAvailable     bool            `gorm:"not null;index" json:"is_available"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// ParseClock converts a zero-padded "HH:MM" into minutes since midnight.
// Availability windows are compared as strings in SQL, so "9:00" is rejected.
func ParseClock(s string) (int, error) {
	if len(s) != len(clockLayout) {
		return 0, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Covers reports whether the time of day of t (in UTC) falls inside the
// half-open window [AvailableFrom, AvailableTo).
func (d *Doctor) Covers(t time.Time) bool {
	from, err := ParseClock(d.AvailableFrom)
	if err != nil {
		return false
	}
	to, err := ParseClock(d.AvailableTo)
	if err != nil {
		return false
	}
	t = t.UTC()
	minute := t.Hour()*60 + t.Minute()
	return minute >= from && minute < to
}

// DoctorFilter drives the doctor search. Time is "HH:MM"; when Date is set as
// well, doctors with an active appointment in that slot are excluded.
type DoctorFilter struct {
	Specialization string
	Name           string
	Date           *time.Time
	Time           string
	OnlyAvailable  bool
}
