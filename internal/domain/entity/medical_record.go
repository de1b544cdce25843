package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecordType string

const (
	RecordTypeLabReport        RecordType = "lab_report"
	RecordTypeImaging          RecordType = "imaging"
	RecordTypePrescription     RecordType = "prescription"
	RecordTypeDischargeSummary RecordType = "discharge_summary"
	RecordTypeVaccination      RecordType = "vaccination"
	RecordTypeOther            RecordType = "other"
)

func (t RecordType) IsValid() bool {
	switch t {
	case RecordTypeLabReport, RecordTypeImaging, RecordTypePrescription,
		RecordTypeDischargeSummary, RecordTypeVaccination, RecordTypeOther:
		return true
	}
	return false
}

// MedicalRecord holds metadata for a file kept in object storage under FileKey.
type MedicalRecord struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	DoctorID    *uuid.UUID `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	Title       string     `gorm:"type:varchar(200);not null" json:"title"`
	RecordDate  time.Time  `gorm:"type:date;not null" json:"record_date"`
	RecordType  RecordType `gorm:"type:varchar(30);not null" json:"record_type"`
	FileKey     string     `gorm:"type:varchar(255);not null" json:"-"`
	FileName    string     `gorm:"type:varchar(255);not null" json:"file_name"`
	ContentType string     `gorm:"type:varchar(100);not null" json:"content_type"`
	FileSize    int64      `gorm:"not null" json:"file_size"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	UploadedAt  time.Time  `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

func (r *MedicalRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
