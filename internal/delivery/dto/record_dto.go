package dto

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// UploadRecordRequest is assembled by the handler from a multipart form.
type UploadRecordRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	RecordDate string `json:"record_date" validate:"required,datetime=2006-01-02"`
	RecordType string `json:"record_type" validate:"required,oneof=lab_report imaging prescription discharge_summary vaccination other"`
	Notes      string `json:"notes" validate:"omitempty,max=5000"`

	File        io.ReadSeeker `json:"-"`
	FileName    string        `json:"-"`
	FileSize    int64         `json:"-"`
	ContentType string        `json:"-"`
}

type MedicalRecordResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	RecordDate  string    `json:"record_date"`
	RecordType  string    `json:"record_type"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	Notes       string    `json:"notes,omitempty"`
	DownloadURL string    `json:"download_url,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}
