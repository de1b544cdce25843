package dto

import (
	"time"

	"github.com/google/uuid"
)

type AskQuestionRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
}

type AnswerQuestionRequest struct {
	Response string `json:"response" validate:"required,max=10000"`
}

type CreateTipRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required,max=10000"`
}

type AnswerResponse struct {
	ID         uuid.UUID `json:"id"`
	DoctorID   uuid.UUID `json:"doctor_id"`
	DoctorName string    `json:"doctor_name,omitempty"`
	Response   string    `json:"response"`
	CreatedAt  time.Time `json:"created_at"`
}

type QuestionResponse struct {
	ID          uuid.UUID       `json:"id"`
	PatientID   uuid.UUID       `json:"patient_id"`
	PatientName string          `json:"patient_name,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Answered    bool            `json:"answered"`
	Answer      *AnswerResponse `json:"answer,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Total     int64              `json:"total"`
	Page      int                `json:"-"`
	Limit     int                `json:"-"`
}

type TipResponse struct {
	ID         uuid.UUID `json:"id"`
	DoctorID   uuid.UUID `json:"doctor_id"`
	DoctorName string    `json:"doctor_name,omitempty"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type TipListResponse struct {
	Tips  []TipResponse `json:"tips"`
	Total int64         `json:"total"`
	Page  int           `json:"-"`
	Limit int           `json:"-"`
}
