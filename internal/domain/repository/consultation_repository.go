package repository

import (
	"context"

	"online-health-consultation/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(ctx context.Context, db *gorm.DB, question *entity.Question) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Question, error)
	List(ctx context.Context, db *gorm.DB, filter entity.QuestionFilter) ([]entity.Question, int64, error)
	MarkAnswered(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}

type AnswerRepository interface {
	Create(ctx context.Context, db *gorm.DB, answer *entity.Answer) error
}

type TipRepository interface {
	Create(ctx context.Context, db *gorm.DB, tip *entity.Tip) error
	List(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.Tip, int64, error)
}
