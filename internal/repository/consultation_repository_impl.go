package repository

import (
	"context"
	"errors"

	"online-health-consultation/internal/domain/entity"
	domainRepo "online-health-consultation/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type questionRepository struct{}

func NewQuestionRepository() domainRepo.QuestionRepository {
	return &questionRepository{}
}

func (r *questionRepository) Create(ctx context.Context, db *gorm.DB, question *entity.Question) error {
	return db.WithContext(ctx).Omit("Patient", "Answer").Create(question).Error
}

func (r *questionRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Question, error) {
	var question entity.Question
	err := db.WithContext(ctx).
		Preload("Patient").Preload("Answer.Doctor.User").
		Where("id = ?", id).
		First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) List(ctx context.Context, db *gorm.DB, filter entity.QuestionFilter) ([]entity.Question, int64, error) {
	query := db.WithContext(ctx).Model(&entity.Question{})
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.Answered != nil {
		query = query.Where("answered = ?", *filter.Answered)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []entity.Question
	query = query.Preload("Patient").Preload("Answer").Order("created_at DESC")
	err := paginate(query, filter.Limit, filter.Offset).Find(&questions).Error
	if err != nil {
		return nil, 0, err
	}
	return questions, total, nil
}

// MarkAnswered flips answered only while it is still false; 0 rows means the
// question is unknown or already answered.
func (r *questionRepository) MarkAnswered(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Question{}).
		Where("id = ? AND answered = ?", id, false).
		Update("answered", true)
	return result.RowsAffected, result.Error
}

type answerRepository struct{}

func NewAnswerRepository() domainRepo.AnswerRepository {
	return &answerRepository{}
}

func (r *answerRepository) Create(ctx context.Context, db *gorm.DB, answer *entity.Answer) error {
	return db.WithContext(ctx).Omit("Doctor").Create(answer).Error
}

type tipRepository struct{}

func NewTipRepository() domainRepo.TipRepository {
	return &tipRepository{}
}

func (r *tipRepository) Create(ctx context.Context, db *gorm.DB, tip *entity.Tip) error {
	return db.WithContext(ctx).Omit("Doctor").Create(tip).Error
}

func (r *tipRepository) List(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.Tip, int64, error) {
	var total int64
	if err := db.WithContext(ctx).Model(&entity.Tip{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tips []entity.Tip
	query := db.WithContext(ctx).Preload("Doctor.User").Order("created_at DESC")
	err := paginate(query, limit, offset).Find(&tips).Error
	if err != nil {
		return nil, 0, err
	}
	return tips, total, nil
}
