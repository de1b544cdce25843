package usecase

import (
	"context"
	"errors"

	"online-health-consultation/internal/converter"
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrQuestionNotFound        = errors.New("question not found")
	ErrQuestionAlreadyAnswered = errors.New("question has already been answered")
)

type ConsultationUsecase interface {
	AskQuestion(ctx context.Context, patientID uuid.UUID, req *dto.AskQuestionRequest) (*dto.QuestionResponse, error)
	ListQuestions(ctx context.Context, userID uuid.UUID, role entity.Role, answered *bool, page, limit int) (*dto.QuestionListResponse, error)
	GetQuestion(ctx context.Context, userID uuid.UUID, role entity.Role, id uuid.UUID) (*dto.QuestionResponse, error)
	AnswerQuestion(ctx context.Context, doctorID, questionID uuid.UUID, req *dto.AnswerQuestionRequest) (*dto.QuestionResponse, error)
	ListTips(ctx context.Context, page, limit int) (*dto.TipListResponse, error)
	CreateTip(ctx context.Context, doctorID uuid.UUID, req *dto.CreateTipRequest) (*dto.TipResponse, error)
}

type consultationUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRepository
	tipRepo      repository.TipRepository
}

func NewConsultationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	questionRepo repository.QuestionRepository,
	answerRepo repository.AnswerRepository,
	tipRepo repository.TipRepository,
) ConsultationUsecase {
	return &consultationUsecase{
		db:           db,
		log:          log,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		tipRepo:      tipRepo,
	}
}

func (u *consultationUsecase) AskQuestion(ctx context.Context, patientID uuid.UUID, req *dto.AskQuestionRequest) (*dto.QuestionResponse, error) {
	question := &entity.Question{
		PatientID:   patientID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := u.questionRepo.Create(ctx, u.db, question); err != nil {
		u.log.Warnf("Failed to create question: %+v", err)
		return nil, err
	}

	return converter.QuestionToResponse(question), nil
}

// ListQuestions shows patients their own questions; doctors and admins see all.
func (u *consultationUsecase) ListQuestions(ctx context.Context, userID uuid.UUID, role entity.Role, answered *bool, page, limit int) (*dto.QuestionListResponse, error) {
	page, limit, offset := pageWindow(page, limit)

	filter := entity.QuestionFilter{
		Answered: answered,
		Limit:    limit,
		Offset:   offset,
	}
	if role == entity.RolePatient {
		filter.PatientID = &userID
	}

	questions, total, err := u.questionRepo.List(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list questions: %+v", err)
		return nil, err
	}

	return &dto.QuestionListResponse{
		Questions: converter.QuestionsToResponses(questions),
		Total:     total,
		Page:      page,
		Limit:     limit,
	}, nil
}

func (u *consultationUsecase) GetQuestion(ctx context.Context, userID uuid.UUID, role entity.Role, id uuid.UUID) (*dto.QuestionResponse, error) {
	question, err := u.questionRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find question: %+v", err)
		return nil, err
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	if role == entity.RolePatient && question.PatientID != userID {
		return nil, ErrQuestionNotFound
	}

	return converter.QuestionToResponse(question), nil
}

// AnswerQuestion stores the answer and flips the answered flag together; the
// flag only moves false to true, so a second answer is rejected.
func (u *consultationUsecase) AnswerQuestion(ctx context.Context, doctorID, questionID uuid.UUID, req *dto.AnswerQuestionRequest) (*dto.QuestionResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.questionRepo.MarkAnswered(ctx, tx, questionID)
	if err != nil {
		u.log.Warnf("Failed to mark question answered: %+v", err)
		return nil, err
	}
	if affected == 0 {
		question, err := u.questionRepo.FindByID(ctx, tx, questionID)
		if err != nil {
			u.log.Warnf("Failed to find question: %+v", err)
			return nil, err
		}
		if question == nil {
			return nil, ErrQuestionNotFound
		}
		return nil, ErrQuestionAlreadyAnswered
	}

	answer := &entity.Answer{
		QuestionID: questionID,
		DoctorID:   doctorID,
		Response:   req.Response,
	}
	if err := u.answerRepo.Create(ctx, tx, answer); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrQuestionAlreadyAnswered
		}
		u.log.Warnf("Failed to create answer: %+v", err)
		return nil, err
	}

	question, err := u.questionRepo.FindByID(ctx, tx, questionID)
	if err != nil {
		u.log.Warnf("Failed to find question: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.QuestionToResponse(question), nil
}

func (u *consultationUsecase) ListTips(ctx context.Context, page, limit int) (*dto.TipListResponse, error) {
	page, limit, offset := pageWindow(page, limit)

	tips, total, err := u.tipRepo.List(ctx, u.db, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list tips: %+v", err)
		return nil, err
	}

	return &dto.TipListResponse{
		Tips:  converter.TipsToResponses(tips),
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (u *consultationUsecase) CreateTip(ctx context.Context, doctorID uuid.UUID, req *dto.CreateTipRequest) (*dto.TipResponse, error) {
	tip := &entity.Tip{
		DoctorID: doctorID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := u.tipRepo.Create(ctx, u.db, tip); err != nil {
		u.log.Warnf("Failed to create tip: %+v", err)
		return nil, err
	}

	return converter.TipToResponse(tip), nil
}
