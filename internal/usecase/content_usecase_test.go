package usecase

import (
	"context"
	"math"
	"testing"

	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/repository"
	"online-health-consultation/internal/service"
	"online-health-consultation/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleViews(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewArticleUsecase(db, testutil.NewLogger(), repository.NewArticleRepository(), repository.NewCategoryRepository())
	ctx := context.Background()
	author := testutil.CreateDoctor(t, db, "drauthor", "09:00", "17:00")

	category, err := uc.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Heart Health"})
	require.NoError(t, err)
	assert.Equal(t, "heart-health", category.Slug)

	_, err = uc.CreateCategory(ctx, &dto.CreateCategoryRequest{Name: "Heart health!"})
	assert.ErrorIs(t, err, ErrCategorySlugTaken)

	created, err := uc.CreateArticle(ctx, author.ID, &dto.CreateArticleRequest{
		Title:      "Ten Tips for a Healthy Heart",
		Content:    "Move more.",
		CategoryID: &category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "ten-tips-for-a-healthy-heart", created.Slug)
	assert.Zero(t, created.Views)

	_, err = uc.CreateArticle(ctx, author.ID, &dto.CreateArticleRequest{Title: "Ten tips for a healthy heart", Content: "x"})
	assert.ErrorIs(t, err, ErrArticleSlugTaken)

	missingCategory := uint(999)
	_, err = uc.CreateArticle(ctx, author.ID, &dto.CreateArticleRequest{Title: "Other", Content: "x", CategoryID: &missingCategory})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = uc.CreateArticle(ctx, author.ID, &dto.CreateArticleRequest{Title: "???", Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidSlug)

	first, err := uc.GetArticle(ctx, created.Slug)
	require.NoError(t, err)
	assert.EqualValues(t, 1, first.Views)

	second, err := uc.GetArticle(ctx, created.Slug)
	require.NoError(t, err)
	assert.EqualValues(t, 2, second.Views)
	require.NotNil(t, second.Category)
	assert.Equal(t, "heart-health", second.Category.Slug)

	_, err = uc.GetArticle(ctx, "no-such-article")
	assert.ErrorIs(t, err, ErrArticleNotFound)

	list, err := uc.ListArticles(ctx, &dto.ListArticlesRequest{Category: "heart-health"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, list.Total)
	assert.Equal(t, 1, list.Page)

	beyond, err := uc.ListArticles(ctx, &dto.ListArticlesRequest{Page: math.MaxInt, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, beyond.Articles)
	assert.Equal(t, maxPage, beyond.Page)
}

func TestAnswerQuestion(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewConsultationUsecase(db, testutil.NewLogger(), repository.NewQuestionRepository(), repository.NewAnswerRepository(), repository.NewTipRepository())
	ctx := context.Background()

	patient := testutil.CreatePatient(t, db, "asker")
	other := testutil.CreatePatient(t, db, "nosy")
	doctor := testutil.CreateDoctor(t, db, "dranswer", "09:00", "17:00")
	secondDoctor := testutil.CreateDoctor(t, db, "drlate", "09:00", "17:00")

	question, err := uc.AskQuestion(ctx, patient.ID, &dto.AskQuestionRequest{Title: "Dizzy", Description: "Dizzy after running"})
	require.NoError(t, err)
	assert.False(t, question.Answered)

	_, err = uc.GetQuestion(ctx, other.ID, entity.RolePatient, question.ID)
	assert.ErrorIs(t, err, ErrQuestionNotFound, "patients only see their own questions")

	answered, err := uc.AnswerQuestion(ctx, doctor.ID, question.ID, &dto.AnswerQuestionRequest{Response: "Drink water and rest."})
	require.NoError(t, err)
	assert.True(t, answered.Answered)
	require.NotNil(t, answered.Answer)
	assert.Equal(t, doctor.ID, answered.Answer.DoctorID)

	_, err = uc.AnswerQuestion(ctx, secondDoctor.ID, question.ID, &dto.AnswerQuestionRequest{Response: "Me too"})
	assert.ErrorIs(t, err, ErrQuestionAlreadyAnswered)

	_, err = uc.AnswerQuestion(ctx, doctor.ID, uuid.New(), &dto.AnswerQuestionRequest{Response: "?"})
	assert.ErrorIs(t, err, ErrQuestionNotFound)

	var answers int64
	require.NoError(t, db.Model(&entity.Answer{}).Count(&answers).Error)
	assert.EqualValues(t, 1, answers)

	_, err = uc.AskQuestion(ctx, other.ID, &dto.AskQuestionRequest{Title: "Sleep", Description: "Cannot sleep"})
	require.NoError(t, err)

	mine, err := uc.ListQuestions(ctx, patient.ID, entity.RolePatient, nil, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, mine.Total)

	unanswered := false
	open, err := uc.ListQuestions(ctx, doctor.ID, entity.RoleDoctor, &unanswered, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, open.Total)
	assert.Equal(t, "Sleep", open.Questions[0].Title)

	tip, err := uc.CreateTip(ctx, doctor.ID, &dto.CreateTipRequest{Title: "Hydrate", Content: "Two litres a day"})
	require.NoError(t, err)
	tips, err := uc.ListTips(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, tips.Tips, 1)
	assert.Equal(t, tip.ID, tips.Tips[0].ID)
}

func TestEmergencyIntake(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewEmergencyUsecase(db, testutil.NewLogger(), repository.NewEmergencyContactRepository(), newAuditService(), service.NewNoopNotifier())
	ctx := context.Background()
	admin := testutil.CreateAdmin(t, db, "oncall")

	contact, err := uc.Submit(ctx, &dto.EmergencyContactRequest{
		Name:          "Pat",
		ContactNumber: "+14155552671",
		Location:      "12 Main St",
		EmergencyType: "cardiac",
		Description:   "Chest pain",
	})
	require.NoError(t, err)
	assert.False(t, contact.IsResolved)

	_, err = uc.Submit(ctx, &dto.EmergencyContactRequest{Name: "x", EmergencyType: "alien"})
	assert.ErrorIs(t, err, ErrInvalidEmergencyType)

	open := false
	pending, err := uc.List(ctx, &open, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending.Total)

	resolved, err := uc.Resolve(ctx, admin.ID, contact.ID)
	require.NoError(t, err)
	assert.True(t, resolved.IsResolved)
	assert.NotNil(t, resolved.ResolvedAt)

	_, err = uc.Resolve(ctx, admin.ID, contact.ID)
	assert.ErrorIs(t, err, ErrEmergencyAlreadyResolved)

	_, err = uc.Resolve(ctx, admin.ID, uuid.New())
	assert.ErrorIs(t, err, ErrEmergencyNotFound)

	pending, err = uc.List(ctx, &open, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, pending.Total)
}
