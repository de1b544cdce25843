package usecase

import (
	"context"
	"errors"
	"strings"

	"online-health-consultation/internal/converter"
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/domain/repository"
	"online-health-consultation/pkg/metrics"
	"online-health-consultation/pkg/slug"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrArticleNotFound   = errors.New("article not found")
	ErrArticleSlugTaken  = errors.New("an article with this slug already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategorySlugTaken = errors.New("a category with this slug already exists")
	ErrInvalidSlug       = errors.New("slug must contain at least one letter or digit")
)

type ArticleUsecase interface {
	CreateArticle(ctx context.Context, authorID uuid.UUID, req *dto.CreateArticleRequest) (*dto.ArticleResponse, error)
	ListArticles(ctx context.Context, req *dto.ListArticlesRequest) (*dto.ArticleListResponse, error)
	GetArticle(ctx context.Context, articleSlug string) (*dto.ArticleResponse, error)
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
}

type articleUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	articleRepo  repository.ArticleRepository
	categoryRepo repository.CategoryRepository
}

func NewArticleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	articleRepo repository.ArticleRepository,
	categoryRepo repository.CategoryRepository,
) ArticleUsecase {
	return &articleUsecase{
		db:           db,
		log:          log,
		articleRepo:  articleRepo,
		categoryRepo: categoryRepo,
	}
}

func (u *articleUsecase) CreateArticle(ctx context.Context, authorID uuid.UUID, req *dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	articleSlug := slug.Make(req.Title)
	if req.Slug != "" {
		articleSlug = slug.Make(req.Slug)
	}
	if articleSlug == "" {
		return nil, ErrInvalidSlug
	}

	exists, err := u.articleRepo.ExistsBySlug(ctx, u.db, articleSlug)
	if err != nil {
		u.log.Warnf("Failed to check article slug: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrArticleSlugTaken
	}

	var category *entity.ArticleCategory
	if req.CategoryID != nil {
		category, err = u.categoryRepo.FindByID(ctx, u.db, *req.CategoryID)
		if err != nil {
			u.log.Warnf("Failed to find category: %+v", err)
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}

	article := &entity.HealthArticle{
		Title:      strings.TrimSpace(req.Title),
		Slug:       articleSlug,
		Summary:    req.Summary,
		Content:    req.Content,
		AuthorID:   authorID,
		CategoryID: req.CategoryID,
		ImageURL:   req.ImageURL,
		Featured:   req.Featured,
	}
	if err := u.articleRepo.Create(ctx, u.db, article); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrArticleSlugTaken
		}
		u.log.Warnf("Failed to create article: %+v", err)
		return nil, err
	}
	article.Category = category

	return converter.ArticleToResponse(article, true), nil
}

func (u *articleUsecase) ListArticles(ctx context.Context, req *dto.ListArticlesRequest) (*dto.ArticleListResponse, error) {
	page, limit, offset := pageWindow(req.Page, req.Limit)

	articles, total, err := u.articleRepo.List(ctx, u.db, entity.ArticleFilter{
		CategorySlug: req.Category,
		Featured:     req.Featured,
		Search:       strings.TrimSpace(req.Search),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		u.log.Warnf("Failed to list articles: %+v", err)
		return nil, err
	}

	return &dto.ArticleListResponse{
		Articles: converter.ArticlesToResponses(articles),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// GetArticle counts the view in place before reading, so every fetch adds
// exactly one.
func (u *articleUsecase) GetArticle(ctx context.Context, articleSlug string) (*dto.ArticleResponse, error) {
	affected, err := u.articleRepo.IncrementViews(ctx, u.db, articleSlug)
	if err != nil {
		u.log.Warnf("Failed to increment article views: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrArticleNotFound
	}
	metrics.ArticleViews.Inc()

	article, err := u.articleRepo.FindBySlug(ctx, u.db, articleSlug)
	if err != nil {
		u.log.Warnf("Failed to find article by slug: %+v", err)
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	return converter.ArticleToResponse(article, true), nil
}

func (u *articleUsecase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := u.categoryRepo.FindAll(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to list categories: %+v", err)
		return nil, err
	}
	return converter.CategoriesToResponses(categories), nil
}

func (u *articleUsecase) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	categorySlug := slug.Make(req.Name)
	if req.Slug != "" {
		categorySlug = slug.Make(req.Slug)
	}
	if categorySlug == "" {
		return nil, ErrInvalidSlug
	}

	existing, err := u.categoryRepo.FindBySlug(ctx, u.db, categorySlug)
	if err != nil {
		u.log.Warnf("Failed to find category by slug: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategorySlugTaken
	}

	category := &entity.ArticleCategory{
		Name:        strings.TrimSpace(req.Name),
		Slug:        categorySlug,
		Description: req.Description,
	}
	if err := u.categoryRepo.Create(ctx, u.db, category); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCategorySlugTaken
		}
		u.log.Warnf("Failed to create category: %+v", err)
		return nil, err
	}

	return converter.CategoryToResponse(category), nil
}
