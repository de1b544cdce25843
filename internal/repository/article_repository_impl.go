package repository

import (
	"context"
	"errors"

	"online-health-consultation/internal/domain/entity"
	domainRepo "online-health-consultation/internal/domain/repository"

	"gorm.io/gorm"
)

type articleRepository struct{}

func NewArticleRepository() domainRepo.ArticleRepository {
	return &articleRepository{}
}

func (r *articleRepository) Create(ctx context.Context, db *gorm.DB, article *entity.HealthArticle) error {
	return db.WithContext(ctx).Omit("Author", "Category").Create(article).Error
}

func (r *articleRepository) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*entity.HealthArticle, error) {
	var article entity.HealthArticle
	err := db.WithContext(ctx).
		Preload("Author").Preload("Category").
		Where("slug = ?", slug).
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

func (r *articleRepository) ExistsBySlug(ctx context.Context, db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.HealthArticle{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *articleRepository) List(ctx context.Context, db *gorm.DB, filter entity.ArticleFilter) ([]entity.HealthArticle, int64, error) {
	query := db.WithContext(ctx).Model(&entity.HealthArticle{})

	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN article_categories ON article_categories.id = health_articles.category_id").
			Where("article_categories.slug = ?", filter.CategorySlug)
	}
	if filter.Featured != nil {
		query = query.Where("health_articles.featured = ?", *filter.Featured)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("LOWER(health_articles.title) LIKE LOWER(?) OR LOWER(health_articles.summary) LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []entity.HealthArticle
	query = query.Preload("Author").Preload("Category").
		Order("health_articles.featured DESC, health_articles.created_at DESC")
	err := paginate(query, filter.Limit, filter.Offset).Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// IncrementViews bumps the counter inside the database, so concurrent readers
// never overwrite each other's increments.
func (r *articleRepository) IncrementViews(ctx context.Context, db *gorm.DB, slug string) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.HealthArticle{}).
		Where("slug = ?", slug).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	return result.RowsAffected, result.Error
}

type categoryRepository struct{}

func NewCategoryRepository() domainRepo.CategoryRepository {
	return &categoryRepository{}
}

func (r *categoryRepository) Create(ctx context.Context, db *gorm.DB, category *entity.ArticleCategory) error {
	return db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.ArticleCategory, error) {
	var categories []entity.ArticleCategory
	if err := db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.ArticleCategory, error) {
	var category entity.ArticleCategory
	err := db.WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*entity.ArticleCategory, error) {
	var category entity.ArticleCategory
	err := db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}
