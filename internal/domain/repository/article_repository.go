package repository

import (
	"context"

	"online-health-consultation/internal/domain/entity"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(ctx context.Context, db *gorm.DB, article *entity.HealthArticle) error
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*entity.HealthArticle, error)
	ExistsBySlug(ctx context.Context, db *gorm.DB, slug string) (bool, error)
	List(ctx context.Context, db *gorm.DB, filter entity.ArticleFilter) ([]entity.HealthArticle, int64, error)
	// IncrementViews adds one to the view counter in place and reports the
	// number of rows touched.
	IncrementViews(ctx context.Context, db *gorm.DB, slug string) (int64, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, db *gorm.DB, category *entity.ArticleCategory) error
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.ArticleCategory, error)
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.ArticleCategory, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*entity.ArticleCategory, error)
}
