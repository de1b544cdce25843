package repository

import (
	"context"

	"online-health-consultation/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error)
	FindByLogin(ctx context.Context, db *gorm.DB, login string) (*entity.User, error)
	Update(ctx context.Context, db *gorm.DB, user *entity.User) error
	List(ctx context.Context, db *gorm.DB, filter entity.UserFilter) ([]entity.User, int64, error)
}
