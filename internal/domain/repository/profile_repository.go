package repository

import (
	"context"

	"online-health-consultation/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.Profile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.Profile, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.Profile) error
	// CreateMissing inserts a default profile for every user without one and
	// returns how many were created.
	CreateMissing(ctx context.Context, db *gorm.DB) (int64, error)
}
