package repository

import (
	"context"
	"errors"

	"online-health-consultation/internal/domain/entity"
	domainRepo "online-health-consultation/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct{}

func NewUserRepository() domainRepo.UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Omit("Profile", "Doctor").Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	return r.first(db.WithContext(ctx).Where("id = ?", id))
}

func (r *userRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error) {
	return r.first(db.WithContext(ctx).Where("username = ?", username))
}

func (r *userRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	return r.first(db.WithContext(ctx).Where("email = ?", email))
}

// FindByLogin accepts either a username or an e-mail address.
func (r *userRepository) FindByLogin(ctx context.Context, db *gorm.DB, login string) (*entity.User, error) {
	return r.first(db.WithContext(ctx).Where("username = ? OR email = ?", login, login))
}

func (r *userRepository) first(query *gorm.DB) (*entity.User, error) {
	var user entity.User
	err := query.Preload("Profile").Preload("Doctor").First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	return db.WithContext(ctx).Omit("Profile", "Doctor").Save(user).Error
}

func (r *userRepository) List(ctx context.Context, db *gorm.DB, filter entity.UserFilter) ([]entity.User, int64, error) {
	query := db.WithContext(ctx).Model(&entity.User{}).
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id")

	switch filter.Role {
	case entity.RoleAdmin:
		query = query.Where("users.is_staff = ?", true)
	case entity.RoleDoctor:
		query = query.Where("users.is_staff = ? AND profiles.is_doctor = ?", false, true)
	case entity.RolePatient:
		query = query.Where("users.is_staff = ? AND (profiles.user_id IS NULL OR profiles.is_doctor = ?)", false, false)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("LOWER(users.username) LIKE LOWER(?) OR LOWER(users.email) LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	query = query.Preload("Profile").Order("users.created_at DESC")
	err := paginate(query, filter.Limit, filter.Offset).Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
