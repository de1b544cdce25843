package usecase

import (
	"context"
	"strings"
	"time"

	"online-health-consultation/internal/converter"
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/domain/repository"
	"online-health-consultation/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	BackfillMissingProfiles(ctx context.Context, actorID *uuid.UUID) (int64, error)
	ListUsers(ctx context.Context, search, role string, page, limit int) (*dto.UserListResponse, error)
}

type profileUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	profileRepo  repository.ProfileRepository
	auditService service.AuditService
}

func NewProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	auditService service.AuditService,
) ProfileUsecase {
	return &profileUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		auditService: auditService,
	}
}

// GetProfile returns the user with its profile, creating an empty profile for
// legacy accounts that never got one.
func (u *profileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.Profile == nil {
		profile := repairedProfile(user)
		if err := u.profileRepo.Create(ctx, u.db, profile); err != nil {
			u.log.Warnf("Failed to create missing profile: %+v", err)
			return nil, err
		}
		user.Profile = profile
	}

	return converter.UserToResponse(user), nil
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var dob *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		dob = &parsed
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	profile := user.Profile
	isNewProfile := profile == nil
	if isNewProfile {
		profile = repairedProfile(user)
	}
	before := converter.UserToResponse(user)

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		email := strings.ToLower(*req.Email)
		if email != user.Email {
			existing, err := u.userRepo.FindByEmail(ctx, tx, email)
			if err != nil {
				u.log.Warnf("Failed to find user by email: %+v", err)
				return nil, err
			}
			if existing != nil {
				return nil, ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}

	if req.PhoneNumber != nil {
		profile.PhoneNumber = *req.PhoneNumber
	}
	if dob != nil {
		profile.DateOfBirth = dob
	}
	if req.BloodGroup != nil {
		profile.BloodGroup = *req.BloodGroup
	}
	if req.EmergencyContactName != nil {
		profile.EmergencyContactName = *req.EmergencyContactName
	}
	if req.EmergencyContactPhone != nil {
		profile.EmergencyContactPhone = *req.EmergencyContactPhone
	}

	if err := u.userRepo.Update(ctx, tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, err
	}

	if isNewProfile {
		err = u.profileRepo.Create(ctx, tx, profile)
	} else {
		err = u.profileRepo.Update(ctx, tx, profile)
	}
	if err != nil {
		u.log.Warnf("Failed to save profile: %+v", err)
		return nil, err
	}
	user.Profile = profile

	after := converter.UserToResponse(user)
	if err := u.auditService.LogUpdate(ctx, tx, &user.ID, entity.AuditActionProfileUpdate, "profile", user.ID.String(), before, after); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return after, nil
}

// BackfillMissingProfiles repairs legacy accounts in one statement.
func (u *profileUsecase) BackfillMissingProfiles(ctx context.Context, actorID *uuid.UUID) (int64, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	created, err := u.profileRepo.CreateMissing(ctx, tx)
	if err != nil {
		u.log.Warnf("Failed to backfill profiles: %+v", err)
		return 0, err
	}

	if created > 0 {
		if err := u.auditService.Record(ctx, tx, actorID, entity.AuditActionProfilesBackfill, "profile", "", map[string]interface{}{
			"created": created,
		}); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return 0, err
	}

	u.log.Infof("Backfilled %d missing profiles", created)
	return created, nil
}

func (u *profileUsecase) ListUsers(ctx context.Context, search, role string, page, limit int) (*dto.UserListResponse, error) {
	page, limit, offset := pageWindow(page, limit)

	users, total, err := u.userRepo.List(ctx, u.db, entity.UserFilter{
		Search: strings.TrimSpace(search),
		Role:   entity.Role(role),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

// repairedProfile is the profile a legacy account should have had.
func repairedProfile(user *entity.User) *entity.Profile {
	return &entity.Profile{UserID: user.ID, IsDoctor: user.Doctor != nil}
}
