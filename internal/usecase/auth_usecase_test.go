package usecase

import (
	"context"
	"testing"
	"time"

	"online-health-consultation/config"
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/repository"
	"online-health-consultation/internal/testutil"
	"online-health-consultation/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthUsecase(t *testing.T, db *gorm.DB) (AuthUsecase, *jwt.JWTService) {
	t.Helper()
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
	return NewAuthUsecase(
		db,
		testutil.NewLogger(),
		repository.NewUserRepository(),
		repository.NewProfileRepository(),
		repository.NewDoctorRepository(),
		newAuditService(),
		jwtService,
		newTokenStore(t),
	), jwtService
}

func registerRequest(username, role string) *dto.RegisterRequest {
	req := &dto.RegisterRequest{
		Username:              username,
		Email:                 username + "@Example.com",
		Password:              testutil.Password,
		PasswordConfirm:       testutil.Password,
		FirstName:             "Jane",
		LastName:              "Doe",
		DateOfBirth:           "1990-04-12",
		BloodGroup:            "O+",
		EmergencyContactName:  "John Doe",
		EmergencyContactPhone: "+14155552671",
		Role:                  role,
	}
	if role == string(entity.RoleDoctor) {
		req.Specialization = "Neurology"
		req.LicenseNumber = "LIC-" + username
		req.ExperienceYears = intPtr(0)
		req.ConsultationFee = "120.50"
	}
	return req
}

func TestRegisterPatient(t *testing.T) {
	db := testutil.NewDB(t)
	auth, _ := newAuthUsecase(t, db)

	user, err := auth.Register(context.Background(), registerRequest("patient1", "patient"))
	require.NoError(t, err)
	assert.Equal(t, "patient", user.Role)
	assert.Equal(t, "patient1@example.com", user.Email, "email is stored lower-cased")
	require.NotNil(t, user.Profile)
	assert.Nil(t, user.Doctor)

	var doctors int64
	require.NoError(t, db.Model(&entity.Doctor{}).Count(&doctors).Error)
	assert.Zero(t, doctors)

	var audits int64
	require.NoError(t, db.Model(&entity.AuditLog{}).Where("action = ?", entity.AuditActionUserRegister).Count(&audits).Error)
	assert.EqualValues(t, 1, audits)
}

func TestRegisterDoctor(t *testing.T) {
	db := testutil.NewDB(t)
	auth, _ := newAuthUsecase(t, db)

	user, err := auth.Register(context.Background(), registerRequest("drhouse", "doctor"))
	require.NoError(t, err)
	assert.Equal(t, "doctor", user.Role)
	require.NotNil(t, user.Doctor)

	var doctor entity.Doctor
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&doctor).Error)
	assert.Equal(t, "LIC-drhouse", doctor.LicenseNumber)
	assert.Equal(t, 0, doctor.ExperienceYears)
	assert.Equal(t, "120.5", doctor.ConsultationFee.String())
	assert.Equal(t, entity.DefaultAvailableFrom, doctor.AvailableFrom)
	assert.Equal(t, entity.DefaultAvailableTo, doctor.AvailableTo)
	assert.True(t, doctor.IsAvailable)

	var profile entity.Profile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.True(t, profile.IsDoctor)
}

func TestRegisterConflicts(t *testing.T) {
	db := testutil.NewDB(t)
	auth, _ := newAuthUsecase(t, db)
	ctx := context.Background()

	_, err := auth.Register(ctx, registerRequest("drfirst", "doctor"))
	require.NoError(t, err)

	t.Run("username", func(t *testing.T) {
		req := registerRequest("drfirst", "patient")
		req.Email = "other@example.com"
		_, err := auth.Register(ctx, req)
		assert.ErrorIs(t, err, ErrUsernameAlreadyExists)
	})

	t.Run("email", func(t *testing.T) {
		req := registerRequest("someoneelse", "patient")
		req.Email = "DRFIRST@example.com"
		_, err := auth.Register(ctx, req)
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("license leaves nothing behind", func(t *testing.T) {
		req := registerRequest("drsecond", "doctor")
		req.LicenseNumber = "LIC-drfirst"
		_, err := auth.Register(ctx, req)
		assert.ErrorIs(t, err, ErrLicenseAlreadyExists)

		var users int64
		require.NoError(t, db.Model(&entity.User{}).Where("username = ?", "drsecond").Count(&users).Error)
		assert.Zero(t, users)
	})

	t.Run("bad input", func(t *testing.T) {
		req := registerRequest("baddate", "patient")
		req.DateOfBirth = "12/04/1990"
		_, err := auth.Register(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidDateFormat)

		req = registerRequest("badfee", "doctor")
		req.ConsultationFee = "-1"
		_, err = auth.Register(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidFee)
	})
}

func TestLoginRefreshLogout(t *testing.T) {
	db := testutil.NewDB(t)
	auth, jwtService := newAuthUsecase(t, db)
	ctx := context.Background()

	user, err := auth.Register(ctx, registerRequest("loginuser", "patient"))
	require.NoError(t, err)

	_, err = auth.Login(ctx, &dto.LoginRequest{Login: "loginuser", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, &dto.LoginRequest{Login: "nobody", Password: testutil.Password})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	byEmail, err := auth.Login(ctx, &dto.LoginRequest{Login: "loginuser@example.com", Password: testutil.Password})
	require.NoError(t, err)
	assert.Equal(t, "patient", byEmail.Role)

	tokens, err := auth.Login(ctx, &dto.LoginRequest{Login: "loginuser", Password: testutil.Password})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.EqualValues(t, 15*60, tokens.ExpiresIn)

	_, err = auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken, "an access token cannot refresh")

	rotated, err := auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)

	_, err = auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked, "refresh tokens are single use")

	claims, err := jwtService.ValidateToken(rotated.AccessToken)
	require.NoError(t, err)
	require.NoError(t, auth.Logout(ctx, user.ID, claims.TokenID, rotated.RefreshToken))

	_, err = auth.RefreshToken(ctx, &dto.RefreshTokenRequest{RefreshToken: rotated.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
