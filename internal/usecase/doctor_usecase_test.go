package usecase

import (
	"context"
	"testing"

	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/repository"
	"online-health-consultation/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAvailability(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewDoctorUsecase(db, testutil.NewLogger(), repository.NewDoctorRepository(), newAuditService())
	ctx := context.Background()
	doctor := testutil.CreateDoctor(t, db, "drhours", "09:00", "17:00")

	current, err := uc.GetAvailability(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:00", current.AvailableFrom)
	assert.True(t, current.IsAvailable)

	off := false
	updated, err := uc.UpdateAvailability(ctx, doctor.ID, &dto.UpdateAvailabilityRequest{
		AvailableFrom: "13:00",
		AvailableTo:   "20:30",
		IsAvailable:   &off,
	})
	require.NoError(t, err)
	assert.Equal(t, "13:00", updated.AvailableFrom)
	assert.Equal(t, "20:30", updated.AvailableTo)
	assert.False(t, updated.IsAvailable)

	stored, err := uc.GetAvailability(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, stored)

	var audits int64
	require.NoError(t, db.Model(&entity.AuditLog{}).Where("action = ?", entity.AuditActionAvailabilityUpdate).Count(&audits).Error)
	assert.Equal(t, int64(1), audits)

	on := true
	for _, window := range [][2]string{{"17:00", "09:00"}, {"10:00", "10:00"}, {"25:00", "26:00"}, {"9:00", "17:00"}} {
		_, err = uc.UpdateAvailability(ctx, doctor.ID, &dto.UpdateAvailabilityRequest{
			AvailableFrom: window[0],
			AvailableTo:   window[1],
			IsAvailable:   &on,
		})
		assert.ErrorIs(t, err, ErrInvalidAvailability, window)
	}

	_, err = uc.UpdateAvailability(ctx, uuid.New(), &dto.UpdateAvailabilityRequest{
		AvailableFrom: "08:00",
		AvailableTo:   "12:00",
		IsAvailable:   &on,
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = uc.GetAvailability(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestGetDoctor(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewDoctorUsecase(db, testutil.NewLogger(), repository.NewDoctorRepository(), newAuditService())
	ctx := context.Background()
	doctor := testutil.CreateDoctor(t, db, "drdetail", "09:00", "17:00")
	patient := testutil.CreatePatient(t, db, "patdetail")

	found, err := uc.GetDoctor(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, "LIC-drdetail", found.LicenseNumber)
	assert.Equal(t, "Cardiology", found.Specialization)

	_, err = uc.GetDoctor(ctx, patient.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	require.NoError(t, db.Model(&entity.User{}).Where("id = ?", doctor.ID).Update("is_active", false).Error)
	_, err = uc.GetDoctor(ctx, doctor.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = uc.SearchDoctors(ctx, &dto.SearchDoctorsRequest{Date: "01/02/2030"})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestSearchDoctorsMatchesUpdatedWindow(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewDoctorUsecase(db, testutil.NewLogger(), repository.NewDoctorRepository(), newAuditService())
	ctx := context.Background()
	doctor := testutil.CreateDoctor(t, db, "drwindow", "14:00", "18:00")

	on := true
	_, err := uc.UpdateAvailability(ctx, doctor.ID, &dto.UpdateAvailabilityRequest{
		AvailableFrom: "09:00",
		AvailableTo:   "17:00",
		IsAvailable:   &on,
	})
	require.NoError(t, err)

	for _, at := range []string{"09:00", "10:00", "16:59"} {
		found, err := uc.SearchDoctors(ctx, &dto.SearchDoctorsRequest{Time: at})
		require.NoError(t, err)
		require.Len(t, found.Doctors, 1, at)
		assert.Equal(t, doctor.ID, found.Doctors[0].ID)
	}

	found, err := uc.SearchDoctors(ctx, &dto.SearchDoctorsRequest{Time: "17:00"})
	require.NoError(t, err)
	assert.Empty(t, found.Doctors)

	_, err = uc.SearchDoctors(ctx, &dto.SearchDoctorsRequest{Time: "9:30"})
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}
