package repository

import (
	"context"
	"testing"

	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMissingProfiles(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProfileRepository()
	ctx := context.Background()

	withProfile := testutil.CreatePatient(t, db, "complete")
	legacy := []*entity.User{
		{Username: "legacy1", Email: "legacy1@example.com", Password: "x", IsActive: true},
		{Username: "legacy2", Email: "legacy2@example.com", Password: "x", IsActive: true},
	}
	for _, u := range legacy {
		require.NoError(t, db.Create(u).Error)
	}

	legacyDoctor := &entity.User{Username: "legacydoc", Email: "legacydoc@example.com", Password: "x", IsActive: true}
	require.NoError(t, db.Create(legacyDoctor).Error)
	require.NoError(t, db.Create(&entity.Doctor{
		UserID:        legacyDoctor.ID,
		LicenseNumber: "LIC-legacydoc",
		AvailableFrom: entity.DefaultAvailableFrom,
		AvailableTo:   entity.DefaultAvailableTo,
		IsAvailable:   true,
	}).Error)

	created, err := repo.CreateMissing(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 3, created)

	doctorProfile, err := repo.FindByUserID(ctx, db, legacyDoctor.ID)
	require.NoError(t, err)
	require.NotNil(t, doctorProfile)
	assert.True(t, doctorProfile.IsDoctor)

	for _, u := range legacy {
		profile, err := repo.FindByUserID(ctx, db, u.ID)
		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.False(t, profile.IsDoctor)
	}

	existing, err := repo.FindByUserID(ctx, db, withProfile.ID)
	require.NoError(t, err)
	require.NotNil(t, existing)

	created, err = repo.CreateMissing(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 0, created, "second run is a no-op")
}
