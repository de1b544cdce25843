package repository

import (
	"context"
	"testing"

	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchDoctors(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDoctorRepository()
	ctx := context.Background()

	morning := testutil.CreateDoctor(t, db, "drmorning", "08:00", "12:00")
	evening := testutil.CreateDoctor(t, db, "drevening", "14:00", "20:00")
	evening.Doctor.Specialization = "Dermatology"
	require.NoError(t, repo.Update(ctx, db, evening.Doctor))

	off := testutil.CreateDoctor(t, db, "droff", "08:00", "20:00")
	off.Doctor.IsAvailable = false
	require.NoError(t, repo.Update(ctx, db, off.Doctor))

	t.Run("only available", func(t *testing.T) {
		doctors, err := repo.Search(ctx, db, entity.DoctorFilter{OnlyAvailable: true})
		require.NoError(t, err)
		assert.Len(t, doctors, 2)

		doctors, err = repo.Search(ctx, db, entity.DoctorFilter{})
		require.NoError(t, err)
		assert.Len(t, doctors, 3)
	})

	t.Run("by specialization", func(t *testing.T) {
		doctors, err := repo.Search(ctx, db, entity.DoctorFilter{Specialization: "derma", OnlyAvailable: true})
		require.NoError(t, err)
		require.Len(t, doctors, 1)
		assert.Equal(t, evening.ID, doctors[0].UserID)
		require.NotNil(t, doctors[0].User)
	})

	t.Run("by name", func(t *testing.T) {
		doctors, err := repo.Search(ctx, db, entity.DoctorFilter{Name: "test drmorning"})
		require.NoError(t, err)
		require.Len(t, doctors, 1)
		assert.Equal(t, morning.ID, doctors[0].UserID)
	})

	t.Run("by time of day", func(t *testing.T) {
		doctors, err := repo.Search(ctx, db, entity.DoctorFilter{Time: "15:00", OnlyAvailable: true})
		require.NoError(t, err)
		require.Len(t, doctors, 1)
		assert.Equal(t, evening.ID, doctors[0].UserID)

		doctors, err = repo.Search(ctx, db, entity.DoctorFilter{Time: "12:00", OnlyAvailable: true})
		require.NoError(t, err)
		assert.Empty(t, doctors, "window end is exclusive")
	})

	t.Run("taken slot is excluded", func(t *testing.T) {
		patient := testutil.CreatePatient(t, db, "searcher")
		at := testutil.NextDayAt(9, 0)
		testutil.CreateAppointment(t, db, patient.ID, morning.ID, at, entity.AppointmentStatusConfirmed)

		doctors, err := repo.Search(ctx, db, entity.DoctorFilter{Date: &at, Time: "09:00", OnlyAvailable: true})
		require.NoError(t, err)
		assert.Empty(t, doctors)

		other := testutil.NextDayAt(10, 0)
		doctors, err = repo.Search(ctx, db, entity.DoctorFilter{Date: &other, Time: "10:00", OnlyAvailable: true})
		require.NoError(t, err)
		require.Len(t, doctors, 1)
		assert.Equal(t, morning.ID, doctors[0].UserID)
	})

	t.Run("malformed time", func(t *testing.T) {
		at := testutil.NextDayAt(9, 0)
		_, err := repo.Search(ctx, db, entity.DoctorFilter{Date: &at, Time: "9am"})
		assert.Error(t, err)

		_, err = repo.Search(ctx, db, entity.DoctorFilter{Time: "9:30"})
		assert.Error(t, err)
	})
}
