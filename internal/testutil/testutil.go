// Package testutil builds throwaway SQLite databases and seed data for
// repository, usecase and handler tests.
package testutil

import (
	"fmt"
	"io"
	"testing"
	"time"

	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const Password = "s3cret-pass"

// NewDB opens a private in-memory database migrated from the entity models.
// A single connection keeps SQLite writers serialized.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func hash(t *testing.T) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hashed)
}

func newUser(t *testing.T, db *gorm.DB, username string, staff bool) *entity.User {
	t.Helper()
	user := &entity.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  hash(t),
		FirstName: "Test",
		LastName:  username,
		IsStaff:   staff,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreatePatient(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	user := newUser(t, db, username, false)
	profile := &entity.Profile{UserID: user.ID}
	require.NoError(t, db.Create(profile).Error)
	user.Profile = profile
	return user
}

func CreateAdmin(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	user := newUser(t, db, username, true)
	profile := &entity.Profile{UserID: user.ID}
	require.NoError(t, db.Create(profile).Error)
	user.Profile = profile
	return user
}

// CreateDoctor registers an available doctor working from..to (UTC, "HH:MM").
func CreateDoctor(t *testing.T, db *gorm.DB, username, from, to string) *entity.User {
	t.Helper()
	user := newUser(t, db, username, false)
	profile := &entity.Profile{UserID: user.ID, IsDoctor: true}
	require.NoError(t, db.Create(profile).Error)

	doctor := &entity.Doctor{
		UserID:          user.ID,
		Specialization:  "Cardiology",
		LicenseNumber:   "LIC-" + username,
		ExperienceYears: 5,
		ConsultationFee: decimal.NewFromInt(150),
		AvailableFrom:   from,
		AvailableTo:     to,
		IsAvailable:     true,
	}
	require.NoError(t, db.Create(doctor).Error)

	user.Profile = profile
	user.Doctor = doctor
	return user
}

// CreateAppointment inserts an appointment directly, bypassing the slot check.
func CreateAppointment(t *testing.T, db *gorm.DB, patientID, doctorID uuid.UUID, at time.Time, status entity.AppointmentStatus) *entity.Appointment {
	t.Helper()
	appointment := &entity.Appointment{
		PatientID:   patientID,
		DoctorID:    doctorID,
		ScheduledAt: at.UTC(),
		Type:        entity.AppointmentTypeConsultation,
		Status:      status,
	}
	require.NoError(t, db.Omit("Patient", "Doctor").Create(appointment).Error)
	return appointment
}

// NextDayAt returns tomorrow at hh:mm UTC.
func NextDayAt(hour, minute int) time.Time {
	y, m, d := time.Now().UTC().AddDate(0, 0, 1).Date()
	return time.Date(y, m, d, hour, minute, 0, 0, time.UTC)
}
