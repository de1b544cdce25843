package usecase

import (
	"context"
	"testing"
	"time"

	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/repository"
	"online-health-consultation/internal/service"
	"online-health-consultation/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAppointmentUsecase(db *gorm.DB) *appointmentUsecase {
	return NewAppointmentUsecase(
		db,
		testutil.NewLogger(),
		repository.NewAppointmentRepository(),
		repository.NewDoctorRepository(),
		repository.NewUserRepository(),
		newAuditService(),
		service.NewNoopNotifier(),
	).(*appointmentUsecase)
}

func bookRequest(doctorID uuid.UUID, at time.Time) *dto.BookAppointmentRequest {
	return &dto.BookAppointmentRequest{
		DoctorID:    doctorID.String(),
		ScheduledAt: at,
		Type:        string(entity.AppointmentTypeConsultation),
		Symptoms:    "headache",
	}
}

func TestBookAppointment(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newAppointmentUsecase(db)
	ctx := context.Background()

	doctor := testutil.CreateDoctor(t, db, "drbook", "09:00", "17:00")
	alice := testutil.CreatePatient(t, db, "alice")
	bob := testutil.CreatePatient(t, db, "bob")
	at := testutil.NextDayAt(10, 0)

	booked, err := uc.Book(ctx, alice.ID, bookRequest(doctor.ID, at.Add(25*time.Second)))
	require.NoError(t, err)
	assert.Equal(t, "scheduled", booked.Status)
	assert.True(t, booked.ScheduledAt.Equal(at), "seconds are truncated")
	require.NotNil(t, booked.Doctor)

	_, err = uc.Book(ctx, bob.ID, bookRequest(doctor.ID, at))
	assert.ErrorIs(t, err, ErrSlotTaken)

	next, err := uc.Book(ctx, bob.ID, bookRequest(doctor.ID, at.Add(30*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, bob.ID, next.PatientID)

	var audits int64
	require.NoError(t, db.Model(&entity.AuditLog{}).Where("action = ?", entity.AuditActionAppointmentBook).Count(&audits).Error)
	assert.EqualValues(t, 2, audits)
}

func TestBookAppointmentRejections(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newAppointmentUsecase(db)
	ctx := context.Background()

	doctor := testutil.CreateDoctor(t, db, "drreject", "09:00", "17:00")
	patient := testutil.CreatePatient(t, db, "carol")

	tests := []struct {
		name string
		req  *dto.BookAppointmentRequest
		err  error
	}{
		{"in the past", bookRequest(doctor.ID, time.Now().Add(-time.Hour)), ErrAppointmentInPast},
		{"before hours", bookRequest(doctor.ID, testutil.NextDayAt(8, 59)), ErrOutsideAvailability},
		{"at closing time", bookRequest(doctor.ID, testutil.NextDayAt(17, 0)), ErrOutsideAvailability},
		{"unknown doctor", bookRequest(uuid.New(), testutil.NextDayAt(10, 0)), ErrDoctorNotFound},
		{"patient is not a doctor", bookRequest(patient.ID, testutil.NextDayAt(10, 0)), ErrDoctorNotFound},
		{"malformed doctor id", &dto.BookAppointmentRequest{DoctorID: "nope", ScheduledAt: testutil.NextDayAt(10, 0), Type: "consultation"}, ErrDoctorNotFound},
		{"bad type", &dto.BookAppointmentRequest{DoctorID: doctor.ID.String(), ScheduledAt: testutil.NextDayAt(10, 0), Type: "surgery"}, ErrInvalidAppointmentType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Book(ctx, patient.ID, tt.req)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("doctor not accepting", func(t *testing.T) {
		require.NoError(t, db.Model(&entity.Doctor{}).Where("user_id = ?", doctor.ID).Update("is_available", false).Error)
		_, err := uc.Book(ctx, patient.ID, bookRequest(doctor.ID, testutil.NextDayAt(10, 0)))
		assert.ErrorIs(t, err, ErrDoctorUnavailable)
	})
}

func TestBookAppointmentUsesClock(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newAppointmentUsecase(db)

	doctor := testutil.CreateDoctor(t, db, "drclock", "09:00", "17:00")
	patient := testutil.CreatePatient(t, db, "dave")
	at := testutil.NextDayAt(10, 0)

	uc.now = func() time.Time { return at.Add(time.Minute) }
	_, err := uc.Book(context.Background(), patient.ID, bookRequest(doctor.ID, at))
	assert.ErrorIs(t, err, ErrAppointmentInPast)
}

func TestAppointmentLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newAppointmentUsecase(db)
	ctx := context.Background()

	doctor := testutil.CreateDoctor(t, db, "drlife", "09:00", "17:00")
	otherDoctor := testutil.CreateDoctor(t, db, "drother", "09:00", "17:00")
	patient := testutil.CreatePatient(t, db, "erin")
	stranger := testutil.CreatePatient(t, db, "frank")
	admin := testutil.CreateAdmin(t, db, "root")

	booked, err := uc.Book(ctx, patient.ID, bookRequest(doctor.ID, testutil.NextDayAt(11, 0)))
	require.NoError(t, err)

	_, err = uc.Cancel(ctx, stranger.ID, booked.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound, "other patients cannot see the appointment")

	_, err = uc.Confirm(ctx, otherDoctor.ID, booked.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	_, err = uc.Complete(ctx, doctor.ID, booked.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "scheduled cannot complete")

	confirmed, err := uc.Confirm(ctx, doctor.ID, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Status)

	completed, err := uc.Complete(ctx, doctor.ID, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)
	assert.NotNil(t, completed.CompletedAt)

	_, err = uc.Cancel(ctx, patient.ID, booked.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "completed is terminal")

	_, err = uc.UpdateStatus(ctx, admin.ID, booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "scheduled"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = uc.UpdateStatus(ctx, admin.ID, booked.ID, &dto.UpdateAppointmentStatusRequest{Status: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = uc.UpdateStatus(ctx, admin.ID, uuid.New(), &dto.UpdateAppointmentStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCancelFreesSlot(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newAppointmentUsecase(db)
	ctx := context.Background()

	doctor := testutil.CreateDoctor(t, db, "drfree", "09:00", "17:00")
	first := testutil.CreatePatient(t, db, "gina")
	second := testutil.CreatePatient(t, db, "hank")
	at := testutil.NextDayAt(14, 0)

	booked, err := uc.Book(ctx, first.ID, bookRequest(doctor.ID, at))
	require.NoError(t, err)

	cancelled, err := uc.Cancel(ctx, first.ID, booked.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = uc.Cancel(ctx, first.ID, booked.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = uc.Book(ctx, second.ID, bookRequest(doctor.ID, at))
	assert.NoError(t, err)
}

func TestListAppointments(t *testing.T) {
	db := testutil.NewDB(t)
	uc := newAppointmentUsecase(db)
	ctx := context.Background()

	doctor := testutil.CreateDoctor(t, db, "drlist", "09:00", "17:00")
	patient := testutil.CreatePatient(t, db, "ivy")
	other := testutil.CreatePatient(t, db, "jack")

	tomorrow := testutil.NextDayAt(9, 0)
	testutil.CreateAppointment(t, db, patient.ID, doctor.ID, tomorrow, entity.AppointmentStatusScheduled)
	testutil.CreateAppointment(t, db, patient.ID, doctor.ID, tomorrow.Add(time.Hour), entity.AppointmentStatusCancelled)
	testutil.CreateAppointment(t, db, other.ID, doctor.ID, tomorrow.Add(24*time.Hour), entity.AppointmentStatusConfirmed)

	mine, err := uc.ListPatientAppointments(ctx, patient.ID, &dto.AppointmentFilterRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, mine.Total)

	scheduled, err := uc.ListPatientAppointments(ctx, patient.ID, &dto.AppointmentFilterRequest{Status: "scheduled"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, scheduled.Total)

	day, err := uc.ListDoctorAppointments(ctx, doctor.ID, &dto.AppointmentFilterRequest{Date: tomorrow.Format("2006-01-02")})
	require.NoError(t, err)
	assert.EqualValues(t, 2, day.Total)

	all, err := uc.ListAll(ctx, &dto.AppointmentFilterRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)
	assert.Len(t, all.Appointments, 2)
	assert.Equal(t, 1, all.Page)

	_, err = uc.ListAll(ctx, &dto.AppointmentFilterRequest{Status: "pending"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = uc.ListAll(ctx, &dto.AppointmentFilterRequest{Date: "tomorrow"})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
