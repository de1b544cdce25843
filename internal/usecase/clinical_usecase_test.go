package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/repository"
	"online-health-consultation/internal/service"
	"online-health-consultation/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	failWrite bool
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string][]byte{}}
}

func (s *memoryStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	if s.failWrite {
		return errors.New("bucket unavailable")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *memoryStorage) PresignDownload(ctx context.Context, key string) (string, error) {
	return "https://files.test/" + key + "?signed=1", nil
}

func (s *memoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func uploadRequest(content []byte) *dto.UploadRecordRequest {
	return &dto.UploadRecordRequest{
		Title:      "Blood panel",
		RecordDate: "2024-03-01",
		RecordType: string(entity.RecordTypeLabReport),
		File:       bytes.NewReader(content),
		FileName:   "../../panel.pdf",
		FileSize:   int64(len(content)),
	}
}

func TestUploadMedicalRecord(t *testing.T) {
	db := testutil.NewDB(t)
	storage := newMemoryStorage()
	uc := NewMedicalRecordUsecase(db, testutil.NewLogger(), repository.NewMedicalRecordRepository(), storage, newAuditService(), 1<<20)
	ctx := context.Background()

	owner := testutil.CreatePatient(t, db, "uploader")
	other := testutil.CreatePatient(t, db, "snooper")

	record, err := uc.Upload(ctx, owner.ID, uploadRequest(samplePDF))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", record.ContentType)
	assert.Equal(t, "panel.pdf", record.FileName)
	assert.Contains(t, record.DownloadURL, "records/"+owner.ID.String()+"/")
	require.Len(t, storage.objects, 1)
	for key, data := range storage.objects {
		assert.True(t, strings.HasSuffix(key, ".pdf"))
		assert.Equal(t, samplePDF, data, "the full file is stored after sniffing")
	}

	_, err = uc.GetRecord(ctx, other.ID, record.ID)
	assert.ErrorIs(t, err, ErrMedicalRecordNotFound)

	list, err := uc.ListRecords(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	list, err = uc.ListRecords(ctx, other.ID)
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestUploadMedicalRecordRejections(t *testing.T) {
	db := testutil.NewDB(t)
	storage := newMemoryStorage()
	uc := NewMedicalRecordUsecase(db, testutil.NewLogger(), repository.NewMedicalRecordRepository(), storage, newAuditService(), 64)
	ctx := context.Background()
	owner := testutil.CreatePatient(t, db, "rejected")

	t.Run("too large", func(t *testing.T) {
		_, err := uc.Upload(ctx, owner.ID, uploadRequest(bytes.Repeat([]byte("a"), 65)))
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("executable", func(t *testing.T) {
		elf := append([]byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0}, make([]byte, 56)...)
		_, err := uc.Upload(ctx, owner.ID, uploadRequest(elf))
		assert.ErrorIs(t, err, ErrUnsupportedFileType)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := uc.Upload(ctx, owner.ID, uploadRequest(nil))
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("record type", func(t *testing.T) {
		req := uploadRequest(samplePDF[:40])
		req.RecordType = "selfie"
		_, err := uc.Upload(ctx, owner.ID, req)
		assert.ErrorIs(t, err, ErrInvalidRecordType)
	})

	t.Run("storage failure", func(t *testing.T) {
		storage.failWrite = true
		defer func() { storage.failWrite = false }()
		_, err := uc.Upload(ctx, owner.ID, uploadRequest(samplePDF[:40]))
		assert.Error(t, err)

		var count int64
		require.NoError(t, db.Model(&entity.MedicalRecord{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	assert.Empty(t, storage.objects)
}

func TestPrescriptions(t *testing.T) {
	db := testutil.NewDB(t)
	appointments := NewAppointmentUsecase(db, testutil.NewLogger(), repository.NewAppointmentRepository(), repository.NewDoctorRepository(), repository.NewUserRepository(), newAuditService(), service.NewNoopNotifier())
	uc := NewPrescriptionUsecase(db, testutil.NewLogger(), repository.NewPrescriptionRepository(), repository.NewAppointmentRepository(), repository.NewUserRepository(), newAuditService())
	ctx := context.Background()

	doctor := testutil.CreateDoctor(t, db, "drrx", "09:00", "17:00")
	otherDoctor := testutil.CreateDoctor(t, db, "drnotmine", "09:00", "17:00")
	patient := testutil.CreatePatient(t, db, "rxpatient")

	visit := testutil.CreateAppointment(t, db, patient.ID, doctor.ID, testutil.NextDayAt(9, 0), entity.AppointmentStatusConfirmed)
	req := &dto.CreatePrescriptionRequest{AppointmentID: visit.ID.String(), Diagnosis: "Migraine", Medications: "Ibuprofen 200mg"}

	_, err := uc.Create(ctx, doctor.ID, req)
	assert.ErrorIs(t, err, ErrAppointmentNotCompleted)

	_, err = appointments.Complete(ctx, doctor.ID, visit.ID)
	require.NoError(t, err)

	_, err = uc.Create(ctx, otherDoctor.ID, req)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	rx, err := uc.Create(ctx, doctor.ID, req)
	require.NoError(t, err)
	assert.Equal(t, patient.ID, rx.PatientID)
	require.NotNil(t, rx.AppointmentID)
	assert.True(t, rx.IsActive)

	direct, err := uc.Create(ctx, doctor.ID, &dto.CreatePrescriptionRequest{PatientID: patient.ID.String(), Diagnosis: "Flu", Medications: "Rest"})
	require.NoError(t, err)
	assert.Nil(t, direct.AppointmentID)

	_, err = uc.Create(ctx, doctor.ID, &dto.CreatePrescriptionRequest{PatientID: otherDoctor.ID.String(), Diagnosis: "x", Medications: "y"})
	assert.ErrorIs(t, err, ErrPatientNotFound, "doctors cannot be prescribed to as patients")

	mine, err := uc.ListPatientPrescriptions(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, mine.Total)

	_, err = uc.GetPatientPrescription(ctx, uuid.New(), rx.ID)
	assert.ErrorIs(t, err, ErrPrescriptionNotFound)

	assert.ErrorIs(t, uc.Deactivate(ctx, otherDoctor.ID, rx.ID), ErrPrescriptionNotFound)
	require.NoError(t, uc.Deactivate(ctx, doctor.ID, rx.ID))
	assert.ErrorIs(t, uc.Deactivate(ctx, doctor.ID, rx.ID), ErrPrescriptionInactive)

	written, err := uc.ListDoctorPrescriptions(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, written.Total)
}

func TestProfileBackfillAndUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewProfileUsecase(db, testutil.NewLogger(), repository.NewUserRepository(), repository.NewProfileRepository(), newAuditService())
	ctx := context.Background()

	admin := testutil.CreateAdmin(t, db, "backfiller")
	legacy := &entity.User{Username: "legacy", Email: "legacy@example.com", Password: "x", IsActive: true}
	require.NoError(t, db.Create(legacy).Error)
	testutil.CreatePatient(t, db, "taken")

	created, err := uc.BackfillMissingProfiles(ctx, &admin.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, created)

	created, err = uc.BackfillMissingProfiles(ctx, &admin.ID)
	require.NoError(t, err)
	assert.Zero(t, created)

	phone := "+14155550000"
	dob := "1985-07-01"
	updated, err := uc.UpdateProfile(ctx, legacy.ID, &dto.UpdateProfileRequest{PhoneNumber: &phone, DateOfBirth: &dob})
	require.NoError(t, err)
	require.NotNil(t, updated.Profile)
	assert.Equal(t, phone, updated.Profile.PhoneNumber)

	taken := "taken@example.com"
	_, err = uc.UpdateProfile(ctx, legacy.ID, &dto.UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)

	bad := "07/01/1985"
	_, err = uc.UpdateProfile(ctx, legacy.ID, &dto.UpdateProfileRequest{DateOfBirth: &bad})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)

	_, err = uc.GetProfile(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)

	doctor := testutil.CreateDoctor(t, db, "drlegacy", "09:00", "17:00")
	require.NoError(t, db.Where("user_id = ?", doctor.ID).Delete(&entity.Profile{}).Error)
	repaired, err := uc.GetProfile(ctx, doctor.ID)
	require.NoError(t, err)
	require.NotNil(t, repaired.Profile)
	assert.True(t, repaired.Profile.IsDoctor)
	assert.Equal(t, string(entity.RoleDoctor), repaired.Role)

	users, err := uc.ListUsers(ctx, "", "admin", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, users.Total)
	assert.Equal(t, 1, users.Page)
}

func TestDoctorDashboard(t *testing.T) {
	db := testutil.NewDB(t)
	uc := NewDashboardUsecase(db, testutil.NewLogger(), repository.NewUserRepository(), repository.NewDoctorRepository(),
		repository.NewAppointmentRepository(), repository.NewMedicalRecordRepository(), repository.NewPrescriptionRepository(), repository.NewQuestionRepository())
	ctx := context.Background()

	doctor := testutil.CreateDoctor(t, db, "drdash", "09:00", "17:00")
	patient := testutil.CreatePatient(t, db, "dashpatient")
	testutil.CreateAppointment(t, db, patient.ID, doctor.ID, testutil.NextDayAt(9, 0), entity.AppointmentStatusScheduled)
	testutil.CreateAppointment(t, db, patient.ID, doctor.ID, testutil.NextDayAt(10, 0), entity.AppointmentStatusCancelled)

	board, err := uc.DoctorDashboard(ctx, doctor.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, board.PendingCount)
	assert.Len(t, board.UpcomingAppointments, 1)

	_, err = uc.DoctorDashboard(ctx, patient.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	patientBoard, err := uc.PatientDashboard(ctx, patient.ID)
	require.NoError(t, err)
	assert.Len(t, patientBoard.UpcomingAppointments, 1)
}
