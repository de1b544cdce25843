package usecase

import (
	"context"
	"time"

	"online-health-consultation/internal/converter"
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	dashboardUpcomingLimit = 5
	dashboardRecordLimit   = 5
)

type DashboardUsecase interface {
	PatientDashboard(ctx context.Context, patientID uuid.UUID) (*dto.PatientDashboardResponse, error)
	DoctorDashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error)
}

type dashboardUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	doctorRepo       repository.DoctorRepository
	appointmentRepo  repository.AppointmentRepository
	recordRepo       repository.MedicalRecordRepository
	prescriptionRepo repository.PrescriptionRepository
	questionRepo     repository.QuestionRepository
	now              func() time.Time
}

func NewDashboardUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	recordRepo repository.MedicalRecordRepository,
	prescriptionRepo repository.PrescriptionRepository,
	questionRepo repository.QuestionRepository,
) DashboardUsecase {
	return &dashboardUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		doctorRepo:       doctorRepo,
		appointmentRepo:  appointmentRepo,
		recordRepo:       recordRepo,
		prescriptionRepo: prescriptionRepo,
		questionRepo:     questionRepo,
		now:              time.Now,
	}
}

func (u *dashboardUsecase) PatientDashboard(ctx context.Context, patientID uuid.UUID) (*dto.PatientDashboardResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	now := u.now().UTC()
	upcoming, _, err := u.appointmentRepo.List(ctx, u.db, entity.AppointmentFilter{
		PatientID:  &patientID,
		ActiveOnly: true,
		From:       &now,
		Limit:      dashboardUpcomingLimit,
	})
	if err != nil {
		u.log.Warnf("Failed to list upcoming appointments: %+v", err)
		return nil, err
	}

	records, err := u.recordRepo.ListByUser(ctx, u.db, patientID, dashboardRecordLimit)
	if err != nil {
		u.log.Warnf("Failed to list medical records: %+v", err)
		return nil, err
	}

	prescriptions, err := u.prescriptionRepo.ListByPatient(ctx, u.db, patientID, true)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, err
	}

	return &dto.PatientDashboardResponse{
		User:                 converter.UserToResponse(user),
		UpcomingAppointments: converter.AppointmentsToResponses(upcoming),
		RecentRecords:        converter.MedicalRecordsToResponses(records),
		ActivePrescriptions:  converter.PrescriptionsToResponses(prescriptions),
	}, nil
}

func (u *dashboardUsecase) DoctorDashboard(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorDashboardResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	now := u.now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	endOfDay := startOfDay.Add(24 * time.Hour)

	today, _, err := u.appointmentRepo.List(ctx, u.db, entity.AppointmentFilter{
		DoctorID: &doctorID,
		From:     &startOfDay,
		To:       &endOfDay,
	})
	if err != nil {
		u.log.Warnf("Failed to list today's appointments: %+v", err)
		return nil, err
	}

	upcoming, _, err := u.appointmentRepo.List(ctx, u.db, entity.AppointmentFilter{
		DoctorID:   &doctorID,
		ActiveOnly: true,
		From:       &endOfDay,
		Limit:      dashboardUpcomingLimit,
	})
	if err != nil {
		u.log.Warnf("Failed to list upcoming appointments: %+v", err)
		return nil, err
	}

	pending, err := u.appointmentRepo.CountByStatus(ctx, u.db, doctorID, entity.AppointmentStatusScheduled)
	if err != nil {
		u.log.Warnf("Failed to count pending appointments: %+v", err)
		return nil, err
	}

	answered := false
	_, unanswered, err := u.questionRepo.List(ctx, u.db, entity.QuestionFilter{
		Answered: &answered,
		Limit:    1,
	})
	if err != nil {
		u.log.Warnf("Failed to count unanswered questions: %+v", err)
		return nil, err
	}

	return &dto.DoctorDashboardResponse{
		Doctor:               converter.DoctorToResponse(doctor),
		TodayAppointments:    converter.AppointmentsToResponses(today),
		UpcomingAppointments: converter.AppointmentsToResponses(upcoming),
		PendingCount:         pending,
		UnansweredQuestions:  unanswered,
	}, nil
}
