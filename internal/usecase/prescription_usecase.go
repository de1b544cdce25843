package usecase

import (
	"context"
	"errors"

	"online-health-consultation/internal/converter"
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/domain/repository"
	"online-health-consultation/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPrescriptionNotFound    = errors.New("prescription not found")
	ErrPrescriptionInactive    = errors.New("prescription is already inactive")
	ErrAppointmentNotCompleted = errors.New("prescriptions can only be written for completed appointments")
	ErrPatientNotFound         = errors.New("patient not found")
)

type PrescriptionUsecase interface {
	Create(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	ListPatientPrescriptions(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error)
	GetPatientPrescription(ctx context.Context, patientID, id uuid.UUID) (*dto.PrescriptionResponse, error)
	ListDoctorPrescriptions(ctx context.Context, doctorID uuid.UUID) (*dto.PrescriptionListResponse, error)
	Deactivate(ctx context.Context, doctorID, id uuid.UUID) error
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	appointmentRepo  repository.AppointmentRepository
	userRepo         repository.UserRepository
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		appointmentRepo:  appointmentRepo,
		userRepo:         userRepo,
		auditService:     auditService,
	}
}

// Create writes a prescription for the calling doctor. With an appointment the
// patient comes from that appointment, which must be the doctor's own and
// completed; otherwise patient_id must name a non-doctor account.
func (u *prescriptionUsecase) Create(ctx context.Context, doctorID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	prescription := &entity.Prescription{
		DoctorID:     doctorID,
		Diagnosis:    req.Diagnosis,
		Medications:  req.Medications,
		Instructions: req.Instructions,
		IsActive:     true,
	}

	if req.AppointmentID != "" {
		appointmentID, err := uuid.Parse(req.AppointmentID)
		if err != nil {
			return nil, ErrAppointmentNotFound
		}
		appointment, err := u.appointmentRepo.FindByIDScoped(ctx, tx, appointmentID, entity.AppointmentScope{DoctorID: &doctorID})
		if err != nil {
			u.log.Warnf("Failed to find appointment: %+v", err)
			return nil, err
		}
		if appointment == nil {
			return nil, ErrAppointmentNotFound
		}
		if appointment.Status != entity.AppointmentStatusCompleted {
			return nil, ErrAppointmentNotCompleted
		}
		prescription.PatientID = appointment.PatientID
		prescription.AppointmentID = &appointment.ID
	} else {
		patientID, err := uuid.Parse(req.PatientID)
		if err != nil {
			return nil, ErrPatientNotFound
		}
		patient, err := u.userRepo.FindByID(ctx, tx, patientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return nil, err
		}
		if patient == nil || patient.Role() != entity.RolePatient {
			return nil, ErrPatientNotFound
		}
		prescription.PatientID = patient.ID
	}

	if err := u.prescriptionRepo.Create(ctx, tx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionPrescriptionCreate, "prescription", prescription.ID.String(), map[string]interface{}{
		"patient_id": prescription.PatientID.String(),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) ListPatientPrescriptions(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	items, err := u.prescriptionRepo.ListByPatient(ctx, u.db, patientID, false)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(items),
		Total:         len(items),
	}, nil
}

func (u *prescriptionUsecase) GetPatientPrescription(ctx context.Context, patientID, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByIDForPatient(ctx, u.db, id, patientID)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) ListDoctorPrescriptions(ctx context.Context, doctorID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	items, err := u.prescriptionRepo.ListByDoctor(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(items),
		Total:         len(items),
	}, nil
}

func (u *prescriptionUsecase) Deactivate(ctx context.Context, doctorID, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.prescriptionRepo.Deactivate(ctx, tx, id, doctorID)
	if err != nil {
		u.log.Warnf("Failed to deactivate prescription: %+v", err)
		return err
	}
	if affected == 0 {
		existing, err := u.prescriptionRepo.FindByIDForDoctor(ctx, tx, id, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find prescription: %+v", err)
			return err
		}
		if existing == nil {
			return ErrPrescriptionNotFound
		}
		return ErrPrescriptionInactive
	}

	if err := u.auditService.Record(ctx, tx, &doctorID, entity.AuditActionPrescriptionDisable, "prescription", id.String(), nil); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}
