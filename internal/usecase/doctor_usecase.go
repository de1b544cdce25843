package usecase

import (
	"context"
	"errors"
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

var (
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrInvalidAvailability = errors.New("available_from must be before available_to")
	ErrInvalidTimeFormat   = errors.New("time must be HH:MM")
)

type DoctorUsecase interface {
	SearchDoctors(ctx context.Context, req *dto.SearchDoctorsRequest) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error)
	UpdateAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error)
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		auditService: auditService,
	}
}

// SearchDoctors lists available doctors. With both date and time only doctors
// whose window contains the time and whose slot is still free are returned.
func (u *doctorUsecase) SearchDoctors(ctx context.Context, req *dto.SearchDoctorsRequest) (*dto.DoctorListResponse, error) {
	filter := entity.DoctorFilter{
		Specialization: strings.TrimSpace(req.Specialization),
		Name:           strings.TrimSpace(req.Name),
		Time:           req.Time,
		OnlyAvailable:  true,
	}
	if req.Time != "" {
		if _, err := entity.ParseClock(req.Time); err != nil {
			return nil, ErrInvalidTimeFormat
		}
	}
	if req.Date != "" {
		date, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		filter.Date = &date
	}

	doctors, err := u.doctorRepo.Search(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to search doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil || doctor.User == nil || !doctor.User.IsActive {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.AvailabilityToResponse(doctor), nil
}

func (u *doctorUsecase) UpdateAvailability(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	from, err := entity.ParseClock(req.AvailableFrom)
	if err != nil {
		return nil, ErrInvalidAvailability
	}
	to, err := entity.ParseClock(req.AvailableTo)
	if err != nil {
		return nil, ErrInvalidAvailability
	}
	if from >= to {
		return nil, ErrInvalidAvailability
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByUserID(ctx, tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	before := converter.AvailabilityToResponse(doctor)
	doctor.AvailableFrom = entity.FormatClock(from)
	doctor.AvailableTo = entity.FormatClock(to)
	doctor.IsAvailable = *req.IsAvailable

	if err := u.doctorRepo.Update(ctx, tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor availability: %+v", err)
		return nil, err
	}

	after := converter.AvailabilityToResponse(doctor)
	if err := u.auditService.LogUpdate(ctx, tx, &doctorID, entity.AuditActionAvailabilityUpdate, "doctor", doctorID.String(), before, after); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return after, nil
}
