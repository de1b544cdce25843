package usecase

import (
	"context"
	"errors"
	"time"

	"online-health-consultation/internal/converter"
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/domain/repository"
	"online-health-consultation/internal/service"
	"online-health-consultation/pkg/metrics"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrInvalidTransition      = errors.New("appointment cannot move to the requested status")
	ErrSlotTaken              = errors.New("this time slot is already booked")
	ErrDoctorUnavailable      = errors.New("doctor is not accepting appointments")
	ErrOutsideAvailability    = errors.New("requested time is outside the doctor's availability")
	ErrAppointmentInPast      = errors.New("appointment must be scheduled in the future")
	ErrInvalidStatus          = errors.New("invalid appointment status")
	ErrInvalidAppointmentType = errors.New("invalid appointment type")
)

type AppointmentUsecase interface {
	Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	ListPatientAppointments(ctx context.Context, patientID uuid.UUID, req *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error)
	Cancel(ctx context.Context, patientID, id uuid.UUID) (*dto.AppointmentResponse, error)

	ListDoctorAppointments(ctx context.Context, doctorID uuid.UUID, req *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error)
	Confirm(ctx context.Context, doctorID, id uuid.UUID) (*dto.AppointmentResponse, error)
	Complete(ctx context.Context, doctorID, id uuid.UUID) (*dto.AppointmentResponse, error)
	MarkNoShow(ctx context.Context, doctorID, id uuid.UUID) (*dto.AppointmentResponse, error)

	ListAll(ctx context.Context, req *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error)
	UpdateStatus(ctx context.Context, actorID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	userRepo        repository.UserRepository
	auditService    service.AuditService
	notifier        service.Notifier
	now             func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	notifier service.Notifier,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		userRepo:        userRepo,
		auditService:    auditService,
		notifier:        notifier,
		now:             time.Now,
	}
}

// Book reserves a slot for the patient. The slot is claimed by a single
// insert-if-absent write, so concurrent requests for it admit one booking.
func (u *appointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	apptType := entity.AppointmentType(req.Type)
	if !apptType.IsValid() {
		return nil, ErrInvalidAppointmentType
	}

	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, ErrDoctorNotFound
	}

	scheduledAt := req.ScheduledAt.UTC().Truncate(time.Minute)
	if !scheduledAt.After(u.now().UTC()) {
		return nil, ErrAppointmentInPast
	}

	doctor, err := u.doctorRepo.FindByUserID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil || doctor.User == nil || !doctor.User.IsActive {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsAvailable {
		return nil, ErrDoctorUnavailable
	}
	if !doctor.Covers(scheduledAt) {
		return nil, ErrOutsideAvailability
	}

	appointment := &entity.Appointment{
		PatientID:   patientID,
		DoctorID:    doctorID,
		ScheduledAt: scheduledAt,
		Type:        apptType,
		Status:      entity.AppointmentStatusScheduled,
		Symptoms:    req.Symptoms,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	created, err := u.appointmentRepo.CreateIfSlotFree(ctx, tx, appointment)
	if err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}
	if !created {
		metrics.SlotConflicts.Inc()
		return nil, ErrSlotTaken
	}

	if err := u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(), map[string]interface{}{
		"doctor_id":    doctorID.String(),
		"scheduled_at": scheduledAt.Format(time.RFC3339),
		"type":         string(apptType),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	metrics.AppointmentsBooked.Inc()

	appointment.Doctor = doctor
	u.notifyBooked(ctx, appointment, doctor)

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) notifyBooked(ctx context.Context, appointment *entity.Appointment, doctor *entity.Doctor) {
	patient, err := u.userRepo.FindByID(ctx, u.db, appointment.PatientID)
	if err != nil || patient == nil {
		u.log.Warnf("Failed to load patient for booking notification: %+v", err)
		return
	}
	appointment.Patient = patient

	go func(ctx context.Context) {
		if err := u.notifier.AppointmentBooked(ctx, appointment, patient, doctor); err != nil {
			u.log.Warnf("Failed to send booking notification: %+v", err)
		}
	}(context.WithoutCancel(ctx))
}

func (u *appointmentUsecase) ListPatientAppointments(ctx context.Context, patientID uuid.UUID, req *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error) {
	filter, err := buildAppointmentFilter(req)
	if err != nil {
		return nil, err
	}
	filter.PatientID = &patientID
	return u.list(ctx, filter)
}

func (u *appointmentUsecase) Cancel(ctx context.Context, patientID, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, patientID, id, entity.AppointmentScope{PatientID: &patientID}, entity.AppointmentStatusCancelled)
}

// ListDoctorAppointments also serves the consultation view; a date narrows the
// result to that UTC day.
func (u *appointmentUsecase) ListDoctorAppointments(ctx context.Context, doctorID uuid.UUID, req *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error) {
	filter, err := buildAppointmentFilter(req)
	if err != nil {
		return nil, err
	}
	filter.DoctorID = &doctorID
	return u.list(ctx, filter)
}

func (u *appointmentUsecase) Confirm(ctx context.Context, doctorID, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, doctorID, id, entity.AppointmentScope{DoctorID: &doctorID}, entity.AppointmentStatusConfirmed)
}

func (u *appointmentUsecase) Complete(ctx context.Context, doctorID, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, doctorID, id, entity.AppointmentScope{DoctorID: &doctorID}, entity.AppointmentStatusCompleted)
}

func (u *appointmentUsecase) MarkNoShow(ctx context.Context, doctorID, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return u.transition(ctx, doctorID, id, entity.AppointmentScope{DoctorID: &doctorID}, entity.AppointmentStatusNoShow)
}

func (u *appointmentUsecase) ListAll(ctx context.Context, req *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error) {
	filter, err := buildAppointmentFilter(req)
	if err != nil {
		return nil, err
	}
	return u.list(ctx, filter)
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, actorID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	to, err := entity.ParseAppointmentStatus(req.Status)
	if err != nil {
		return nil, ErrInvalidStatus
	}
	return u.transition(ctx, actorID, id, entity.AppointmentScope{}, to)
}

// transition applies one FSM step as a conditional update. When nothing was
// updated the row is looked up within the same scope to tell 404 from 409.
func (u *appointmentUsecase) transition(ctx context.Context, actorID, id uuid.UUID, scope entity.AppointmentScope, to entity.AppointmentStatus) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.TransitionStatus(ctx, tx, id, scope, to)
	if err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByIDScoped(ctx, tx, id, scope)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if affected == 0 {
		return nil, ErrInvalidTransition
	}

	if err := u.auditService.Record(ctx, tx, &actorID, entity.AuditActionAppointmentStatus, "appointment", id.String(), map[string]interface{}{
		"status": string(to),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}
	metrics.AppointmentTransitions.WithLabelValues(string(to)).Inc()

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) list(ctx context.Context, filter entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	appointments, total, err := u.appointmentRepo.List(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	resp := &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
		Limit:        filter.Limit,
	}
	if filter.Limit > 0 {
		resp.Page = filter.Offset/filter.Limit + 1
	}
	return resp, nil
}

func buildAppointmentFilter(req *dto.AppointmentFilterRequest) (entity.AppointmentFilter, error) {
	var filter entity.AppointmentFilter
	if req == nil {
		return filter, nil
	}

	if req.Status != "" {
		status, err := entity.ParseAppointmentStatus(req.Status)
		if err != nil {
			return filter, ErrInvalidStatus
		}
		filter.Status = status
	}

	if req.Date != "" {
		day, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			return filter, ErrInvalidDateFormat
		}
		next := day.Add(24 * time.Hour)
		filter.From = &day
		filter.To = &next
	}

	_, filter.Limit, filter.Offset = pageWindow(req.Page, req.Limit)
	return filter, nil
}
