package usecase

import (
	"context"
	"errors"

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
	ErrEmergencyNotFound        = errors.New("emergency contact not found")
	ErrEmergencyAlreadyResolved = errors.New("emergency contact is already resolved")
	ErrInvalidEmergencyType     = errors.New("invalid emergency type")
)

type EmergencyUsecase interface {
	Submit(ctx context.Context, req *dto.EmergencyContactRequest) (*dto.EmergencyContactResponse, error)
	List(ctx context.Context, resolved *bool, page, limit int) (*dto.EmergencyContactListResponse, error)
	Resolve(ctx context.Context, actorID, id uuid.UUID) (*dto.EmergencyContactResponse, error)
}

type emergencyUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	contactRepo  repository.EmergencyContactRepository
	auditService service.AuditService
	notifier     service.Notifier
}

func NewEmergencyUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	contactRepo repository.EmergencyContactRepository,
	auditService service.AuditService,
	notifier service.Notifier,
) EmergencyUsecase {
	return &emergencyUsecase{
		db:           db,
		log:          log,
		contactRepo:  contactRepo,
		auditService: auditService,
		notifier:     notifier,
	}
}

// Submit stores the request first; the on-call alert is best effort and never
// fails the intake.
func (u *emergencyUsecase) Submit(ctx context.Context, req *dto.EmergencyContactRequest) (*dto.EmergencyContactResponse, error) {
	emergencyType := entity.EmergencyType(req.EmergencyType)
	if !emergencyType.IsValid() {
		return nil, ErrInvalidEmergencyType
	}

	contact := &entity.EmergencyContact{
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Location:      req.Location,
		EmergencyType: emergencyType,
		Description:   req.Description,
	}
	if err := u.contactRepo.Create(ctx, u.db, contact); err != nil {
		u.log.Warnf("Failed to create emergency contact: %+v", err)
		return nil, err
	}
	metrics.EmergencyIntakes.WithLabelValues(string(emergencyType)).Inc()

	u.log.WithFields(logrus.Fields{
		"emergency_id": contact.ID,
		"type":         contact.EmergencyType,
	}).Info("Emergency contact received")

	go func(ctx context.Context) {
		if err := u.notifier.EmergencyReceived(ctx, contact); err != nil {
			u.log.Warnf("Failed to send emergency alert: %+v", err)
		}
	}(context.WithoutCancel(ctx))

	return converter.EmergencyContactToResponse(contact), nil
}

func (u *emergencyUsecase) List(ctx context.Context, resolved *bool, page, limit int) (*dto.EmergencyContactListResponse, error) {
	page, limit, offset := pageWindow(page, limit)

	contacts, total, err := u.contactRepo.List(ctx, u.db, entity.EmergencyFilter{
		Resolved: resolved,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		u.log.Warnf("Failed to list emergency contacts: %+v", err)
		return nil, err
	}

	return &dto.EmergencyContactListResponse{
		Contacts: converter.EmergencyContactsToResponses(contacts),
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

func (u *emergencyUsecase) Resolve(ctx context.Context, actorID, id uuid.UUID) (*dto.EmergencyContactResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.contactRepo.Resolve(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to resolve emergency contact: %+v", err)
		return nil, err
	}

	contact, err := u.contactRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find emergency contact: %+v", err)
		return nil, err
	}
	if contact == nil {
		return nil, ErrEmergencyNotFound
	}
	if affected == 0 {
		return nil, ErrEmergencyAlreadyResolved
	}

	if err := u.auditService.Record(ctx, tx, &actorID, entity.AuditActionEmergencyResolve, "emergency_contact", id.String(), nil); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.EmergencyContactToResponse(contact), nil
}
