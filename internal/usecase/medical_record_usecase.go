package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"online-health-consultation/internal/converter"
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/domain/repository"
	"online-health-consultation/internal/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMedicalRecordNotFound = errors.New("medical record not found")
	ErrInvalidRecordType     = errors.New("invalid record type")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds the upload limit")
	ErrEmptyFile             = errors.New("file is empty")
)

// allowedRecordTypes are matched against the sniffed content, not the
// client-supplied header.
var allowedRecordTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/tiff",
	"application/dicom",
	"text/plain",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

type MedicalRecordUsecase interface {
	Upload(ctx context.Context, userID uuid.UUID, req *dto.UploadRecordRequest) (*dto.MedicalRecordResponse, error)
	ListRecords(ctx context.Context, userID uuid.UUID) (*dto.MedicalRecordListResponse, error)
	GetRecord(ctx context.Context, userID, id uuid.UUID) (*dto.MedicalRecordResponse, error)
}

type medicalRecordUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	recordRepo     repository.MedicalRecordRepository
	storage        service.FileStorage
	auditService   service.AuditService
	maxUploadBytes int64
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	storage service.FileStorage,
	auditService service.AuditService,
	maxUploadBytes int64,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:             db,
		log:            log,
		recordRepo:     recordRepo,
		storage:        storage,
		auditService:   auditService,
		maxUploadBytes: maxUploadBytes,
	}
}

func (u *medicalRecordUsecase) Upload(ctx context.Context, userID uuid.UUID, req *dto.UploadRecordRequest) (*dto.MedicalRecordResponse, error) {
	recordType := entity.RecordType(req.RecordType)
	if !recordType.IsValid() {
		return nil, ErrInvalidRecordType
	}
	recordDate, err := time.Parse(dateLayout, req.RecordDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	if req.File == nil || req.FileSize == 0 {
		return nil, ErrEmptyFile
	}
	if u.maxUploadBytes > 0 && req.FileSize > u.maxUploadBytes {
		return nil, ErrFileTooLarge
	}

	mtype, err := mimetype.DetectReader(req.File)
	if err != nil {
		u.log.Warnf("Failed to detect file type: %+v", err)
		return nil, err
	}
	if !isAllowedRecordType(mtype) {
		return nil, ErrUnsupportedFileType
	}
	if _, err := req.File.Seek(0, io.SeekStart); err != nil {
		u.log.Warnf("Failed to rewind upload: %+v", err)
		return nil, err
	}

	record := &entity.MedicalRecord{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		RecordDate:  recordDate,
		RecordType:  recordType,
		FileName:    filepath.Base(req.FileName),
		ContentType: mtype.String(),
		FileSize:    req.FileSize,
		Notes:       req.Notes,
	}
	record.FileKey = fmt.Sprintf("records/%s/%s%s", userID, record.ID, mtype.Extension())

	if err := u.storage.Upload(ctx, record.FileKey, record.ContentType, req.File, req.FileSize); err != nil {
		u.log.Warnf("Failed to upload medical record: %+v", err)
		return nil, err
	}

	if err := u.persist(ctx, userID, record); err != nil {
		if delErr := u.storage.Delete(ctx, record.FileKey); delErr != nil {
			u.log.Warnf("Failed to remove orphaned upload %s: %+v", record.FileKey, delErr)
		}
		return nil, err
	}

	return u.withDownloadURL(ctx, record), nil
}

func (u *medicalRecordUsecase) persist(ctx context.Context, userID uuid.UUID, record *entity.MedicalRecord) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.recordRepo.Create(ctx, tx, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionRecordUpload, "medical_record", record.ID.String(), map[string]interface{}{
		"title":        record.Title,
		"record_type":  string(record.RecordType),
		"content_type": record.ContentType,
		"file_size":    record.FileSize,
	}); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}
	return nil
}

func (u *medicalRecordUsecase) ListRecords(ctx context.Context, userID uuid.UUID) (*dto.MedicalRecordListResponse, error) {
	records, err := u.recordRepo.ListByUser(ctx, u.db, userID, 0)
	if err != nil {
		u.log.Warnf("Failed to list medical records: %+v", err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

func (u *medicalRecordUsecase) GetRecord(ctx context.Context, userID, id uuid.UUID) (*dto.MedicalRecordResponse, error) {
	record, err := u.recordRepo.FindByIDForUser(ctx, u.db, id, userID)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}

	return u.withDownloadURL(ctx, record), nil
}

// withDownloadURL attaches a presigned link. A signing failure leaves the
// link empty rather than failing the read.
func (u *medicalRecordUsecase) withDownloadURL(ctx context.Context, record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	resp := converter.MedicalRecordToResponse(record)
	url, err := u.storage.PresignDownload(ctx, record.FileKey)
	if err != nil {
		u.log.Warnf("Failed to presign download for %s: %+v", record.FileKey, err)
		return resp
	}
	resp.DownloadURL = url
	return resp
}

func isAllowedRecordType(mtype *mimetype.MIME) bool {
	for _, allowed := range allowedRecordTypes {
		if mtype.Is(allowed) {
			return true
		}
	}
	return false
}
