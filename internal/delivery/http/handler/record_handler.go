package handler

import (
	"errors"
	"net/http"

	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/delivery/http/middleware"
	"online-health-consultation/internal/usecase"
	"online-health-consultation/pkg/response"
	"online-health-consultation/pkg/validator"
)

// multipart overhead allowed on top of the file itself
const multipartSlack = 1 << 20

type RecordHandler struct {
	recordUsecase  usecase.MedicalRecordUsecase
	validator      *validator.CustomValidator
	maxUploadBytes int64
}

func NewRecordHandler(recordUsecase usecase.MedicalRecordUsecase, validator *validator.CustomValidator, maxUploadBytes int64) *RecordHandler {
	return &RecordHandler{
		recordUsecase:  recordUsecase,
		validator:      validator,
		maxUploadBytes: maxUploadBytes,
	}
}

// UploadRecord
// @Summary Upload a medical record
// @Tags Records
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param record_date formData string true "YYYY-MM-DD"
// @Param record_type formData string true "Record type"
// @Param notes formData string false "Notes"
// @Param file formData file true "Document"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 413 {object} response.Response
// @Failure 415 {object} response.Response
// @Router /records/upload [post]
func (h *RecordHandler) UploadRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartSlack)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.PayloadTooLarge(w, "File is too large")
			return
		}
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := dto.UploadRecordRequest{
		Title:      r.FormValue("title"),
		RecordDate: r.FormValue("record_date"),
		RecordType: r.FormValue("record_type"),
		Notes:      r.FormValue("notes"),
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.ValidationError(w, map[string]string{"file": "is required"})
		return
	}
	defer file.Close()

	req.File = file
	req.FileName = header.Filename
	req.FileSize = header.Size
	req.ContentType = header.Header.Get("Content-Type")

	record, err := h.recordUsecase.Upload(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidRecordType:
			response.ValidationError(w, map[string]string{"record_type": "is not a valid record type"})
		case usecase.ErrInvalidDateFormat:
			response.ValidationError(w, map[string]string{"record_date": "must be a date in YYYY-MM-DD format"})
		case usecase.ErrEmptyFile:
			response.ValidationError(w, map[string]string{"file": "must not be empty"})
		case usecase.ErrFileTooLarge:
			response.PayloadTooLarge(w, "File is too large")
		case usecase.ErrUnsupportedFileType:
			response.UnsupportedMediaType(w, "Unsupported file type")
		default:
			response.InternalServerError(w, "Failed to upload medical record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medical record uploaded successfully", record)
}

// GetMyRecords
// @Summary List own medical records
// @Tags Records
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /records [get]
func (h *RecordHandler) GetMyRecords(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	records, err := h.recordUsecase.ListRecords(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get medical records")
		return
	}

	response.Success(w, http.StatusOK, "Medical records retrieved successfully", records)
}

// GetRecord
// @Summary Get one medical record with a download link
// @Tags Records
// @Security BearerAuth
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /records/{id} [get]
func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	recordID, ok := pathUUID(w, r, "id", "record")
	if !ok {
		return
	}

	record, err := h.recordUsecase.GetRecord(r.Context(), userID, recordID)
	if err != nil {
		switch err {
		case usecase.ErrMedicalRecordNotFound:
			response.NotFound(w, "Medical record not found")
		default:
			response.InternalServerError(w, "Failed to get medical record")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medical record retrieved successfully", record)
}
