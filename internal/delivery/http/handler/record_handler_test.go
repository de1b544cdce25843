package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
	"online-health-consultation/internal/usecase"
	"online-health-consultation/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordUsecase struct {
	usecase.MedicalRecordUsecase
	uploadErr error
	content   []byte
	fileName  string
}

func (f *fakeRecordUsecase) Upload(ctx context.Context, userID uuid.UUID, req *dto.UploadRecordRequest) (*dto.MedicalRecordResponse, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	data, err := io.ReadAll(req.File)
	if err != nil {
		return nil, err
	}
	f.content = data
	f.fileName = req.FileName
	return &dto.MedicalRecordResponse{ID: uuid.New(), Title: req.Title, FileSize: req.FileSize}, nil
}

func multipartUpload(t *testing.T, fields map[string]string, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		part, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/records/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

var recordFields = map[string]string{
	"title":       "X-ray",
	"record_date": "2024-05-02",
	"record_type": "imaging",
}

func TestUploadRecordHandler(t *testing.T) {
	uc := &fakeRecordUsecase{}
	h := NewRecordHandler(uc, validator.NewValidator("US"), 1<<20)
	handler := asUser(uuid.New(), entity.RolePatient, http.HandlerFunc(h.UploadRecord))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartUpload(t, recordFields, "scan.png", []byte("\x89PNG\r\n\x1a\nrest")))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "scan.png", uc.fileName)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\nrest"), uc.content)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartUpload(t, recordFields, "", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "file is required")

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, multipartUpload(t, map[string]string{"title": "X-ray", "record_type": "imaging"}, "scan.png", []byte("x")))
	assert.Equal(t, http.StatusBadRequest, rec.Code, "record_date is required")
}

func TestUploadRecordHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unsupported", usecase.ErrUnsupportedFileType, http.StatusUnsupportedMediaType},
		{"too large", usecase.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
		{"empty", usecase.ErrEmptyFile, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRecordHandler(&fakeRecordUsecase{uploadErr: tt.err}, validator.NewValidator("US"), 1<<20)
			rec := httptest.NewRecorder()
			asUser(uuid.New(), entity.RolePatient, http.HandlerFunc(h.UploadRecord)).
				ServeHTTP(rec, multipartUpload(t, recordFields, "a.bin", []byte("data")))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestUploadRecordHandlerBodyLimit(t *testing.T) {
	h := NewRecordHandler(&fakeRecordUsecase{}, validator.NewValidator("US"), 16)
	big := bytes.Repeat([]byte("a"), multipartSlack+64)

	rec := httptest.NewRecorder()
	asUser(uuid.New(), entity.RolePatient, http.HandlerFunc(h.UploadRecord)).
		ServeHTTP(rec, multipartUpload(t, recordFields, "big.pdf", big))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
