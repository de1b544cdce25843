package converter

import (
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
)

func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.MedicalRecordResponse{
		ID:          record.ID,
		Title:       record.Title,
		RecordDate:  record.RecordDate.Format(dateLayout),
		RecordType:  string(record.RecordType),
		FileName:    record.FileName,
		ContentType: record.ContentType,
		FileSize:    record.FileSize,
		Notes:       record.Notes,
		UploadedAt:  record.UploadedAt,
	}
}

func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = *MedicalRecordToResponse(&records[i])
	}
	return responses
}
