package converter

import (
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
)

func PrescriptionToResponse(p *entity.Prescription) *dto.PrescriptionResponse {
	if p == nil {
		return nil
	}

	response := &dto.PrescriptionResponse{
		ID:            p.ID,
		PatientID:     p.PatientID,
		DoctorID:      p.DoctorID,
		Doctor:        DoctorToResponse(p.Doctor),
		AppointmentID: p.AppointmentID,
		Diagnosis:     p.Diagnosis,
		Medications:   p.Medications,
		Instructions:  p.Instructions,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
	if p.Patient != nil {
		response.PatientName = p.Patient.FullName()
	}
	return response
}

func PrescriptionsToResponses(items []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(items))
	for i := range items {
		responses[i] = *PrescriptionToResponse(&items[i])
	}
	return responses
}
