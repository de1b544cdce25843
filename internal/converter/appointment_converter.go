package converter

import (
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appt *entity.Appointment) *dto.AppointmentResponse {
	if appt == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:          appt.ID,
		PatientID:   appt.PatientID,
		DoctorID:    appt.DoctorID,
		Doctor:      DoctorToResponse(appt.Doctor),
		ScheduledAt: appt.ScheduledAt,
		Type:        string(appt.Type),
		Status:      string(appt.Status),
		Symptoms:    appt.Symptoms,
		Notes:       appt.Notes,
		CancelledAt: appt.CancelledAt,
		CompletedAt: appt.CompletedAt,
		CreatedAt:   appt.CreatedAt,
		UpdatedAt:   appt.UpdatedAt,
	}
	if appt.Patient != nil {
		response.PatientName = appt.Patient.FullName()
	}
	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appts []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appts))
	for i := range appts {
		responses[i] = *AppointmentToResponse(&appts[i])
	}
	return responses
}
