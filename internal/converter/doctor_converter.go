package converter

import (
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO.
// Name and e-mail are filled only when User is preloaded.
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:              doctor.UserID,
		Specialization:  doctor.Specialization,
		LicenseNumber:   doctor.LicenseNumber,
		ExperienceYears: doctor.ExperienceYears,
		ConsultationFee: doctor.ConsultationFee,
		AvailableFrom:   doctor.AvailableFrom,
		AvailableTo:     doctor.AvailableTo,
		IsAvailable:     doctor.IsAvailable,
	}
	if doctor.User != nil {
		response.FullName = doctor.User.FullName()
		response.Email = doctor.User.Email
	}
	return response
}

// DoctorsToResponses converts a slice of Doctor entities to slice of DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}

func AvailabilityToResponse(doctor *entity.Doctor) *dto.AvailabilityResponse {
	return &dto.AvailabilityResponse{
		AvailableFrom: doctor.AvailableFrom,
		AvailableTo:   doctor.AvailableTo,
		IsAvailable:   doctor.IsAvailable,
	}
}
