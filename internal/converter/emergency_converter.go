package converter

import (
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
)

func EmergencyContactToResponse(contact *entity.EmergencyContact) *dto.EmergencyContactResponse {
	if contact == nil {
		return nil
	}

	return &dto.EmergencyContactResponse{
		ID:            contact.ID,
		Name:          contact.Name,
		ContactNumber: contact.ContactNumber,
		Location:      contact.Location,
		EmergencyType: string(contact.EmergencyType),
		Description:   contact.Description,
		IsResolved:    contact.IsResolved,
		ResolvedAt:    contact.ResolvedAt,
		CreatedAt:     contact.CreatedAt,
	}
}

func EmergencyContactsToResponses(contacts []entity.EmergencyContact) []dto.EmergencyContactResponse {
	responses := make([]dto.EmergencyContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = *EmergencyContactToResponse(&contacts[i])
	}
	return responses
}
