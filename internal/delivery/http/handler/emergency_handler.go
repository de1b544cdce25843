package handler

import (
	"net/http"

	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/delivery/http/middleware"
	"online-health-consultation/internal/usecase"
	"online-health-consultation/pkg/response"
	"online-health-consultation/pkg/validator"
)

type EmergencyHandler struct {
	emergencyUsecase usecase.EmergencyUsecase
	validator        *validator.CustomValidator
}

func NewEmergencyHandler(emergencyUsecase usecase.EmergencyUsecase, validator *validator.CustomValidator) *EmergencyHandler {
	return &EmergencyHandler{
		emergencyUsecase: emergencyUsecase,
		validator:        validator,
	}
}

// SubmitEmergency
// @Summary Submit an emergency request
// @Description Public intake; rate limited per client address
// @Tags Emergency
// @Accept json
// @Produce json
// @Param request body dto.EmergencyContactRequest true "Emergency"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /emergency/contact [post]
func (h *EmergencyHandler) SubmitEmergency(w http.ResponseWriter, r *http.Request) {
	var req dto.EmergencyContactRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	contact, err := h.emergencyUsecase.Submit(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidEmergencyType:
			response.ValidationError(w, map[string]string{"emergency_type": "is not a valid emergency type"})
		default:
			response.InternalServerError(w, "Failed to submit emergency request")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Emergency request received. Help is on the way.", contact)
}

// ListEmergencies
// @Summary List emergency requests
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param resolved query bool false "Resolved filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /admin/emergencies [get]
func (h *EmergencyHandler) ListEmergencies(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.emergencyUsecase.List(r.Context(), queryBool(r, "resolved"), queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		response.InternalServerError(w, "Failed to get emergency requests")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Emergency requests retrieved successfully", contacts.Contacts, response.NewMeta(contacts.Page, contacts.Limit, contacts.Total))
}

// ResolveEmergency
// @Summary Mark an emergency request as resolved
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param id path string true "Emergency ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/emergencies/{id}/resolve [post]
func (h *EmergencyHandler) ResolveEmergency(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	emergencyID, ok := pathUUID(w, r, "id", "emergency")
	if !ok {
		return
	}

	contact, err := h.emergencyUsecase.Resolve(r.Context(), actorID, emergencyID)
	if err != nil {
		switch err {
		case usecase.ErrEmergencyNotFound:
			response.NotFound(w, "Emergency request not found")
		case usecase.ErrEmergencyAlreadyResolved:
			response.Conflict(w, "Emergency request is already resolved", nil)
		default:
			response.InternalServerError(w, "Failed to resolve emergency request")
		}
		return
	}

	response.Success(w, http.StatusOK, "Emergency request resolved successfully", contact)
}
