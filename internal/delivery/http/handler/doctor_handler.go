package handler

import (
	"net/http"

	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/delivery/http/middleware"
	"online-health-consultation/internal/usecase"
	"online-health-consultation/pkg/response"
	"online-health-consultation/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// SearchDoctors
// @Summary Search doctors
// @Description Available doctors, optionally filtered by specialization, name and a date/time that must fall inside the working window
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param specialization query string false "Specialization (case-insensitive substring)"
// @Param name query string false "Doctor first or last name"
// @Param date query string false "YYYY-MM-DD"
// @Param time query string false "HH:MM"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := dto.SearchDoctorsRequest{
		Specialization: query.Get("specialization"),
		Name:           query.Get("name"),
		Date:           query.Get("date"),
		Time:           query.Get("time"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctors, err := h.doctorUsecase.SearchDoctors(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.ValidationError(w, map[string]string{"date": "must be a date in YYYY-MM-DD format"})
		case usecase.ErrInvalidTimeFormat:
			response.ValidationError(w, map[string]string{"time": "must be a time in HH:MM format"})
		default:
			response.InternalServerError(w, "Failed to search doctors")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// GetDoctor
// @Summary Get doctor details
// @Tags Doctors
// @Security BearerAuth
// @Produce json
// @Param id path string true "Doctor user ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathUUID(w, r, "id", "doctor")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// GetAvailability
// @Summary Get own availability window
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctor/availability [get]
func (h *DoctorHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	availability, err := h.doctorUsecase.GetAvailability(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

// UpdateAvailability
// @Summary Update own availability window
// @Tags Doctor
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateAvailabilityRequest true "Availability"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctor/availability [put]
func (h *DoctorHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateAvailabilityRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	availability, err := h.doctorUsecase.UpdateAvailability(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidAvailability:
			response.ValidationError(w, map[string]string{"available_to": "must be later than available_from"})
		default:
			response.InternalServerError(w, "Failed to update availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", availability)
}
