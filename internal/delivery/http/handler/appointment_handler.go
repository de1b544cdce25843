package handler

import (
	"context"
	"net/http"

	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/delivery/http/middleware"
	"online-health-consultation/internal/usecase"
	"online-health-consultation/pkg/response"
	"online-health-consultation/pkg/validator"

	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func appointmentFilterFromQuery(r *http.Request) *dto.AppointmentFilterRequest {
	query := r.URL.Query()
	return &dto.AppointmentFilterRequest{
		Status: query.Get("status"),
		Date:   query.Get("date"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}
}

func writeAppointmentError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found")
	case usecase.ErrInvalidTransition:
		response.Conflict(w, "Appointment cannot move to the requested status", nil)
	case usecase.ErrSlotTaken:
		response.Conflict(w, "The doctor already has an appointment at this time", nil)
	case usecase.ErrDoctorUnavailable:
		response.Conflict(w, "Doctor is not accepting appointments", nil)
	case usecase.ErrOutsideAvailability:
		response.ValidationError(w, map[string]string{"scheduled_at": "is outside the doctor's working hours"})
	case usecase.ErrAppointmentInPast:
		response.ValidationError(w, map[string]string{"scheduled_at": "must be in the future"})
	case usecase.ErrInvalidAppointmentType:
		response.ValidationError(w, map[string]string{"appointment_type": "is not a valid appointment type"})
	case usecase.ErrInvalidStatus:
		response.ValidationError(w, map[string]string{"status": "is not a valid appointment status"})
	case usecase.ErrInvalidDateFormat:
		response.ValidationError(w, map[string]string{"date": "must be a date in YYYY-MM-DD format"})
	default:
		response.InternalServerError(w, fallback)
	}
}

func writeAppointmentList(w http.ResponseWriter, list *dto.AppointmentListResponse) {
	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", list.Appointments, response.NewMeta(list.Page, list.Limit, list.Total))
}

// BookAppointment
// @Summary Book an appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BookAppointmentRequest true "Booking"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/book [post]
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.BookAppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), patientID, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

// GetMyAppointments
// @Summary List own appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status filter"
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	list, err := h.appointmentUsecase.ListPatientAppointments(r.Context(), patientID, appointmentFilterFromQuery(r))
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointments")
		return
	}

	writeAppointmentList(w, list)
}

// CancelAppointment
// @Summary Cancel own appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/cancel/{id} [post]
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	h.ownerTransition(w, r, h.appointmentUsecase.Cancel, "Appointment cancelled successfully", "Failed to cancel appointment")
}

// GetDoctorAppointments
// @Summary List the doctor's appointments
// @Description Also serves /doctor/consultations, which is the same list filtered by date and status
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status filter"
// @Param date query string false "YYYY-MM-DD"
// @Success 200 {object} response.Response
// @Router /doctor/appointments [get]
func (h *AppointmentHandler) GetDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	list, err := h.appointmentUsecase.ListDoctorAppointments(r.Context(), doctorID, appointmentFilterFromQuery(r))
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointments")
		return
	}

	writeAppointmentList(w, list)
}

// ConfirmAppointment
// @Summary Confirm a scheduled appointment
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctor/appointments/confirm/{id} [post]
func (h *AppointmentHandler) ConfirmAppointment(w http.ResponseWriter, r *http.Request) {
	h.ownerTransition(w, r, h.appointmentUsecase.Confirm, "Appointment confirmed successfully", "Failed to confirm appointment")
}

// CompleteAppointment
// @Summary Complete a confirmed appointment
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctor/appointments/complete/{id} [post]
func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	h.ownerTransition(w, r, h.appointmentUsecase.Complete, "Appointment completed successfully", "Failed to complete appointment")
}

// MarkNoShow
// @Summary Mark an appointment as no-show
// @Tags Doctor
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /doctor/appointments/no-show/{id} [post]
func (h *AppointmentHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	h.ownerTransition(w, r, h.appointmentUsecase.MarkNoShow, "Appointment marked as no-show", "Failed to update appointment")
}

// GetAllAppointments
// @Summary List all appointments
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param status query string false "Status filter"
// @Param date query string false "YYYY-MM-DD"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /admin/appointments [get]
func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	list, err := h.appointmentUsecase.ListAll(r.Context(), appointmentFilterFromQuery(r))
	if err != nil {
		writeAppointmentError(w, err, "Failed to get appointments")
		return
	}

	writeAppointmentList(w, list)
}

// UpdateAppointmentStatus
// @Summary Move an appointment to another status
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateAppointmentStatusRequest true "Status"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), actorID, appointmentID, &req)
	if err != nil {
		writeAppointmentError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

type scopedTransition func(ctx context.Context, ownerID, id uuid.UUID) (*dto.AppointmentResponse, error)

// ownerTransition runs a transition scoped to the caller: the patient for
// cancel, the doctor for the others.
func (h *AppointmentHandler) ownerTransition(w http.ResponseWriter, r *http.Request, apply scopedTransition, okMessage, failMessage string) {
	ownerID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	appointmentID, ok := pathUUID(w, r, "id", "appointment")
	if !ok {
		return
	}

	appointment, err := apply(r.Context(), ownerID, appointmentID)
	if err != nil {
		writeAppointmentError(w, err, failMessage)
		return
	}

	response.Success(w, http.StatusOK, okMessage, appointment)
}
