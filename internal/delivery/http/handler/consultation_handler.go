package handler

import (
	"net/http"

	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/delivery/http/middleware"
	"online-health-consultation/internal/usecase"
	"online-health-consultation/pkg/response"
	"online-health-consultation/pkg/validator"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

// AskQuestion
// @Summary Ask a health question
// @Tags Questions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AskQuestionRequest true "Question"
// @Success 201 {object} response.Response
// @Router /questions [post]
func (h *ConsultationHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.AskQuestionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	question, err := h.consultationUsecase.AskQuestion(r.Context(), patientID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to submit question")
		return
	}

	response.Success(w, http.StatusCreated, "Question submitted successfully", question)
}

// ListQuestions
// @Summary List questions
// @Description Patients see their own questions, doctors and admins see all
// @Tags Questions
// @Security BearerAuth
// @Produce json
// @Param answered query bool false "Answered filter"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Response
// @Router /questions [get]
func (h *ConsultationHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	questions, err := h.consultationUsecase.ListQuestions(r.Context(), userID, role, queryBool(r, "answered"), queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		response.InternalServerError(w, "Failed to get questions")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Questions retrieved successfully", questions.Questions, response.NewMeta(questions.Page, questions.Limit, questions.Total))
}

// GetQuestion
// @Summary Get a question with its answer
// @Tags Questions
// @Security BearerAuth
// @Produce json
// @Param id path string true "Question ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /questions/{id} [get]
func (h *ConsultationHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	role, _ := middleware.GetRoleFromContext(r.Context())

	questionID, ok := pathUUID(w, r, "id", "question")
	if !ok {
		return
	}

	question, err := h.consultationUsecase.GetQuestion(r.Context(), userID, role, questionID)
	if err != nil {
		switch err {
		case usecase.ErrQuestionNotFound:
			response.NotFound(w, "Question not found")
		default:
			response.InternalServerError(w, "Failed to get question")
		}
		return
	}

	response.Success(w, http.StatusOK, "Question retrieved successfully", question)
}

// AnswerQuestion
// @Summary Answer a question
// @Tags Questions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Question ID"
// @Param request body dto.AnswerQuestionRequest true "Answer"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /questions/{id}/answer [post]
func (h *ConsultationHandler) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	questionID, ok := pathUUID(w, r, "id", "question")
	if !ok {
		return
	}

	var req dto.AnswerQuestionRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	question, err := h.consultationUsecase.AnswerQuestion(r.Context(), doctorID, questionID, &req)
	if err != nil {
		switch err {
		case usecase.ErrQuestionNotFound:
			response.NotFound(w, "Question not found")
		case usecase.ErrQuestionAlreadyAnswered:
			response.Conflict(w, "Question has already been answered", nil)
		default:
			response.InternalServerError(w, "Failed to answer question")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Answer submitted successfully", question)
}

// ListTips
// @Summary List health tips
// @Tags Tips
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /tips [get]
func (h *ConsultationHandler) ListTips(w http.ResponseWriter, r *http.Request) {
	tips, err := h.consultationUsecase.ListTips(r.Context(), queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		response.InternalServerError(w, "Failed to get tips")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Tips retrieved successfully", tips.Tips, response.NewMeta(tips.Page, tips.Limit, tips.Total))
}

// CreateTip
// @Summary Publish a health tip
// @Tags Tips
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateTipRequest true "Tip"
// @Success 201 {object} response.Response
// @Router /tips [post]
func (h *ConsultationHandler) CreateTip(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.CreateTipRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	tip, err := h.consultationUsecase.CreateTip(r.Context(), doctorID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create tip")
		return
	}

	response.Success(w, http.StatusCreated, "Tip created successfully", tip)
}
