package converter

import (
	"online-health-consultation/internal/delivery/dto"
	"online-health-consultation/internal/domain/entity"
)

func AnswerToResponse(answer *entity.Answer) *dto.AnswerResponse {
	if answer == nil {
		return nil
	}

	response := &dto.AnswerResponse{
		ID:        answer.ID,
		DoctorID:  answer.DoctorID,
		Response:  answer.Response,
		CreatedAt: answer.CreatedAt,
	}
	if answer.Doctor != nil && answer.Doctor.User != nil {
		response.DoctorName = answer.Doctor.User.FullName()
	}
	return response
}

func QuestionToResponse(question *entity.Question) *dto.QuestionResponse {
	if question == nil {
		return nil
	}

	response := &dto.QuestionResponse{
		ID:          question.ID,
		PatientID:   question.PatientID,
		Title:       question.Title,
		Description: question.Description,
		Answered:    question.Answered,
		Answer:      AnswerToResponse(question.Answer),
		CreatedAt:   question.CreatedAt,
	}
	if question.Patient != nil {
		response.PatientName = question.Patient.FullName()
	}
	return response
}

func QuestionsToResponses(questions []entity.Question) []dto.QuestionResponse {
	responses := make([]dto.QuestionResponse, len(questions))
	for i := range questions {
		responses[i] = *QuestionToResponse(&questions[i])
	}
	return responses
}

func TipToResponse(tip *entity.Tip) *dto.TipResponse {
	if tip == nil {
		return nil
	}

	response := &dto.TipResponse{
		ID:        tip.ID,
		DoctorID:  tip.DoctorID,
		Title:     tip.Title,
		Content:   tip.Content,
		CreatedAt: tip.CreatedAt,
	}
	if tip.Doctor != nil && tip.Doctor.User != nil {
		response.DoctorName = tip.Doctor.User.FullName()
	}
	return response
}

func TipsToResponses(tips []entity.Tip) []dto.TipResponse {
	responses := make([]dto.TipResponse, len(tips))
	for i := range tips {
		responses[i] = *TipToResponse(&tips[i])
	}
	return responses
}
