package applications

import "time"

// AnswerResponse is the wire shape of one answer row.
type AnswerResponse struct {
	QuestionID       string  `json:"questionId"`
	TextValue        *string `json:"textValue"`
	QuestionOptionID *string `json:"questionOptionId"`
	QuestionLabel    string  `json:"questionLabel,omitempty"`
	OptionLabel      *string `json:"optionLabel,omitempty"`
}

// SubmitResponse is the public success payload.
type SubmitResponse struct {
	ID          string           `json:"id"`
	JobID       string           `json:"jobId"`
	SubmittedAt time.Time        `json:"submittedAt"`
	ResumeURL   *string          `json:"resumeUrl,omitempty"`
	Answers     []AnswerResponse `json:"answers"`
	Message     string           `json:"message,omitempty"`
}

// ApplicationResponse is the admin-facing application shape.
type ApplicationResponse struct {
	ID          string           `json:"id"`
	JobID       string           `json:"jobId"`
	ResumeURL   *string          `json:"resumeUrl"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Answers     []AnswerResponse `json:"answers,omitempty"`
}

func toSubmitResponse(app Application, message string) SubmitResponse {
	return SubmitResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		SubmittedAt: app.CreatedAt,
		ResumeURL:   app.ResumeURL,
		Answers:     toAnswerResponses(app.Answers, false),
		Message:     message,
	}
}

func toApplicationResponse(app Application, withAnswers bool) ApplicationResponse {
	resp := ApplicationResponse{
		ID:          app.ID,
		JobID:       app.JobID,
		ResumeURL:   app.ResumeURL,
		SubmittedAt: app.CreatedAt,
	}
	if withAnswers {
		resp.Answers = toAnswerResponses(app.Answers, true)
	}
	return resp
}

func toAnswerResponses(answers []Answer, withLabels bool) []AnswerResponse {
	out := make([]AnswerResponse, 0, len(answers))
	for _, ans := range answers {
		resp := AnswerResponse{
			QuestionID:       ans.QuestionID,
			TextValue:        ans.TextValue,
			QuestionOptionID: ans.QuestionOptionID,
		}
		if withLabels {
			resp.QuestionLabel = ans.QuestionLabel
			resp.OptionLabel = ans.OptionLabel
		}
		out = append(out, resp)
	}
	return out
}
