package jobs

import "time"

// JobSummary is the public job-list shape.
type JobSummary struct {
	ID             string `json:"id"`
	PositionID     string `json:"positionId"`
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	RequiresResume bool   `json:"requiresResume"`
}

// OptionResponse is the wire shape of a question option.
type OptionResponse struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	OrderIndex int    `json:"orderIndex"`
	IsActive   bool   `json:"isActive"`
}

// QuestionResponse is the wire shape of a question with its options.
type QuestionResponse struct {
	ID         string           `json:"id"`
	Label      string           `json:"label"`
	Type       string           `json:"type"`
	IsRequired bool             `json:"isRequired"`
	IsActive   bool             `json:"isActive"`
	Order      int              `json:"order"`
	Options    []OptionResponse `json:"options"`
}

// JobResponse is the wire shape of a full job posting.
type JobResponse struct {
	ID             string             `json:"id"`
	PositionID     string             `json:"positionId"`
	Slug           string             `json:"slug"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	RequiresResume bool               `json:"requiresResume"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
	Questions      []QuestionResponse `json:"questions"`
}

func toJobSummary(job Job) JobSummary {
	return JobSummary{
		ID:             job.ID,
		PositionID:     job.PositionID,
		Slug:           job.Slug,
		Title:          job.Title,
		Description:    job.Description,
		RequiresResume: job.RequiresResume,
	}
}

func toJobResponse(job Job) JobResponse {
	questions := make([]QuestionResponse, 0, len(job.Questions))
	for _, q := range job.Questions {
		questions = append(questions, toQuestionResponse(q))
	}
	return JobResponse{
		ID:             job.ID,
		PositionID:     job.PositionID,
		Slug:           job.Slug,
		Title:          job.Title,
		Description:    job.Description,
		RequiresResume: job.RequiresResume,
		IsActive:       job.IsActive,
		CreatedAt:      job.CreatedAt,
		UpdatedAt:      job.UpdatedAt,
		Questions:      questions,
	}
}

func toQuestionResponse(q Question) QuestionResponse {
	opts := make([]OptionResponse, 0, len(q.Options))
	for _, opt := range q.Options {
		opts = append(opts, OptionResponse{
			ID:         opt.ID,
			Label:      opt.Label,
			OrderIndex: opt.OrderIndex,
			IsActive:   opt.IsActive,
		})
	}
	return QuestionResponse{
		ID:         q.ID,
		Label:      q.Label,
		Type:       string(q.Type),
		IsRequired: q.IsRequired,
		IsActive:   q.IsActive,
		Order:      q.Order,
		Options:    opts,
	}
}
