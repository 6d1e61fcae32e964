package dto

import "strings"

type CreateAnswerRequest struct {
	Content    string `json:"content" validate:"required"`
	IsCorrect  *bool  `json:"is_correct" validate:"required"`
	QuestionID string `json:"question_id" validate:"required"`
}

func (r *CreateAnswerRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
	r.QuestionID = strings.TrimSpace(r.QuestionID)
}

// UpdateAnswerRequest: penggantian penuh content + is_correct.
type UpdateAnswerRequest struct {
	Content   string `json:"content" validate:"required"`
	IsCorrect *bool  `json:"is_correct" validate:"required"`
}

func (r *UpdateAnswerRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
}

type DeleteByQuestionResponse struct {
	QuestionID string `json:"question_id"`
	Deleted    int64  `json:"deleted"`
}
