package dto

import (
	"github.com/google/uuid"

	helper "duomonggo_backend/internals/helpers"
)

type StartProgressRequest struct {
	AccountID string `json:"account_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
}

type UpdateProgressRequest struct {
	AccountID         string `json:"account_id" validate:"required"`
	CourseID          string `json:"course_id" validate:"required"`
	CorrectAnswers    *int   `json:"correct_answers" validate:"required,min=0"`
	TotalQuestions    *int   `json:"total_questions" validate:"required,min=0"`
	LastQuestionIndex *int   `json:"last_question_index" validate:"required,min=0"`
}

type CompleteProgressRequest struct {
	AccountID      string `json:"account_id" validate:"required"`
	CourseID       string `json:"course_id" validate:"required"`
	CorrectAnswers *int   `json:"correct_answers" validate:"required,min=0"`
	TotalQuestions *int   `json:"total_questions" validate:"required,min=0"`
}

type StatsResponse struct {
	CompletedCourses int64 `json:"completed_courses"`
	TotalExp         int64 `json:"total_exp"`
}

func ParseIDs(accountRaw, courseRaw string) (uuid.UUID, uuid.UUID, error) {
	accountID, err := helper.ParseUUID(accountRaw, "account_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	courseID, err := helper.ParseUUID(courseRaw, "course_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return accountID, courseID, nil
}

func Deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
