package dto

import (
	"github.com/google/uuid"

	helper "duomonggo_backend/internals/helpers"
)

type EnrollmentRequest struct {
	AccountID string `json:"account_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
}

func (r EnrollmentRequest) IDs() (uuid.UUID, uuid.UUID, error) {
	accountID, err := helper.ParseUUID(r.AccountID, "account_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	courseID, err := helper.ParseUUID(r.CourseID, "course_id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return accountID, courseID, nil
}
