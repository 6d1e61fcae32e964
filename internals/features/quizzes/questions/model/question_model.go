package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	answerModel "duomonggo_backend/internals/features/quizzes/answers/model"
	helper "duomonggo_backend/internals/helpers"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "MULTIPLE_CHOICE"
	QuestionTrueFalse      QuestionType = "TRUE_FALSE"
	QuestionFillInTheBlank QuestionType = "FILL_IN_THE_BLANK"
)

func ParseQuestionType(raw string) (QuestionType, error) {
	switch t := QuestionType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionFillInTheBlank:
		return t, nil
	}
	return "", helper.InvalidInput("Invalid question type value. Must be one of MULTIPLE_CHOICE, TRUE_FALSE, FILL_IN_THE_BLANK")
}

// QuestionModel merepresentasikan tabel questions
type QuestionModel struct {
	ID           uuid.UUID                 `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CourseID     uuid.UUID                 `gorm:"type:uuid;not null;index" json:"course_id"`
	Content      string                    `gorm:"type:text;not null" json:"content"`
	ImageURL     *string                   `gorm:"type:text" json:"image_url"`
	QuestionType QuestionType              `gorm:"type:varchar(30);not null" json:"question_type"`
	Explanation  string                    `gorm:"type:text;not null;default:''" json:"explanation"`
	OrderNumber  int                       `gorm:"not null;default:0" json:"order_number"`
	CreatedAt    time.Time                 `gorm:"autoCreateTime" json:"created_at"`
	Answers      []answerModel.AnswerModel `gorm:"foreignKey:QuestionID" json:"answers"`
}

func (QuestionModel) TableName() string { return "questions" }
