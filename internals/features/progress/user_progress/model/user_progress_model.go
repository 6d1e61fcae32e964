package model

import (
	"time"

	"github.com/google/uuid"
)

// UserProgressModel merepresentasikan tabel user_progress (unik per account+course)
type UserProgressModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AccountID         uuid.UUID  `gorm:"type:uuid;not null" json:"account_id"`
	CourseID          uuid.UUID  `gorm:"type:uuid;not null" json:"course_id"`
	Completed         bool       `gorm:"not null;default:false" json:"completed"`
	CorrectAnswers    int        `gorm:"not null;default:0" json:"correct_answers"`
	TotalQuestions    int        `gorm:"not null;default:0" json:"total_questions"`
	LastQuestionIndex int        `gorm:"not null;default:0" json:"last_question_index"`
	ExpGained         int        `gorm:"not null;default:0" json:"exp_gained"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	CompletedAt       *time.Time `gorm:"type:timestamptz" json:"completed_at"`
}

func (UserProgressModel) TableName() string { return "user_progress" }
