package model

import (
	"time"

	"github.com/google/uuid"
)

// EnrollmentModel merepresentasikan tabel enrollments (unik per account+course)
type EnrollmentModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AccountID   uuid.UUID  `gorm:"type:uuid;not null" json:"account_id"`
	CourseID    uuid.UUID  `gorm:"type:uuid;not null" json:"course_id"`
	IsCompleted bool       `gorm:"not null;default:false" json:"is_completed"`
	CompletedAt *time.Time `gorm:"type:timestamptz" json:"completed_at"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }
