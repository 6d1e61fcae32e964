package model

import (
	"time"

	"github.com/google/uuid"
)

// MultiplayerModel satu percobaan race per account+course (tabel multiplayer_sessions)
type MultiplayerModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AccountID   uuid.UUID  `gorm:"type:uuid;not null" json:"account_id"`
	CourseID    uuid.UUID  `gorm:"type:uuid;not null" json:"course_id"`
	StartedAt   time.Time  `gorm:"type:timestamptz;not null" json:"started_at"`
	CompletedAt *time.Time `gorm:"type:timestamptz" json:"completed_at"`
}

func (MultiplayerModel) TableName() string { return "multiplayer_sessions" }

func (m *MultiplayerModel) IsCompleted() bool { return m.CompletedAt != nil }

// DurationSeconds dibulatkan ke bawah; 0 kalau belum selesai.
func (m *MultiplayerModel) DurationSeconds() int64 {
	if m.CompletedAt == nil {
		return 0
	}
	return int64(m.CompletedAt.Sub(m.StartedAt) / time.Second)
}
