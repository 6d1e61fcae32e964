package dto

import (
	"time"

	"github.com/google/uuid"

	helper "duomonggo_backend/internals/helpers"
)

// MultiplayerRequest bisa dari body JSON atau query ?account_id=&course_id=
type MultiplayerRequest struct {
	AccountID string `json:"account_id" query:"account_id"`
	CourseID  string `json:"course_id" query:"course_id"`
}

func (r MultiplayerRequest) IDs() (uuid.UUID, uuid.UUID, error) {
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

type CompletionStatus struct {
	Completed bool `json:"completed"`
}

type CompletionTime struct {
	CompletionTime int64 `json:"completion_time"`
}

type LeaderboardEntry struct {
	AccountID      uuid.UUID `json:"account_id"`
	Username       string    `json:"username"`
	CompletionTime int64     `json:"completion_time"`
	CompletedAt    time.Time `json:"completed_at"`
}

type RankingEntry struct {
	Rank           int       `json:"rank"`
	AccountID      uuid.UUID `json:"account_id"`
	Username       string    `json:"username"`
	CompletionTime int64     `json:"completion_time"`
}

type RankingResponse struct {
	CourseID uuid.UUID      `json:"course_id"`
	Source   string         `json:"source"`
	Entries  []RankingEntry `json:"entries"`
}
