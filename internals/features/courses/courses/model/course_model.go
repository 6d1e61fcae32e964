package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	helper "duomonggo_backend/internals/helpers"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

func ParseDifficulty(raw string) (Difficulty, error) {
	switch d := Difficulty(strings.ToUpper(strings.TrimSpace(raw))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", helper.InvalidInput("Invalid difficulty value. Must be one of EASY, MEDIUM, HARD")
}

type CourseType string

const (
	CourseSingleplayer CourseType = "SINGLEPLAYER"
	CourseMultiplayer  CourseType = "MULTIPLAYER"
)

func ParseCourseType(raw string) (CourseType, error) {
	switch t := CourseType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case CourseSingleplayer, CourseMultiplayer:
		return t, nil
	}
	return "", helper.InvalidInput("Invalid course type value")
}

// CourseModel merepresentasikan tabel courses
type CourseModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text;not null;default:''" json:"description"`
	Difficulty  Difficulty `gorm:"type:varchar(10);not null" json:"difficulty"`
	ExpReward   int        `gorm:"not null;default:0" json:"exp_reward"`
	CourseType  CourseType `gorm:"type:varchar(20);not null;default:'SINGLEPLAYER'" json:"course_type"`
	Deadline    *time.Time `gorm:"type:timestamptz" json:"deadline"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (CourseModel) TableName() string { return "courses" }

func (c *CourseModel) IsMultiplayer() bool { return c.CourseType == CourseMultiplayer }

// DeadlinePassed: course tanpa deadline tidak pernah lewat.
func (c *CourseModel) DeadlinePassed(now time.Time) bool {
	return c.Deadline != nil && now.After(*c.Deadline)
}
