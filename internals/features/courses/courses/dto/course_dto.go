package dto

import "strings"

type CourseRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description"`
	Difficulty  string  `json:"difficulty" validate:"required"`
	ExpReward   *int    `json:"exp_reward" validate:"required,min=0"`
	CourseType  *string `json:"course_type"`
}

func (r *CourseRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

type MultiplayerCourseRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description"`
	Difficulty  string  `json:"difficulty" validate:"required"`
	ExpReward   *int    `json:"exp_reward" validate:"required,min=0"`
	Deadline    *string `json:"deadline"`
}

func (r *MultiplayerCourseRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

// ListCoursesQuery: ?difficulty=&type=
type ListCoursesQuery struct {
	Difficulty string `query:"difficulty"`
	Type       string `query:"type"`
}
