package dto

import "strings"

type ChoiceRequest struct {
	Content   string `json:"content" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// QuestionRequest dipakai create & update.
// Choices nil = tidak dikirim; slice kosong = hapus semua pilihan (update MULTIPLE_CHOICE).
type QuestionRequest struct {
	Content      string          `json:"content" validate:"required"`
	QuestionType string          `json:"question_type" validate:"required"`
	Explanation  string          `json:"explanation"`
	CourseID     string          `json:"course_id"`
	OrderNumber  *int            `json:"order_number" validate:"required,min=0"`
	Choices      []ChoiceRequest `json:"choices" validate:"omitempty,dive"`
}

func (r *QuestionRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
	r.Explanation = strings.TrimSpace(r.Explanation)
	r.CourseID = strings.TrimSpace(r.CourseID)
	for i := range r.Choices {
		r.Choices[i].Content = strings.TrimSpace(r.Choices[i].Content)
	}
}
