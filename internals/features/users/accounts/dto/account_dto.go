package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"duomonggo_backend/internals/features/users/accounts/model"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role"`
}

func (r *RegisterRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateAccountRequest: nil = field tidak dikirim, tidak diubah.
type UpdateAccountRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
	Role     *string `json:"role"`
	Exp      *int    `json:"exp" validate:"omitempty,min=0"`
}

func (r *UpdateAccountRequest) Normalize() {
	if r.Username != nil {
		v := strings.TrimSpace(*r.Username)
		r.Username = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
}

func (r *UpdateAccountRequest) IsEmpty() bool {
	return r.Username == nil && r.Email == nil && r.Password == nil && r.Role == nil && r.Exp == nil
}

type AccountResponse struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	ImageURL  *string    `json:"image_url"`
	Role      model.Role `json:"role"`
	Exp       int        `json:"exp"`
	CreatedAt time.Time  `json:"created_at"`
}

func FromModel(m *model.AccountModel) AccountResponse {
	return AccountResponse{
		ID:        m.ID,
		Username:  m.Username,
		Email:     m.Email,
		ImageURL:  m.ImageURL,
		Role:      m.Role,
		Exp:       m.Exp,
		CreatedAt: m.CreatedAt,
	}
}

func FromModels(rows []model.AccountModel) []AccountResponse {
	out := make([]AccountResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromModel(&rows[i]))
	}
	return out
}

type LoginResponse struct {
	Account     AccountResponse `json:"account"`
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

type DashboardAccount struct {
	ID               uuid.UUID  `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	Exp              int        `json:"exp"`
	Role             model.Role `json:"role"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedCourses int64      `json:"completed_courses"`
}

type DashboardResponse struct {
	TotalUsers int64              `json:"total_users"`
	Accounts   []DashboardAccount `json:"accounts"`
}
