package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	helper "duomonggo_backend/internals/helpers"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole case-insensitive; nilai di luar USER|ADMIN ditolak.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", helper.InvalidInput("Invalid role value. Must be one of USER, ADMIN")
}

// AccountModel merepresentasikan tabel accounts
type AccountModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username  string    `gorm:"size:50;not null;uniqueIndex:uq_accounts_username" json:"username"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:uq_accounts_email" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	ImageURL  *string   `gorm:"column:image_url" json:"image_url"`
	Role      Role      `gorm:"type:varchar(10);not null;default:'USER'" json:"role"`
	Exp       int       `gorm:"not null;default:0" json:"exp"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AccountModel) TableName() string { return "accounts" }
