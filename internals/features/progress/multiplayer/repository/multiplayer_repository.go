package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"duomonggo_backend/internals/features/progress/multiplayer/model"
	helper "duomonggo_backend/internals/helpers"
)

const (
	msgNoAttempt        = "No multiplayer course attempt found for this account and course"
	msgAlreadyCompleted = "Course already completed"
)

// CompletionRow sesi selesai + username pemiliknya.
type CompletionRow struct {
	AccountID   uuid.UUID
	Username    string
	StartedAt   time.Time
	CompletedAt time.Time
}

func (r CompletionRow) DurationSeconds() int64 {
	return int64(r.CompletedAt.Sub(r.StartedAt) / time.Second)
}

type MultiplayerRepository interface {
	// Find: (nil, nil) kalau belum ada.
	Find(ctx context.Context, accountID, courseID uuid.UUID) (*model.MultiplayerModel, error)
	// Create: false kalau pasangan account+course sudah ada.
	Create(ctx context.Context, m *model.MultiplayerModel) (bool, error)
	// Complete hanya sekali; kedua kalinya BusinessRule.
	Complete(ctx context.Context, accountID, courseID uuid.UUID, now time.Time) (*model.MultiplayerModel, error)
	ListCompleted(ctx context.Context, courseID uuid.UUID) ([]CompletionRow, error)
}

type gormMultiplayerRepository struct {
	db *gorm.DB
}

func NewMultiplayerRepository(db *gorm.DB) MultiplayerRepository {
	return &gormMultiplayerRepository{db: db}
}

func (r *gormMultiplayerRepository) Find(ctx context.Context, accountID, courseID uuid.UUID) (*model.MultiplayerModel, error) {
	var m model.MultiplayerModel
	err := r.db.WithContext(ctx).Where("account_id = ? AND course_id = ?", accountID, courseID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, helper.MapDBError(err, msgNoAttempt)
	}
	return &m, nil
}

func (r *gormMultiplayerRepository) Create(ctx context.Context, m *model.MultiplayerModel) (bool, error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(m)
	if res.Error != nil {
		return false, helper.MapDBError(res.Error, msgNoAttempt)
	}
	return res.RowsAffected > 0, nil
}

func (r *gormMultiplayerRepository) Complete(ctx context.Context, accountID, courseID uuid.UUID, now time.Time) (*model.MultiplayerModel, error) {
	res := r.db.WithContext(ctx).Model(&model.MultiplayerModel{}).
		Where("account_id = ? AND course_id = ? AND completed_at IS NULL", accountID, courseID).
		Update("completed_at", now)
	if res.Error != nil {
		return nil, helper.MapDBError(res.Error, msgNoAttempt)
	}

	row, err := r.Find(ctx, accountID, courseID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, helper.NotFound(msgNoAttempt)
	}
	if res.RowsAffected == 0 {
		return nil, helper.BusinessRule(msgAlreadyCompleted)
	}
	return row, nil
}

func (r *gormMultiplayerRepository) ListCompleted(ctx context.Context, courseID uuid.UUID) ([]CompletionRow, error) {
	var rows []CompletionRow
	err := r.db.WithContext(ctx).
		Table("multiplayer_sessions AS m").
		Select("m.account_id, a.username, m.started_at, m.completed_at").
		Joins("JOIN accounts a ON a.id = m.account_id").
		Where("m.course_id = ? AND m.completed_at IS NOT NULL", courseID).
		Scan(&rows).Error
	if err != nil {
		return nil, helper.MapDBError(err, msgNoAttempt)
	}
	return rows, nil
}
