package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"duomonggo_backend/internals/features/progress/enrollments/model"
	accountRepo "duomonggo_backend/internals/features/users/accounts/repository"
	helper "duomonggo_backend/internals/helpers"
)

const msgNotFound = "Enrollment not found"

type EnrollmentRepository interface {
	// Find: (nil, nil) kalau belum ada.
	Find(ctx context.Context, accountID, courseID uuid.UUID) (*model.EnrollmentModel, error)
	// Start idempoten: baris lama dikembalikan apa adanya.
	Start(ctx context.Context, accountID, courseID uuid.UUID) (*model.EnrollmentModel, error)
	// Complete menandai selesai sekali saja; reward ditambahkan ke akun di transaksi yang sama.
	Complete(ctx context.Context, accountID, courseID uuid.UUID, reward int, now time.Time) (row *model.EnrollmentModel, awarded bool, err error)
}

type gormEnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &gormEnrollmentRepository{db: db}
}

func pair(accountID, courseID uuid.UUID) (string, []interface{}) {
	return "account_id = ? AND course_id = ?", []interface{}{accountID, courseID}
}

func (r *gormEnrollmentRepository) Find(ctx context.Context, accountID, courseID uuid.UUID) (*model.EnrollmentModel, error) {
	var m model.EnrollmentModel
	where, args := pair(accountID, courseID)
	err := r.db.WithContext(ctx).Where(where, args...).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return &m, nil
}

func (r *gormEnrollmentRepository) Start(ctx context.Context, accountID, courseID uuid.UUID) (*model.EnrollmentModel, error) {
	row := model.EnrollmentModel{ID: uuid.New(), AccountID: accountID, CourseID: courseID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "course_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
	if err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	got, err := r.Find(ctx, accountID, courseID)
	if err != nil {
		return nil, err
	}
	if got == nil {
		return nil, helper.NotFound(msgNotFound)
	}
	return got, nil
}

func (r *gormEnrollmentRepository) Complete(ctx context.Context, accountID, courseID uuid.UUID, reward int, now time.Time) (*model.EnrollmentModel, bool, error) {
	var (
		row     model.EnrollmentModel
		awarded bool
	)
	where, args := pair(accountID, courseID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(where, args...).
			Take(&row).Error; err != nil {
			return err
		}
		if row.IsCompleted {
			return nil
		}
		if err := tx.Model(&model.EnrollmentModel{}).
			Where("id = ?", row.ID).
			Updates(map[string]interface{}{"is_completed": true, "completed_at": now}).Error; err != nil {
			return err
		}
		if err := accountRepo.IncrementExp(tx, accountID, reward); err != nil {
			return err
		}
		row.IsCompleted = true
		row.CompletedAt = &now
		awarded = true
		return nil
	})
	if err != nil {
		return nil, false, helper.MapDBError(err, msgNotFound)
	}
	return &row, awarded, nil
}
