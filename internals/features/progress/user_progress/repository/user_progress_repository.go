package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"duomonggo_backend/internals/features/progress/user_progress/model"
	accountRepo "duomonggo_backend/internals/features/users/accounts/repository"
	helper "duomonggo_backend/internals/helpers"
)

const msgNotFound = "Progress not found"

type Counts struct {
	CorrectAnswers    int
	TotalQuestions    int
	LastQuestionIndex int
}

type UserProgressRepository interface {
	// Find: (nil, nil) kalau belum ada.
	Find(ctx context.Context, accountID, courseID uuid.UUID) (*model.UserProgressModel, error)
	Start(ctx context.Context, accountID, courseID uuid.UUID) (*model.UserProgressModel, error)
	List(ctx context.Context) ([]model.UserProgressModel, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.UserProgressModel, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.UserProgressModel, error)
	UpdateCounts(ctx context.Context, accountID, courseID uuid.UUID, c Counts, now time.Time) (*model.UserProgressModel, error)
	// Complete: expGain hanya dipakai (dan ditambahkan ke akun) pada penyelesaian pertama.
	Complete(ctx context.Context, accountID, courseID uuid.UUID, correct, total, expGain int, now time.Time) (row *model.UserProgressModel, awarded bool, err error)
	CountCompleted(ctx context.Context, accountID uuid.UUID) (int64, error)
	SumExp(ctx context.Context, accountID uuid.UUID) (int64, error)
}

type gormUserProgressRepository struct {
	db *gorm.DB
}

func NewUserProgressRepository(db *gorm.DB) UserProgressRepository {
	return &gormUserProgressRepository{db: db}
}

const pairWhere = "account_id = ? AND course_id = ?"

func (r *gormUserProgressRepository) Find(ctx context.Context, accountID, courseID uuid.UUID) (*model.UserProgressModel, error) {
	var m model.UserProgressModel
	err := r.db.WithContext(ctx).Where(pairWhere, accountID, courseID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return &m, nil
}

func (r *gormUserProgressRepository) Start(ctx context.Context, accountID, courseID uuid.UUID) (*model.UserProgressModel, error) {
	row := model.UserProgressModel{ID: uuid.New(), AccountID: accountID, CourseID: courseID}
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

func (r *gormUserProgressRepository) list(ctx context.Context, where string, args ...interface{}) ([]model.UserProgressModel, error) {
	var rows []model.UserProgressModel
	q := r.db.WithContext(ctx).Order("created_at ASC")
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return rows, nil
}

func (r *gormUserProgressRepository) List(ctx context.Context) ([]model.UserProgressModel, error) {
	return r.list(ctx, "")
}

func (r *gormUserProgressRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.UserProgressModel, error) {
	return r.list(ctx, "account_id = ?", accountID)
}

func (r *gormUserProgressRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.UserProgressModel, error) {
	return r.list(ctx, "course_id = ?", courseID)
}

func (r *gormUserProgressRepository) UpdateCounts(ctx context.Context, accountID, courseID uuid.UUID, c Counts, now time.Time) (*model.UserProgressModel, error) {
	var row model.UserProgressModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.UserProgressModel{}).
			Where(pairWhere, accountID, courseID).
			Updates(map[string]interface{}{
				"correct_answers":     c.CorrectAnswers,
				"total_questions":     c.TotalQuestions,
				"last_question_index": c.LastQuestionIndex,
				"updated_at":          now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.NotFound(msgNotFound)
		}
		return tx.Where(pairWhere, accountID, courseID).Take(&row).Error
	})
	if err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return &row, nil
}

func (r *gormUserProgressRepository) Complete(ctx context.Context, accountID, courseID uuid.UUID, correct, total, expGain int, now time.Time) (*model.UserProgressModel, bool, error) {
	var (
		row     model.UserProgressModel
		awarded bool
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(pairWhere, accountID, courseID).
			Take(&row).Error; err != nil {
			return err
		}

		fields := map[string]interface{}{
			"correct_answers": correct,
			"total_questions": total,
			"updated_at":      now,
		}
		if !row.Completed {
			fields["completed"] = true
			fields["exp_gained"] = expGain
			fields["completed_at"] = now
		}
		if err := tx.Model(&model.UserProgressModel{}).Where("id = ?", row.ID).Updates(fields).Error; err != nil {
			return err
		}

		row.CorrectAnswers = correct
		row.TotalQuestions = total
		row.UpdatedAt = now
		if row.Completed {
			return nil
		}
		if err := accountRepo.IncrementExp(tx, accountID, expGain); err != nil {
			return err
		}
		row.Completed = true
		row.ExpGained = expGain
		row.CompletedAt = &now
		awarded = true
		return nil
	})
	if err != nil {
		return nil, false, helper.MapDBError(err, msgNotFound)
	}
	return &row, awarded, nil
}

func (r *gormUserProgressRepository) CountCompleted(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.UserProgressModel{}).
		Where("account_id = ? AND completed = ?", accountID, true).
		Count(&n).Error; err != nil {
		return 0, helper.MapDBError(err, msgNotFound)
	}
	return n, nil
}

func (r *gormUserProgressRepository) SumExp(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.UserProgressModel{}).
		Select("COALESCE(SUM(exp_gained), 0)").
		Where("account_id = ?", accountID).
		Scan(&total).Error; err != nil {
		return 0, helper.MapDBError(err, msgNotFound)
	}
	return total, nil
}
