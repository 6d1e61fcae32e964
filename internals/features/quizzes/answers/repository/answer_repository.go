package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"duomonggo_backend/internals/features/quizzes/answers/model"
	helper "duomonggo_backend/internals/helpers"
)

const msgNotFound = "Answer not found"

type AnswerRepository interface {
	Create(ctx context.Context, m *model.AnswerModel) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.AnswerModel, error)
	List(ctx context.Context) ([]model.AnswerModel, error)
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]model.AnswerModel, error)
	Update(ctx context.Context, m *model.AnswerModel) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByQuestion(ctx context.Context, questionID uuid.UUID) (int64, error)
}

type gormAnswerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &gormAnswerRepository{db: db}
}

func (r *gormAnswerRepository) Create(ctx context.Context, m *model.AnswerModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// sort_order = urutan berikutnya di soal yang sama
		var next int
		if err := tx.Model(&model.AnswerModel{}).
			Select("COALESCE(MAX(sort_order) + 1, 0)").
			Where("question_id = ?", m.QuestionID).
			Scan(&next).Error; err != nil {
			return helper.MapDBError(err, msgNotFound)
		}
		m.SortOrder = next
		return helper.MapDBError(tx.Create(m).Error, msgNotFound)
	})
}

func (r *gormAnswerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AnswerModel, error) {
	var m model.AnswerModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return &m, nil
}

func (r *gormAnswerRepository) List(ctx context.Context) ([]model.AnswerModel, error) {
	var rows []model.AnswerModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return rows, nil
}

func (r *gormAnswerRepository) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]model.AnswerModel, error) {
	var rows []model.AnswerModel
	if err := r.db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Order("sort_order ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return rows, nil
}

func (r *gormAnswerRepository) Update(ctx context.Context, m *model.AnswerModel) error {
	res := r.db.WithContext(ctx).Model(&model.AnswerModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"content":    m.Content,
			"is_correct": m.IsCorrect,
		})
	if res.Error != nil {
		return helper.MapDBError(res.Error, msgNotFound)
	}
	if res.RowsAffected == 0 {
		return helper.NotFound(msgNotFound)
	}
	return nil
}

func (r *gormAnswerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.AnswerModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.MapDBError(res.Error, msgNotFound)
	}
	if res.RowsAffected == 0 {
		return helper.NotFound(msgNotFound)
	}
	return nil
}

func (r *gormAnswerRepository) DeleteByQuestion(ctx context.Context, questionID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("question_id = ?", questionID).Delete(&model.AnswerModel{})
	if res.Error != nil {
		return 0, helper.MapDBError(res.Error, msgNotFound)
	}
	return res.RowsAffected, nil
}
