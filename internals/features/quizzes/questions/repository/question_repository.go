package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	answerModel "duomonggo_backend/internals/features/quizzes/answers/model"
	"duomonggo_backend/internals/features/quizzes/questions/model"
	helper "duomonggo_backend/internals/helpers"
)

const msgNotFound = "Question not found"

type QuestionRepository interface {
	// Create menyimpan soal + Answers dalam satu transaksi.
	Create(ctx context.Context, q *model.QuestionModel) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.QuestionModel, error)
	List(ctx context.Context) ([]model.QuestionModel, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.QuestionModel, error)
	// Update: replaceAnswers=true -> jawaban lama dihapus lalu diganti q.Answers.
	Update(ctx context.Context, q *model.QuestionModel, replaceAnswers bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type gormQuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &gormQuestionRepository{db: db}
}

func orderedAnswers(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC, created_at ASC")
}

func insertAnswers(tx *gorm.DB, q *model.QuestionModel) error {
	if len(q.Answers) == 0 {
		return nil
	}
	for i := range q.Answers {
		if q.Answers[i].ID == uuid.Nil {
			q.Answers[i].ID = uuid.New()
		}
		q.Answers[i].QuestionID = q.ID
		q.Answers[i].SortOrder = i
	}
	return tx.Create(&q.Answers).Error
}

func (r *gormQuestionRepository) Create(ctx context.Context, q *model.QuestionModel) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Answers").Create(q).Error; err != nil {
			return err
		}
		return insertAnswers(tx, q)
	})
	return helper.MapDBError(err, msgNotFound)
}

func (r *gormQuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.QuestionModel, error) {
	var q model.QuestionModel
	if err := r.db.WithContext(ctx).
		Preload("Answers", orderedAnswers).
		First(&q, "id = ?", id).Error; err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return &q, nil
}

func (r *gormQuestionRepository) List(ctx context.Context) ([]model.QuestionModel, error) {
	var rows []model.QuestionModel
	if err := r.db.WithContext(ctx).
		Preload("Answers", orderedAnswers).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return rows, nil
}

// ListByCourse selalu urut order_number ASC (urutan main single-player).
func (r *gormQuestionRepository) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.QuestionModel, error) {
	var rows []model.QuestionModel
	if err := r.db.WithContext(ctx).
		Preload("Answers", orderedAnswers).
		Where("course_id = ?", courseID).
		Order("order_number ASC, created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return rows, nil
}

func (r *gormQuestionRepository) Update(ctx context.Context, q *model.QuestionModel, replaceAnswers bool) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.QuestionModel{}).
			Where("id = ?", q.ID).
			Updates(map[string]interface{}{
				"content":       q.Content,
				"question_type": q.QuestionType,
				"explanation":   q.Explanation,
				"order_number":  q.OrderNumber,
				"image_url":     q.ImageURL,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.NotFound(msgNotFound)
		}
		if !replaceAnswers {
			return nil
		}
		if err := tx.Where("question_id = ?", q.ID).Delete(&answerModel.AnswerModel{}).Error; err != nil {
			return err
		}
		return insertAnswers(tx, q)
	})
	return helper.MapDBError(err, msgNotFound)
}

func (r *gormQuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&answerModel.AnswerModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.QuestionModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return helper.NotFound(msgNotFound)
		}
		return nil
	})
	return helper.MapDBError(err, msgNotFound)
}

func (r *gormQuestionRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.QuestionModel{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, helper.MapDBError(err, msgNotFound)
	}
	return n > 0, nil
}
