package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"duomonggo_backend/internals/features/courses/courses/model"
	helper "duomonggo_backend/internals/helpers"
)

const msgNotFound = "Course not found"

type Filter struct {
	Difficulty *model.Difficulty
	Type       *model.CourseType
}

type CourseRepository interface {
	Create(ctx context.Context, m *model.CourseModel) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.CourseModel, error)
	List(ctx context.Context, f Filter) ([]model.CourseModel, error)
	Update(ctx context.Context, m *model.CourseModel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormCourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &gormCourseRepository{db: db}
}

func (r *gormCourseRepository) Create(ctx context.Context, m *model.CourseModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return helper.MapDBError(r.db.WithContext(ctx).Create(m).Error, msgNotFound)
}

func (r *gormCourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CourseModel, error) {
	var m model.CourseModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return &m, nil
}

func (r *gormCourseRepository) List(ctx context.Context, f Filter) ([]model.CourseModel, error) {
	q := r.db.WithContext(ctx).Model(&model.CourseModel{})
	if f.Difficulty != nil {
		q = q.Where("difficulty = ?", *f.Difficulty)
	}
	if f.Type != nil {
		q = q.Where("course_type = ?", *f.Type)
	}
	var rows []model.CourseModel
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return rows, nil
}

func (r *gormCourseRepository) Update(ctx context.Context, m *model.CourseModel) error {
	res := r.db.WithContext(ctx).Model(&model.CourseModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"title":       m.Title,
			"description": m.Description,
			"difficulty":  m.Difficulty,
			"exp_reward":  m.ExpReward,
			"course_type": m.CourseType,
			"deadline":    m.Deadline,
		})
	if res.Error != nil {
		return helper.MapDBError(res.Error, msgNotFound)
	}
	if res.RowsAffected == 0 {
		return helper.NotFound(msgNotFound)
	}
	return nil
}

// Delete: answers -> questions -> join rows -> course, satu transaksi.
func (r *gormCourseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stmts := []string{
			"DELETE FROM answers WHERE question_id IN (SELECT id FROM questions WHERE course_id = ?)",
			"DELETE FROM questions WHERE course_id = ?",
			"DELETE FROM enrollments WHERE course_id = ?",
			"DELETE FROM multiplayer_sessions WHERE course_id = ?",
			"DELETE FROM user_progress WHERE course_id = ?",
		}
		for _, s := range stmts {
			if err := tx.Exec(s, id).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&model.CourseModel{}, "id = ?", id)
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
