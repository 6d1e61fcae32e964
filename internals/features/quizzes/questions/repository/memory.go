package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	answerModel "duomonggo_backend/internals/features/quizzes/answers/model"
	"duomonggo_backend/internals/features/quizzes/questions/model"
	helper "duomonggo_backend/internals/helpers"
)

type MemoryQuestionRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]model.QuestionModel
	seq  int
}

func NewMemoryQuestionRepository() *MemoryQuestionRepository {
	return &MemoryQuestionRepository{rows: map[uuid.UUID]model.QuestionModel{}}
}

func cloneAnswers(q *model.QuestionModel) []answerModel.AnswerModel {
	out := make([]answerModel.AnswerModel, len(q.Answers))
	for i, a := range q.Answers {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		a.QuestionID = q.ID
		a.SortOrder = i
		out[i] = a
	}
	return out
}

func (r *MemoryQuestionRepository) Create(_ context.Context, q *model.QuestionModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.CreatedAt.IsZero() {
		// CreatedAt unik supaya urutan sekunder stabil.
		r.seq++
		q.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Microsecond)
	}
	q.Answers = cloneAnswers(q)
	r.rows[q.ID] = *q
	return nil
}

func (r *MemoryQuestionRepository) GetByID(_ context.Context, id uuid.UUID) (*model.QuestionModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.rows[id]
	if !ok {
		return nil, helper.NotFound(msgNotFound)
	}
	q.Answers = append([]answerModel.AnswerModel(nil), q.Answers...)
	return &q, nil
}

func (r *MemoryQuestionRepository) List(_ context.Context) ([]model.QuestionModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.QuestionModel{}
	for _, q := range r.rows {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryQuestionRepository) ListByCourse(_ context.Context, courseID uuid.UUID) ([]model.QuestionModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.QuestionModel{}
	for _, q := range r.rows {
		if q.CourseID == courseID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderNumber != out[j].OrderNumber {
			return out[i].OrderNumber < out[j].OrderNumber
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryQuestionRepository) Update(_ context.Context, q *model.QuestionModel, replaceAnswers bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[q.ID]
	if !ok {
		return helper.NotFound(msgNotFound)
	}
	row.Content = q.Content
	row.QuestionType = q.QuestionType
	row.Explanation = q.Explanation
	row.OrderNumber = q.OrderNumber
	row.ImageURL = q.ImageURL
	if replaceAnswers {
		row.Answers = cloneAnswers(q)
		q.Answers = row.Answers
	}
	r.rows[q.ID] = row
	return nil
}

func (r *MemoryQuestionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return helper.NotFound(msgNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryQuestionRepository) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.rows[id]
	return ok, nil
}
