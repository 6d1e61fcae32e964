package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"duomonggo_backend/internals/features/quizzes/answers/model"
	helper "duomonggo_backend/internals/helpers"
)

type MemoryAnswerRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]model.AnswerModel
}

func NewMemoryAnswerRepository() *MemoryAnswerRepository {
	return &MemoryAnswerRepository{rows: map[uuid.UUID]model.AnswerModel{}}
}

func (r *MemoryAnswerRepository) Create(_ context.Context, m *model.AnswerModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	next := 0
	for _, row := range r.rows {
		if row.QuestionID == m.QuestionID && row.SortOrder >= next {
			next = row.SortOrder + 1
		}
	}
	m.SortOrder = next
	r.rows[m.ID] = *m
	return nil
}

func (r *MemoryAnswerRepository) GetByID(_ context.Context, id uuid.UUID) (*model.AnswerModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, helper.NotFound(msgNotFound)
	}
	return &row, nil
}

func (r *MemoryAnswerRepository) collect(keep func(model.AnswerModel) bool) []model.AnswerModel {
	out := []model.AnswerModel{}
	for _, row := range r.rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *MemoryAnswerRepository) List(_ context.Context) ([]model.AnswerModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(model.AnswerModel) bool { return true }), nil
}

func (r *MemoryAnswerRepository) ListByQuestion(_ context.Context, questionID uuid.UUID) ([]model.AnswerModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(func(a model.AnswerModel) bool { return a.QuestionID == questionID }), nil
}

func (r *MemoryAnswerRepository) Update(_ context.Context, m *model.AnswerModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[m.ID]
	if !ok {
		return helper.NotFound(msgNotFound)
	}
	row.Content = m.Content
	row.IsCorrect = m.IsCorrect
	r.rows[m.ID] = row
	return nil
}

func (r *MemoryAnswerRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return helper.NotFound(msgNotFound)
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryAnswerRepository) DeleteByQuestion(_ context.Context, questionID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, row := range r.rows {
		if row.QuestionID == questionID {
			delete(r.rows, id)
			n++
		}
	}
	return n, nil
}
