package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"duomonggo_backend/internals/features/courses/courses/model"
	helper "duomonggo_backend/internals/helpers"
)

type MemoryCourseRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]model.CourseModel
}

func NewMemoryCourseRepository() *MemoryCourseRepository {
	return &MemoryCourseRepository{rows: map[uuid.UUID]model.CourseModel{}}
}

func (r *MemoryCourseRepository) Create(_ context.Context, m *model.CourseModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.rows[m.ID] = *m
	return nil
}

func (r *MemoryCourseRepository) GetByID(_ context.Context, id uuid.UUID) (*model.CourseModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, helper.NotFound(msgNotFound)
	}
	return &row, nil
}

func (r *MemoryCourseRepository) List(_ context.Context, f Filter) ([]model.CourseModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.CourseModel{}
	for _, row := range r.rows {
		if f.Difficulty != nil && row.Difficulty != *f.Difficulty {
			continue
		}
		if f.Type != nil && row.CourseType != *f.Type {
			continue
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryCourseRepository) Update(_ context.Context, m *model.CourseModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.rows[m.ID]
	if !ok {
		return helper.NotFound(msgNotFound)
	}
	m.CreatedAt = old.CreatedAt
	r.rows[m.ID] = *m
	return nil
}

func (r *MemoryCourseRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return helper.NotFound(msgNotFound)
	}
	delete(r.rows, id)
	return nil
}
