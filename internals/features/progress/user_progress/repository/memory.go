package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"duomonggo_backend/internals/features/progress/user_progress/model"
	helper "duomonggo_backend/internals/helpers"
)

type ExpAdder interface {
	AddExp(ctx context.Context, id uuid.UUID, delta int) error
}

type key struct{ account, course uuid.UUID }

type MemoryUserProgressRepository struct {
	mu   sync.Mutex
	rows map[key]model.UserProgressModel
	exp  ExpAdder
	seq  int
}

func NewMemoryUserProgressRepository(exp ExpAdder) *MemoryUserProgressRepository {
	return &MemoryUserProgressRepository{rows: map[key]model.UserProgressModel{}, exp: exp}
}

func (r *MemoryUserProgressRepository) Find(_ context.Context, accountID, courseID uuid.UUID) (*model.UserProgressModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[key{accountID, courseID}]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *MemoryUserProgressRepository) Start(_ context.Context, accountID, courseID uuid.UUID) (*model.UserProgressModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{accountID, courseID}
	if row, ok := r.rows[k]; ok {
		return &row, nil
	}
	r.seq++
	now := time.Now().Add(time.Duration(r.seq) * time.Microsecond)
	row := model.UserProgressModel{ID: uuid.New(), AccountID: accountID, CourseID: courseID, CreatedAt: now, UpdatedAt: now}
	r.rows[k] = row
	return &row, nil
}

func (r *MemoryUserProgressRepository) filter(keep func(model.UserProgressModel) bool) []model.UserProgressModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.UserProgressModel{}
	for _, row := range r.rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *MemoryUserProgressRepository) List(context.Context) ([]model.UserProgressModel, error) {
	return r.filter(func(model.UserProgressModel) bool { return true }), nil
}

func (r *MemoryUserProgressRepository) ListByAccount(_ context.Context, accountID uuid.UUID) ([]model.UserProgressModel, error) {
	return r.filter(func(p model.UserProgressModel) bool { return p.AccountID == accountID }), nil
}

func (r *MemoryUserProgressRepository) ListByCourse(_ context.Context, courseID uuid.UUID) ([]model.UserProgressModel, error) {
	return r.filter(func(p model.UserProgressModel) bool { return p.CourseID == courseID }), nil
}

func (r *MemoryUserProgressRepository) UpdateCounts(_ context.Context, accountID, courseID uuid.UUID, c Counts, now time.Time) (*model.UserProgressModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{accountID, courseID}
	row, ok := r.rows[k]
	if !ok {
		return nil, helper.NotFound(msgNotFound)
	}
	row.CorrectAnswers = c.CorrectAnswers
	row.TotalQuestions = c.TotalQuestions
	row.LastQuestionIndex = c.LastQuestionIndex
	row.UpdatedAt = now
	r.rows[k] = row
	return &row, nil
}

func (r *MemoryUserProgressRepository) Complete(ctx context.Context, accountID, courseID uuid.UUID, correct, total, expGain int, now time.Time) (*model.UserProgressModel, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{accountID, courseID}
	row, ok := r.rows[k]
	if !ok {
		return nil, false, helper.NotFound(msgNotFound)
	}
	awarded := false
	if !row.Completed {
		if r.exp != nil {
			if err := r.exp.AddExp(ctx, accountID, expGain); err != nil {
				return nil, false, err
			}
		}
		row.Completed = true
		row.ExpGained = expGain
		row.CompletedAt = &now
		awarded = true
	}
	row.CorrectAnswers = correct
	row.TotalQuestions = total
	row.UpdatedAt = now
	r.rows[k] = row
	return &row, awarded, nil
}

func (r *MemoryUserProgressRepository) CountCompleted(_ context.Context, accountID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, row := range r.rows {
		if row.AccountID == accountID && row.Completed {
			n++
		}
	}
	return n, nil
}

func (r *MemoryUserProgressRepository) SumExp(_ context.Context, accountID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, row := range r.rows {
		if row.AccountID == accountID {
			total += int64(row.ExpGained)
		}
	}
	return total, nil
}
