package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"duomonggo_backend/internals/features/progress/enrollments/model"
	helper "duomonggo_backend/internals/helpers"
)

// ExpAdder: biasanya MemoryAccountRepository.
type ExpAdder interface {
	AddExp(ctx context.Context, id uuid.UUID, delta int) error
}

type key struct{ account, course uuid.UUID }

type MemoryEnrollmentRepository struct {
	mu   sync.Mutex
	rows map[key]model.EnrollmentModel
	exp  ExpAdder
}

func NewMemoryEnrollmentRepository(exp ExpAdder) *MemoryEnrollmentRepository {
	return &MemoryEnrollmentRepository{rows: map[key]model.EnrollmentModel{}, exp: exp}
}

func (r *MemoryEnrollmentRepository) Find(_ context.Context, accountID, courseID uuid.UUID) (*model.EnrollmentModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[key{accountID, courseID}]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *MemoryEnrollmentRepository) Start(_ context.Context, accountID, courseID uuid.UUID) (*model.EnrollmentModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{accountID, courseID}
	if row, ok := r.rows[k]; ok {
		return &row, nil
	}
	row := model.EnrollmentModel{ID: uuid.New(), AccountID: accountID, CourseID: courseID, CreatedAt: time.Now()}
	r.rows[k] = row
	return &row, nil
}

func (r *MemoryEnrollmentRepository) Complete(ctx context.Context, accountID, courseID uuid.UUID, reward int, now time.Time) (*model.EnrollmentModel, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{accountID, courseID}
	row, ok := r.rows[k]
	if !ok {
		return nil, false, helper.NotFound(msgNotFound)
	}
	if row.IsCompleted {
		return &row, false, nil
	}
	if r.exp != nil {
		if err := r.exp.AddExp(ctx, accountID, reward); err != nil {
			return nil, false, err
		}
	}
	row.IsCompleted = true
	row.CompletedAt = &now
	r.rows[k] = row
	return &row, true, nil
}
