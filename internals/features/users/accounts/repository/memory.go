package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"duomonggo_backend/internals/features/users/accounts/model"
	helper "duomonggo_backend/internals/helpers"
)

// MemoryAccountRepository in-process, dipakai test service & controller.
type MemoryAccountRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]model.AccountModel
}

func NewMemoryAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{rows: map[uuid.UUID]model.AccountModel{}}
}

func (r *MemoryAccountRepository) uniqueLocked(m *model.AccountModel) error {
	for id, row := range r.rows {
		if id == m.ID {
			continue
		}
		if row.Username == m.Username {
			return helper.Conflict("Username already exists")
		}
		if row.Email == m.Email {
			return helper.Conflict("Email already exists")
		}
	}
	return nil
}

func (r *MemoryAccountRepository) Create(_ context.Context, m *model.AccountModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := r.uniqueLocked(m); err != nil {
		return err
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.rows[m.ID] = *m
	return nil
}

func (r *MemoryAccountRepository) GetByID(_ context.Context, id uuid.UUID) (*model.AccountModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, helper.NotFound(msgNotFound)
	}
	return &row, nil
}

func (r *MemoryAccountRepository) find(match func(model.AccountModel) bool) *model.AccountModel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, row := range r.rows {
		if match(row) {
			out := row
			return &out
		}
	}
	return nil
}

func (r *MemoryAccountRepository) FindByUsername(_ context.Context, username string) (*model.AccountModel, error) {
	return r.find(func(m model.AccountModel) bool { return m.Username == username }), nil
}

func (r *MemoryAccountRepository) FindByEmail(_ context.Context, email string) (*model.AccountModel, error) {
	return r.find(func(m model.AccountModel) bool { return m.Email == email }), nil
}

func (r *MemoryAccountRepository) List(_ context.Context) ([]model.AccountModel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.AccountModel, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryAccountRepository) Update(_ context.Context, m *model.AccountModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.rows[m.ID]
	if !ok {
		return helper.NotFound(msgNotFound)
	}
	if err := r.uniqueLocked(m); err != nil {
		return err
	}
	m.CreatedAt = old.CreatedAt
	r.rows[m.ID] = *m
	return nil
}

func (r *MemoryAccountRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return false, nil
	}
	delete(r.rows, id)
	return true, nil
}

func (r *MemoryAccountRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.rows)), nil
}

func (r *MemoryAccountRepository) AddExp(_ context.Context, id uuid.UUID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return helper.NotFound(msgNotFound)
	}
	row.Exp += delta
	r.rows[id] = row
	return nil
}
