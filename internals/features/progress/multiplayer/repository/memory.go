package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"duomonggo_backend/internals/features/progress/multiplayer/model"
	accountModel "duomonggo_backend/internals/features/users/accounts/model"
	helper "duomonggo_backend/internals/helpers"
)

// AccountGetter dipakai untuk mengisi username di ListCompleted.
type AccountGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error)
}

type key struct{ account, course uuid.UUID }

type MemoryMultiplayerRepository struct {
	mu       sync.Mutex
	rows     map[key]model.MultiplayerModel
	accounts AccountGetter
}

func NewMemoryMultiplayerRepository(accounts AccountGetter) *MemoryMultiplayerRepository {
	return &MemoryMultiplayerRepository{rows: map[key]model.MultiplayerModel{}, accounts: accounts}
}

func (r *MemoryMultiplayerRepository) Find(_ context.Context, accountID, courseID uuid.UUID) (*model.MultiplayerModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[key{accountID, courseID}]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (r *MemoryMultiplayerRepository) Create(_ context.Context, m *model.MultiplayerModel) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{m.AccountID, m.CourseID}
	if _, ok := r.rows[k]; ok {
		return false, nil
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.rows[k] = *m
	return true, nil
}

func (r *MemoryMultiplayerRepository) Complete(_ context.Context, accountID, courseID uuid.UUID, now time.Time) (*model.MultiplayerModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key{accountID, courseID}
	row, ok := r.rows[k]
	if !ok {
		return nil, helper.NotFound(msgNoAttempt)
	}
	if row.IsCompleted() {
		return nil, helper.BusinessRule(msgAlreadyCompleted)
	}
	row.CompletedAt = &now
	r.rows[k] = row
	return &row, nil
}

func (r *MemoryMultiplayerRepository) ListCompleted(ctx context.Context, courseID uuid.UUID) ([]CompletionRow, error) {
	r.mu.Lock()
	var done []model.MultiplayerModel
	for _, row := range r.rows {
		if row.CourseID == courseID && row.IsCompleted() {
			done = append(done, row)
		}
	}
	r.mu.Unlock()

	out := make([]CompletionRow, 0, len(done))
	for _, row := range done {
		username := ""
		if r.accounts != nil {
			if acc, err := r.accounts.GetByID(ctx, row.AccountID); err == nil {
				username = acc.Username
			}
		}
		out = append(out, CompletionRow{
			AccountID:   row.AccountID,
			Username:    username,
			StartedAt:   row.StartedAt,
			CompletedAt: *row.CompletedAt,
		})
	}
	return out, nil
}
