package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"duomonggo_backend/internals/features/users/accounts/model"
	helper "duomonggo_backend/internals/helpers"
)

const msgNotFound = "Account not found"

type AccountRepository interface {
	Create(ctx context.Context, m *model.AccountModel) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.AccountModel, error)
	// FindByUsername/FindByEmail: (nil, nil) kalau tidak ada.
	FindByUsername(ctx context.Context, username string) (*model.AccountModel, error)
	FindByEmail(ctx context.Context, email string) (*model.AccountModel, error)
	List(ctx context.Context) ([]model.AccountModel, error)
	Update(ctx context.Context, m *model.AccountModel) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)
	AddExp(ctx context.Context, id uuid.UUID, delta int) error
}

type gormAccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &gormAccountRepository{db: db}
}

func (r *gormAccountRepository) Create(ctx context.Context, m *model.AccountModel) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return helper.MapDBError(r.db.WithContext(ctx).Create(m).Error, msgNotFound)
}

func (r *gormAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.AccountModel, error) {
	var m model.AccountModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return &m, nil
}

func (r *gormAccountRepository) findOne(ctx context.Context, col, val string) (*model.AccountModel, error) {
	var m model.AccountModel
	err := r.db.WithContext(ctx).Where(col+" = ?", val).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return &m, nil
}

func (r *gormAccountRepository) FindByUsername(ctx context.Context, username string) (*model.AccountModel, error) {
	return r.findOne(ctx, "username", username)
}

func (r *gormAccountRepository) FindByEmail(ctx context.Context, email string) (*model.AccountModel, error) {
	return r.findOne(ctx, "email", email)
}

func (r *gormAccountRepository) List(ctx context.Context) ([]model.AccountModel, error) {
	var rows []model.AccountModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, helper.MapDBError(err, msgNotFound)
	}
	return rows, nil
}

func (r *gormAccountRepository) Update(ctx context.Context, m *model.AccountModel) error {
	res := r.db.WithContext(ctx).Model(&model.AccountModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"username":  m.Username,
			"email":     m.Email,
			"password":  m.Password,
			"image_url": m.ImageURL,
			"role":      m.Role,
			"exp":       m.Exp,
		})
	if res.Error != nil {
		return helper.MapDBError(res.Error, msgNotFound)
	}
	if res.RowsAffected == 0 {
		return helper.NotFound(msgNotFound)
	}
	return nil
}

// Delete hapus baris turunan dulu baru akun, dalam satu transaksi.
func (r *gormAccountRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var existed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"user_progress", "enrollments", "multiplayer_sessions"} {
			if err := tx.Exec("DELETE FROM "+table+" WHERE account_id = ?", id).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&model.AccountModel{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		existed = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, helper.MapDBError(err, msgNotFound)
	}
	return existed, nil
}

func (r *gormAccountRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.AccountModel{}).Count(&n).Error; err != nil {
		return 0, helper.MapDBError(err, msgNotFound)
	}
	return n, nil
}

func (r *gormAccountRepository) AddExp(ctx context.Context, id uuid.UUID, delta int) error {
	return IncrementExp(r.db.WithContext(ctx), id, delta)
}

// IncrementExp dipakai tracker di dalam transaksinya sendiri.
func IncrementExp(tx *gorm.DB, id uuid.UUID, delta int) error {
	if delta == 0 {
		return nil
	}
	res := tx.Model(&model.AccountModel{}).
		Where("id = ?", id).
		Update("exp", gorm.Expr("exp + ?", delta))
	if res.Error != nil {
		return helper.MapDBError(res.Error, msgNotFound)
	}
	if res.RowsAffected == 0 {
		return helper.NotFound(msgNotFound)
	}
	return nil
}
