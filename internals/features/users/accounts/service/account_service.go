package service

import (
	"context"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"duomonggo_backend/internals/features/users/accounts/dto"
	"duomonggo_backend/internals/features/users/accounts/model"
	"duomonggo_backend/internals/features/users/accounts/repository"
	helper "duomonggo_backend/internals/helpers"
	"duomonggo_backend/internals/helpers/assets"
	helperAuth "duomonggo_backend/internals/helpers/auth"
)

const (
	avatarFolder      = "accounts"
	dashboardParallel = 8
)

// CompletedCounter jumlah course selesai per akun (diisi repo user_progress).
type CompletedCounter interface {
	CountCompleted(ctx context.Context, accountID uuid.UUID) (int64, error)
}

type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

type AccountService struct {
	repo      repository.AccountRepository
	uploader  assets.Uploader
	completed CompletedCounter
	token     TokenConfig
	now       func() time.Time
}

func NewAccountService(repo repository.AccountRepository, uploader assets.Uploader, completed CompletedCounter, token TokenConfig) *AccountService {
	if uploader == nil {
		uploader = assets.Disabled{}
	}
	return &AccountService{repo: repo, uploader: uploader, completed: completed, token: token, now: time.Now}
}

func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (*model.AccountModel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AccountService) List(ctx context.Context) ([]model.AccountModel, error) {
	return s.repo.List(ctx)
}

// Register: cek duplikat dulu supaya pesan jelas; constraint DB tetap jadi penjaga terakhir.
func (s *AccountService) Register(ctx context.Context, req dto.RegisterRequest) (*model.AccountModel, error) {
	req.Normalize()

	role := model.RoleUser
	if req.Role != "" {
		r, err := model.ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}

	if err := s.ensureUnique(ctx, uuid.Nil, &req.Username, &req.Email); err != nil {
		return nil, err
	}

	hash, err := helperAuth.HashPassword(req.Password)
	if err != nil {
		return nil, helper.Internal("hash password", err)
	}

	acc := &model.AccountModel{
		Username: req.Username,
		Email:    req.Email,
		Password: hash,
		Role:     role,
		Exp:      0,
	}
	if err := s.repo.Create(ctx, acc); err != nil {
		return nil, err
	}
	log.Printf("[SUCCESS] Account registered id=%s username=%s", acc.ID, acc.Username)
	return acc, nil
}

func (s *AccountService) ensureUnique(ctx context.Context, self uuid.UUID, username, email *string) error {
	if username != nil {
		other, err := s.repo.FindByUsername(ctx, *username)
		if err != nil {
			return err
		}
		if other != nil && other.ID != self {
			return helper.Conflict("Username already exists")
		}
	}
	if email != nil {
		other, err := s.repo.FindByEmail(ctx, *email)
		if err != nil {
			return err
		}
		if other != nil && other.ID != self {
			return helper.Conflict("Email already exists")
		}
	}
	return nil
}

// Authenticate tidak pernah error karena password salah; hanya false.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*model.AccountModel, bool, error) {
	acc, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	if acc == nil || !helperAuth.CheckPasswordHash(password, acc.Password) {
		return nil, false, nil
	}
	return acc, true, nil
}

func (s *AccountService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	acc, ok, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, helper.Unauthorized("Invalid username or password")
	}

	token, exp, err := helperAuth.IssueAccessToken(s.token.Secret, s.token.TTL, acc.ID, acc.Username, string(acc.Role), s.now())
	if err != nil {
		return nil, helper.Internal("issue token", err)
	}
	return &dto.LoginResponse{
		Account:     dto.FromModel(acc),
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   exp,
	}, nil
}

// Update hanya mengubah field yang dikirim.
func (s *AccountService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateAccountRequest, image *multipart.FileHeader) (*model.AccountModel, error) {
	req.Normalize()

	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, id, req.Username, req.Email); err != nil {
		return nil, err
	}

	if req.Username != nil {
		acc.Username = *req.Username
	}
	if req.Email != nil {
		acc.Email = *req.Email
	}
	if req.Role != nil {
		role, err := model.ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		acc.Role = role
	}
	if req.Exp != nil {
		if *req.Exp < 0 {
			return nil, helper.InvalidInput("exp must be greater than or equal to 0")
		}
		acc.Exp = *req.Exp
	}
	if req.Password != nil {
		hash, err := helperAuth.HashPassword(*req.Password)
		if err != nil {
			return nil, helper.Internal("hash password", err)
		}
		acc.Password = hash
	}
	if image != nil {
		url, err := s.uploader.Upload(ctx, avatarFolder, image)
		if err != nil {
			log.Printf("[ERROR] avatar upload account=%s: %v", id, err)
			return nil, assets.AsAppError(err)
		}
		acc.ImageURL = &url
	}

	if err := s.repo.Update(ctx, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Dashboard: hitungan course selesai per akun dijalankan paralel.
func (s *AccountService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	out := make([]dto.DashboardAccount, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dashboardParallel)
	g.Go(func() error {
		n, err := s.repo.Count(gctx)
		total = n
		return err
	})
	for i := range rows {
		i := i
		out[i] = dto.DashboardAccount{
			ID:        rows[i].ID,
			Username:  rows[i].Username,
			Email:     rows[i].Email,
			Exp:       rows[i].Exp,
			Role:      rows[i].Role,
			CreatedAt: rows[i].CreatedAt,
		}
		if s.completed == nil {
			continue
		}
		g.Go(func() error {
			n, err := s.completed.CountCompleted(gctx, rows[i].ID)
			if err != nil {
				return err
			}
			out[i].CompletedCourses = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{TotalUsers: total, Accounts: out}, nil
}
