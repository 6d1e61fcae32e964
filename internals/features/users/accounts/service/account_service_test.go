package service

import (
	"context"
	"errors"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duomonggo_backend/internals/features/users/accounts/dto"
	"duomonggo_backend/internals/features/users/accounts/model"
	"duomonggo_backend/internals/features/users/accounts/repository"
	helper "duomonggo_backend/internals/helpers"
	helperAuth "duomonggo_backend/internals/helpers/auth"
)

type fakeCounter map[uuid.UUID]int64

func (f fakeCounter) CountCompleted(_ context.Context, id uuid.UUID) (int64, error) {
	return f[id], nil
}

type fakeUploader struct {
	url    string
	err    error
	folder string
}

func (f *fakeUploader) Upload(_ context.Context, folder string, _ *multipart.FileHeader) (string, error) {
	f.folder = folder
	return f.url, f.err
}

func newService(t *testing.T) (*AccountService, *repository.MemoryAccountRepository) {
	t.Helper()
	repo := repository.NewMemoryAccountRepository()
	return NewAccountService(repo, nil, fakeCounter{}, TokenConfig{Secret: "k", TTL: time.Hour}), repo
}

func register(t *testing.T, s *AccountService, username, email string) *model.AccountModel {
	t.Helper()
	acc, err := s.Register(context.Background(), dto.RegisterRequest{Username: username, Email: email, Password: "secret123"})
	require.NoError(t, err)
	return acc
}

func TestRegister_Defaults(t *testing.T) {
	s, _ := newService(t)
	acc := register(t, s, "budi", "Budi@Mail.com")

	assert.Equal(t, model.RoleUser, acc.Role)
	assert.Equal(t, 0, acc.Exp)
	assert.Equal(t, "budi@mail.com", acc.Email)
	assert.NotEqual(t, "secret123", acc.Password)
	assert.True(t, helperAuth.CheckPasswordHash("secret123", acc.Password))
}

func TestRegister_Duplicates(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		wantMsg  string
	}{
		{"same username", "budi", "other@mail.com", "Username already exists"},
		{"same email", "other", "budi@mail.com", "Email already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newService(t)
			register(t, s, "budi", "budi@mail.com")

			_, err := s.Register(context.Background(), dto.RegisterRequest{Username: tt.username, Email: tt.email, Password: "secret123"})
			assert.Equal(t, helper.KindConflict, helper.KindOf(err))
			assert.Equal(t, tt.wantMsg, helper.MessageOf(err))
		})
	}
}

func TestRegister_ConcurrentSameUsername(t *testing.T) {
	s, repo := newService(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Register(context.Background(), dto.RegisterRequest{
				Username: "race", Email: uuid.NewString() + "@mail.com", Password: "secret123",
			})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.Equal(t, helper.KindConflict, helper.KindOf(err))
		}
	}
	assert.Equal(t, 1, ok)
	n, _ := repo.Count(context.Background())
	assert.EqualValues(t, 1, n)
}

func TestRegister_InvalidRole(t *testing.T) {
	s, _ := newService(t)
	_, err := s.Register(context.Background(), dto.RegisterRequest{Username: "a1b", Email: "a@b.c", Password: "secret123", Role: "root"})
	assert.Equal(t, helper.KindInvalidInput, helper.KindOf(err))

	acc, err := s.Register(context.Background(), dto.RegisterRequest{Username: "adm", Email: "adm@b.c", Password: "secret123", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, acc.Role)
}

func TestAuthenticate(t *testing.T) {
	s, _ := newService(t)
	register(t, s, "budi", "budi@mail.com")

	_, ok, err := s.Authenticate(context.Background(), "budi", "secret123")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = s.Authenticate(context.Background(), "budi", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.Authenticate(context.Background(), "ghost", "secret123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogin_IssuesToken(t *testing.T) {
	s, _ := newService(t)
	acc := register(t, s, "budi", "budi@mail.com")

	res, err := s.Login(context.Background(), dto.LoginRequest{Username: "budi", Password: "secret123"})
	require.NoError(t, err)
	claims, err := helperAuth.ParseAccessToken("k", res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, acc.ID.String(), claims.AccountID)

	_, err = s.Login(context.Background(), dto.LoginRequest{Username: "budi", Password: "nope"})
	assert.Equal(t, helper.KindUnauthorized, helper.KindOf(err))
}

func strPtr(s string) *string { return &s }

func TestUpdate_OnlySuppliedFields(t *testing.T) {
	s, _ := newService(t)
	acc := register(t, s, "budi", "budi@mail.com")
	oldHash := acc.Password

	exp := 40
	got, err := s.Update(context.Background(), acc.ID, dto.UpdateAccountRequest{Exp: &exp}, nil)
	require.NoError(t, err)
	assert.Equal(t, "budi", got.Username)
	assert.Equal(t, "budi@mail.com", got.Email)
	assert.Equal(t, 40, got.Exp)
	assert.Equal(t, oldHash, got.Password)

	got, err = s.Update(context.Background(), acc.ID, dto.UpdateAccountRequest{Password: strPtr("newsecret"), Role: strPtr("Admin")}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.True(t, helperAuth.CheckPasswordHash("newsecret", got.Password))
}

func TestUpdate_UniquenessAgainstOthers(t *testing.T) {
	s, _ := newService(t)
	a := register(t, s, "budi", "budi@mail.com")
	register(t, s, "siti", "siti@mail.com")

	_, err := s.Update(context.Background(), a.ID, dto.UpdateAccountRequest{Username: strPtr("siti")}, nil)
	assert.Equal(t, "Username already exists", helper.MessageOf(err))

	_, err = s.Update(context.Background(), a.ID, dto.UpdateAccountRequest{Email: strPtr("siti@mail.com")}, nil)
	assert.Equal(t, "Email already exists", helper.MessageOf(err))

	// nilai milik sendiri boleh
	_, err = s.Update(context.Background(), a.ID, dto.UpdateAccountRequest{Username: strPtr("budi")}, nil)
	assert.NoError(t, err)
}

func TestUpdate_NotFound(t *testing.T) {
	s, _ := newService(t)
	_, err := s.Update(context.Background(), uuid.New(), dto.UpdateAccountRequest{Username: strPtr("x")}, nil)
	assert.True(t, helper.IsNotFound(err))
}

func TestUpdate_Avatar(t *testing.T) {
	repo := repository.NewMemoryAccountRepository()
	up := &fakeUploader{url: "https://cdn/a.webp"}
	s := NewAccountService(repo, up, nil, TokenConfig{Secret: "k", TTL: time.Hour})
	acc := register(t, s, "budi", "budi@mail.com")

	got, err := s.Update(context.Background(), acc.ID, dto.UpdateAccountRequest{}, &multipart.FileHeader{Filename: "a.png"})
	require.NoError(t, err)
	require.NotNil(t, got.ImageURL)
	assert.Equal(t, "https://cdn/a.webp", *got.ImageURL)
	assert.Equal(t, "accounts", up.folder)

	up.err = errors.New("bucket down")
	_, err = s.Update(context.Background(), acc.ID, dto.UpdateAccountRequest{}, &multipart.FileHeader{Filename: "a.png"})
	assert.Equal(t, helper.KindUpstream, helper.KindOf(err))
}

func TestDelete(t *testing.T) {
	s, _ := newService(t)
	acc := register(t, s, "budi", "budi@mail.com")

	existed, err := s.Delete(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = s.Delete(context.Background(), acc.ID)
	require.NoError(t, err)
	assert.False(t, existed)

	_, err = s.Get(context.Background(), acc.ID)
	assert.True(t, helper.IsNotFound(err))
}

func TestDashboard(t *testing.T) {
	repo := repository.NewMemoryAccountRepository()
	counter := fakeCounter{}
	s := NewAccountService(repo, nil, counter, TokenConfig{Secret: "k", TTL: time.Hour})
	a := register(t, s, "budi", "budi@mail.com")
	b := register(t, s, "siti", "siti@mail.com")
	counter[a.ID] = 3
	counter[b.ID] = 1

	res, err := s.Dashboard(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.TotalUsers)
	require.Len(t, res.Accounts, 2)

	byID := map[uuid.UUID]int64{}
	for _, row := range res.Accounts {
		byID[row.ID] = row.CompletedCourses
	}
	assert.EqualValues(t, 3, byID[a.ID])
	assert.EqualValues(t, 1, byID[b.ID])
}
