package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModel "duomonggo_backend/internals/features/courses/courses/model"
	courseRepo "duomonggo_backend/internals/features/courses/courses/repository"
	"duomonggo_backend/internals/features/progress/enrollments/repository"
	accountModel "duomonggo_backend/internals/features/users/accounts/model"
	accountRepo "duomonggo_backend/internals/features/users/accounts/repository"
	helper "duomonggo_backend/internals/helpers"
)

type fixture struct {
	svc       *EnrollmentService
	accounts  *accountRepo.MemoryAccountRepository
	accountID uuid.UUID
	courseID  uuid.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	accounts := accountRepo.NewMemoryAccountRepository()
	courses := courseRepo.NewMemoryCourseRepository()

	acc := &accountModel.AccountModel{Username: "budi", Email: "budi@example.com", Password: "x", Role: accountModel.RoleUser}
	require.NoError(t, accounts.Create(ctx, acc))
	c := &courseModel.CourseModel{Title: "Go", Difficulty: courseModel.DifficultyEasy, CourseType: courseModel.CourseSingleplayer, ExpReward: 40}
	require.NoError(t, courses.Create(ctx, c))

	svc := NewEnrollmentService(repository.NewMemoryEnrollmentRepository(accounts), accounts, courses)
	return fixture{svc: svc, accounts: accounts, accountID: acc.ID, courseID: c.ID}
}

func (f fixture) exp(t *testing.T) int {
	acc, err := f.accounts.GetByID(context.Background(), f.accountID)
	require.NoError(t, err)
	return acc.Exp
}

func TestStart_UnknownIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, uuid.New(), f.courseID)
	assert.Equal(t, "Account not found", helper.MessageOf(err))

	_, err = f.svc.Start(ctx, f.accountID, uuid.New())
	assert.Equal(t, "Course not found", helper.MessageOf(err))
}

func TestStart_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Start(ctx, f.accountID, f.courseID)
	require.NoError(t, err)
	assert.False(t, first.IsCompleted)

	second, err := f.svc.Start(ctx, f.accountID, f.courseID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestComplete_WithoutStart(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Complete(context.Background(), f.accountID, f.courseID)
	assert.True(t, helper.IsNotFound(err))
	assert.Equal(t, "Enrollment not found", helper.MessageOf(err))
}

func TestComplete_AwardsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	done, err := f.svc.IsCompleted(ctx, f.accountID, f.courseID)
	require.NoError(t, err)
	assert.False(t, done)

	_, err = f.svc.Start(ctx, f.accountID, f.courseID)
	require.NoError(t, err)

	row, err := f.svc.Complete(ctx, f.accountID, f.courseID)
	require.NoError(t, err)
	assert.True(t, row.IsCompleted)
	assert.NotNil(t, row.CompletedAt)
	assert.Equal(t, 40, f.exp(t))

	_, err = f.svc.Complete(ctx, f.accountID, f.courseID)
	require.NoError(t, err)
	assert.Equal(t, 40, f.exp(t))

	done, err = f.svc.IsCompleted(ctx, f.accountID, f.courseID)
	require.NoError(t, err)
	assert.True(t, done)
}
