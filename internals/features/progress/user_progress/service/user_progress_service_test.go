package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModel "duomonggo_backend/internals/features/courses/courses/model"
	courseRepo "duomonggo_backend/internals/features/courses/courses/repository"
	"duomonggo_backend/internals/features/progress/user_progress/repository"
	accountModel "duomonggo_backend/internals/features/users/accounts/model"
	accountRepo "duomonggo_backend/internals/features/users/accounts/repository"
	helper "duomonggo_backend/internals/helpers"
)

func TestCalculateExpReward(t *testing.T) {
	tests := []struct {
		name                   string
		reward, correct, total int
		want                   int
	}{
		{"seventy percent", 100, 7, 10, 70},
		{"no questions", 100, 5, 0, 0},
		{"rounds half up", 5, 1, 2, 3},
		{"rounds down", 10, 1, 3, 3},
		{"perfect", 45, 9, 9, 45},
		{"zero correct", 80, 0, 4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateExpReward(tt.reward, tt.correct, tt.total))
		})
	}
}

type fixture struct {
	svc       *UserProgressService
	accounts  *accountRepo.MemoryAccountRepository
	accountID uuid.UUID
	courseID  uuid.UUID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	accounts := accountRepo.NewMemoryAccountRepository()
	courses := courseRepo.NewMemoryCourseRepository()

	acc := &accountModel.AccountModel{Username: "sari", Email: "sari@example.com", Password: "x", Role: accountModel.RoleUser}
	require.NoError(t, accounts.Create(ctx, acc))
	c := &courseModel.CourseModel{Title: "Go", Difficulty: courseModel.DifficultyMedium, CourseType: courseModel.CourseSingleplayer, ExpReward: 100}
	require.NoError(t, courses.Create(ctx, c))

	return fixture{
		svc:       NewUserProgressService(repository.NewMemoryUserProgressRepository(accounts), accounts, courses),
		accounts:  accounts,
		accountID: acc.ID,
		courseID:  c.ID,
	}
}

func (f fixture) exp(t *testing.T) int {
	acc, err := f.accounts.GetByID(context.Background(), f.accountID)
	require.NoError(t, err)
	return acc.Exp
}

func TestStart_IdempotentAndChecksIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, uuid.New(), f.courseID)
	assert.Equal(t, "Account not found", helper.MessageOf(err))
	_, err = f.svc.Start(ctx, f.accountID, uuid.New())
	assert.Equal(t, "Course not found", helper.MessageOf(err))

	a, err := f.svc.Start(ctx, f.accountID, f.courseID)
	require.NoError(t, err)
	assert.Zero(t, a.CorrectAnswers)
	b, err := f.svc.Start(ctx, f.accountID, f.courseID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
}

func TestUpdate_RequiresProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Update(ctx, f.accountID, f.courseID, repository.Counts{CorrectAnswers: 1})
	assert.Equal(t, "Progress not found", helper.MessageOf(err))

	_, err = f.svc.Start(ctx, f.accountID, f.courseID)
	require.NoError(t, err)
	row, err := f.svc.Update(ctx, f.accountID, f.courseID, repository.Counts{CorrectAnswers: 2, TotalQuestions: 5, LastQuestionIndex: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, row.CorrectAnswers)
	assert.Equal(t, 3, row.LastQuestionIndex)
	assert.False(t, row.Completed)
}

func TestComplete_IdempotentAward(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Complete(ctx, f.accountID, f.courseID, 7, 10)
	assert.True(t, helper.IsNotFound(err))

	_, err = f.svc.Start(ctx, f.accountID, f.courseID)
	require.NoError(t, err)

	row, err := f.svc.Complete(ctx, f.accountID, f.courseID, 7, 10)
	require.NoError(t, err)
	assert.True(t, row.Completed)
	assert.Equal(t, 70, row.ExpGained)
	assert.NotNil(t, row.CompletedAt)
	assert.Equal(t, 70, f.exp(t))

	// ulang: exp tetap, hitungan jawaban disimpan ulang
	row, err = f.svc.Complete(ctx, f.accountID, f.courseID, 9, 10)
	require.NoError(t, err)
	assert.Equal(t, 70, row.ExpGained)
	assert.Equal(t, 9, row.CorrectAnswers)
	assert.Equal(t, 70, f.exp(t))

	stats, err := f.svc.Stats(ctx, f.accountID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.CompletedCourses)
	assert.EqualValues(t, 70, stats.TotalExp)
}

func TestComplete_ZeroQuestions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Start(ctx, f.accountID, f.courseID)
	require.NoError(t, err)

	row, err := f.svc.Complete(ctx, f.accountID, f.courseID, 5, 0)
	require.NoError(t, err)
	assert.Zero(t, row.ExpGained)
	assert.Zero(t, f.exp(t))
}

func TestStats_Empty(t *testing.T) {
	f := newFixture(t)
	stats, err := f.svc.Stats(context.Background(), f.accountID)
	require.NoError(t, err)
	assert.Zero(t, stats.CompletedCourses)
	assert.Zero(t, stats.TotalExp)
}

func TestLists(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.Start(ctx, f.accountID, f.courseID)
	require.NoError(t, err)

	all, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	byAcc, err := f.svc.ListByAccount(ctx, f.accountID)
	require.NoError(t, err)
	assert.Len(t, byAcc, 1)

	byCourse, err := f.svc.ListByCourse(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, byCourse)
}
