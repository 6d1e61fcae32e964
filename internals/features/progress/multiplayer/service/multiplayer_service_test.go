package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModel "duomonggo_backend/internals/features/courses/courses/model"
	courseRepo "duomonggo_backend/internals/features/courses/courses/repository"
	"duomonggo_backend/internals/features/progress/multiplayer/ranking"
	"duomonggo_backend/internals/features/progress/multiplayer/repository"
	accountModel "duomonggo_backend/internals/features/users/accounts/model"
	accountRepo "duomonggo_backend/internals/features/users/accounts/repository"
	helper "duomonggo_backend/internals/helpers"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	svc      *MultiplayerService
	clock    *clock
	accounts *accountRepo.MemoryAccountRepository
	courses  *courseRepo.MemoryCourseRepository
	sari     uuid.UUID
	race     uuid.UUID
}

func newFixture(t *testing.T, store ranking.Store) fixture {
	t.Helper()
	ctx := context.Background()
	accounts := accountRepo.NewMemoryAccountRepository()
	courses := courseRepo.NewMemoryCourseRepository()

	acc := &accountModel.AccountModel{Username: "sari", Email: "sari@example.com", Password: "x", Role: accountModel.RoleUser}
	require.NoError(t, accounts.Create(ctx, acc))

	clk := &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	deadline := clk.t.Add(24 * time.Hour)
	race := &courseModel.CourseModel{Title: "Race", Difficulty: courseModel.DifficultyHard, CourseType: courseModel.CourseMultiplayer, Deadline: &deadline}
	require.NoError(t, courses.Create(ctx, race))

	svc := NewMultiplayerService(repository.NewMemoryMultiplayerRepository(accounts), accounts, courses, store)
	svc.now = clk.now
	return fixture{svc: svc, clock: clk, accounts: accounts, courses: courses, sari: acc.ID, race: race.ID}
}

func (f fixture) addAccount(t *testing.T, name string) uuid.UUID {
	t.Helper()
	acc := &accountModel.AccountModel{Username: name, Email: name + "@example.com", Password: "x", Role: accountModel.RoleUser}
	require.NoError(t, f.accounts.Create(context.Background(), acc))
	return acc.ID
}

func TestStart_Guards(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	single := &courseModel.CourseModel{Title: "Solo", Difficulty: courseModel.DifficultyEasy, CourseType: courseModel.CourseSingleplayer}
	require.NoError(t, f.courses.Create(ctx, single))
	_, err := f.svc.Start(ctx, f.sari, single.ID)
	assert.Equal(t, "This is not a multiplayer course", helper.MessageOf(err))
	assert.Equal(t, helper.KindBusinessRule, helper.KindOf(err))

	_, err = f.svc.Start(ctx, uuid.New(), f.race)
	assert.True(t, helper.IsNotFound(err))

	_, err = f.svc.Start(ctx, f.sari, uuid.New())
	assert.True(t, helper.IsNotFound(err))

	row, err := f.svc.Start(ctx, f.sari, f.race)
	require.NoError(t, err)
	assert.Equal(t, f.clock.t, row.StartedAt)
	assert.Nil(t, row.CompletedAt)

	_, err = f.svc.Start(ctx, f.sari, f.race)
	assert.Equal(t, "You have already enrolled in this multiplayer course", helper.MessageOf(err))
}

func TestStart_DeadlinePassed(t *testing.T) {
	f := newFixture(t, nil)
	f.clock.advance(25 * time.Hour)

	_, err := f.svc.Start(context.Background(), f.sari, f.race)
	assert.Equal(t, "Course deadline has passed", helper.MessageOf(err))
	assert.Equal(t, helper.KindBusinessRule, helper.KindOf(err))
}

func TestCompleteAndCompletionTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	_, err := f.svc.Complete(ctx, f.sari, f.race)
	assert.True(t, helper.IsNotFound(err))
	_, err = f.svc.CompletionTime(ctx, f.sari, f.race)
	assert.True(t, helper.IsNotFound(err))

	done, err := f.svc.IsCompleted(ctx, f.sari, f.race)
	require.NoError(t, err)
	assert.False(t, done)

	_, err = f.svc.Start(ctx, f.sari, f.race)
	require.NoError(t, err)
	_, err = f.svc.CompletionTime(ctx, f.sari, f.race)
	assert.Equal(t, "Course not yet completed", helper.MessageOf(err))

	f.clock.advance(125 * time.Second)
	row, err := f.svc.Complete(ctx, f.sari, f.race)
	require.NoError(t, err)
	require.NotNil(t, row.CompletedAt)

	secs, err := f.svc.CompletionTime(ctx, f.sari, f.race)
	require.NoError(t, err)
	assert.EqualValues(t, 125, secs)

	done, err = f.svc.IsCompleted(ctx, f.sari, f.race)
	require.NoError(t, err)
	assert.True(t, done)

	_, err = f.svc.Complete(ctx, f.sari, f.race)
	assert.Equal(t, "Course already completed", helper.MessageOf(err))
	assert.Equal(t, helper.KindBusinessRule, helper.KindOf(err))
}

func (f fixture) finishRace(t *testing.T, account uuid.UUID, d time.Duration) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.Start(ctx, account, f.race)
	require.NoError(t, err)
	f.clock.advance(d)
	_, err = f.svc.Complete(ctx, account, f.race)
	require.NoError(t, err)
}

func TestLeaderboardAndRanking_WithoutRedis(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	budi := f.addAccount(t, "budi")

	f.finishRace(t, f.sari, 300*time.Second)
	f.finishRace(t, budi, 90*time.Second)

	board, err := f.svc.Leaderboard(ctx, f.race)
	require.NoError(t, err)
	assert.Len(t, board, 2)

	out, err := f.svc.Ranking(ctx, f.race, 0)
	require.NoError(t, err)
	assert.Equal(t, SourceDatabase, out.Source)
	require.Len(t, out.Entries, 2)
	assert.Equal(t, "budi", out.Entries[0].Username)
	assert.EqualValues(t, 90, out.Entries[0].CompletionTime)
	assert.Equal(t, 1, out.Entries[0].Rank)
	assert.Equal(t, "sari", out.Entries[1].Username)

	out, err = f.svc.Ranking(ctx, f.race, 1)
	require.NoError(t, err)
	assert.Len(t, out.Entries, 1)

	_, err = f.svc.Leaderboard(ctx, uuid.New())
	assert.True(t, helper.IsNotFound(err))
}

func TestRanking_RedisRecordAndRebuild(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := ranking.NewRedisRanking(client)

	f := newFixture(t, store)
	budi := f.addAccount(t, "budi")
	f.finishRace(t, f.sari, 200*time.Second)
	f.finishRace(t, budi, 50*time.Second)

	// Complete sudah menulis ke Redis
	out, err := f.svc.Ranking(ctx, f.race, 10)
	require.NoError(t, err)
	assert.Equal(t, SourceRedis, out.Source)
	require.Len(t, out.Entries, 2)
	assert.Equal(t, budi, out.Entries[0].AccountID)

	mr.FlushAll()
	out, err = f.svc.Ranking(ctx, f.race, 10)
	require.NoError(t, err)
	assert.Equal(t, SourceDatabase, out.Source)

	// fallback tadi sekaligus mengisi ulang cache
	out, err = f.svc.Ranking(ctx, f.race, 10)
	require.NoError(t, err)
	assert.Equal(t, SourceRedis, out.Source)

	mr.FlushAll()
	n, err := f.svc.RebuildAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.True(t, mr.Exists(ranking.ScoreKey(f.race)))
}

func TestComplete_ColdCacheFillsFromDatabase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	for i, name := range []string{"budi", "ani", "joko"} {
		f.finishRace(t, f.addAccount(t, name), time.Duration(100+i*10)*time.Second)
	}

	// Redis baru dinyalakan, cache course masih kosong
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	f.svc.ranking = ranking.NewRedisRanking(client)

	f.finishRace(t, f.sari, 40*time.Second)

	board, err := f.svc.Leaderboard(ctx, f.race)
	require.NoError(t, err)
	require.Len(t, board, 4)

	out, err := f.svc.Ranking(ctx, f.race, 0)
	require.NoError(t, err)
	assert.Equal(t, SourceRedis, out.Source)
	require.Len(t, out.Entries, 4)
	assert.Equal(t, "sari", out.Entries[0].Username)
	assert.Equal(t, "budi", out.Entries[1].Username)
	assert.Equal(t, "joko", out.Entries[3].Username)
}

func TestRebuildAll_NoStore(t *testing.T) {
	f := newFixture(t, nil)
	n, err := f.svc.RebuildAll(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
