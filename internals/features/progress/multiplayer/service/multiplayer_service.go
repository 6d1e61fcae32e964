package service

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	courseModel "duomonggo_backend/internals/features/courses/courses/model"
	courseRepo "duomonggo_backend/internals/features/courses/courses/repository"
	"duomonggo_backend/internals/features/progress/multiplayer/dto"
	"duomonggo_backend/internals/features/progress/multiplayer/model"
	"duomonggo_backend/internals/features/progress/multiplayer/ranking"
	"duomonggo_backend/internals/features/progress/multiplayer/repository"
	accountModel "duomonggo_backend/internals/features/users/accounts/model"
	helper "duomonggo_backend/internals/helpers"
)

const (
	SourceRedis    = "redis"
	SourceDatabase = "database"

	msgNoAttempt = "No multiplayer course attempt found for this account and course"
)

type AccountLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error)
}

type CourseLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*courseModel.CourseModel, error)
	List(ctx context.Context, f courseRepo.Filter) ([]courseModel.CourseModel, error)
}

type MultiplayerService struct {
	repo     repository.MultiplayerRepository
	accounts AccountLookup
	courses  CourseLookup
	ranking  ranking.Store // nil = Redis mati
	now      func() time.Time
}

func NewMultiplayerService(repo repository.MultiplayerRepository, accounts AccountLookup, courses CourseLookup, store ranking.Store) *MultiplayerService {
	return &MultiplayerService{repo: repo, accounts: accounts, courses: courses, ranking: store, now: time.Now}
}

func (s *MultiplayerService) Start(ctx context.Context, accountID, courseID uuid.UUID) (*model.MultiplayerModel, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsMultiplayer() {
		return nil, helper.BusinessRule("This is not a multiplayer course")
	}
	now := s.now()
	if course.DeadlinePassed(now) {
		return nil, helper.BusinessRule("Course deadline has passed")
	}

	row := &model.MultiplayerModel{AccountID: accountID, CourseID: courseID, StartedAt: now}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, helper.BusinessRule("You have already enrolled in this multiplayer course")
	}
	log.Printf("[Multiplayer] started account=%s course=%s", accountID, courseID)
	return row, nil
}

func (s *MultiplayerService) Complete(ctx context.Context, accountID, courseID uuid.UUID) (*model.MultiplayerModel, error) {
	row, err := s.repo.Complete(ctx, accountID, courseID, s.now())
	if err != nil {
		return nil, err
	}
	log.Printf("[Multiplayer] completed account=%s course=%s in %ds", accountID, courseID, row.DurationSeconds())

	// ranking best-effort; kalau gagal, job sync yang membetulkan
	if s.ranking != nil {
		if err := s.recordRanking(ctx, accountID, courseID, row.DurationSeconds()); err != nil {
			log.Printf("[Multiplayer] ranking record failed course=%s: %v", courseID, err)
		}
	}
	return row, nil
}

// recordRanking: key belum ada = cache dingin, isi penuh dari DB (termasuk baris barusan).
func (s *MultiplayerService) recordRanking(ctx context.Context, accountID, courseID uuid.UUID, duration int64) error {
	warm, err := s.ranking.Exists(ctx, courseID)
	if err != nil {
		return err
	}
	if !warm {
		entries, err := s.rankingFromDB(ctx, courseID)
		if err != nil {
			return err
		}
		return s.ranking.Replace(ctx, courseID, entries)
	}

	username := ""
	if acc, err := s.accounts.GetByID(ctx, accountID); err == nil {
		username = acc.Username
	}
	return s.ranking.Record(ctx, courseID, ranking.Entry{AccountID: accountID, Username: username, DurationSeconds: duration})
}

// IsCompleted: false kalau belum pernah start.
func (s *MultiplayerService) IsCompleted(ctx context.Context, accountID, courseID uuid.UUID) (bool, error) {
	row, err := s.repo.Find(ctx, accountID, courseID)
	if err != nil {
		return false, err
	}
	return row != nil && row.IsCompleted(), nil
}

func (s *MultiplayerService) CompletionTime(ctx context.Context, accountID, courseID uuid.UUID) (int64, error) {
	row, err := s.repo.Find(ctx, accountID, courseID)
	if err != nil {
		return 0, err
	}
	if row == nil {
		return 0, helper.NotFound(msgNoAttempt)
	}
	if !row.IsCompleted() {
		return 0, helper.BusinessRule("Course not yet completed")
	}
	return row.DurationSeconds(), nil
}

// Leaderboard semua sesi selesai untuk course, tanpa urutan.
func (s *MultiplayerService) Leaderboard(ctx context.Context, courseID uuid.UUID) ([]dto.LeaderboardEntry, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListCompleted(ctx, courseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.LeaderboardEntry{
			AccountID:      r.AccountID,
			Username:       r.Username,
			CompletionTime: r.DurationSeconds(),
			CompletedAt:    r.CompletedAt,
		})
	}
	return out, nil
}

func (s *MultiplayerService) Ranking(ctx context.Context, courseID uuid.UUID, limit int64) (*dto.RankingResponse, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	if s.ranking != nil {
		entries, err := s.ranking.Top(ctx, courseID, limit)
		if err == nil && len(entries) > 0 {
			return rankingResponse(courseID, SourceRedis, entries), nil
		}
		if err != nil {
			log.Printf("[Multiplayer] ranking read failed course=%s, fallback to database: %v", courseID, err)
		}
	}

	entries, err := s.rankingFromDB(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if s.ranking != nil && len(entries) > 0 {
		if err := s.ranking.Replace(ctx, courseID, entries); err != nil {
			log.Printf("[Multiplayer] ranking warm-up failed course=%s: %v", courseID, err)
		}
	}
	if limit > 0 && int64(len(entries)) > limit {
		entries = entries[:limit]
	}
	return rankingResponse(courseID, SourceDatabase, entries), nil
}

func (s *MultiplayerService) rankingFromDB(ctx context.Context, courseID uuid.UUID) ([]ranking.Entry, error) {
	rows, err := s.repo.ListCompleted(ctx, courseID)
	if err != nil {
		return nil, err
	}
	entries := make([]ranking.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, ranking.Entry{AccountID: r.AccountID, Username: r.Username, DurationSeconds: r.DurationSeconds()})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].DurationSeconds != entries[j].DurationSeconds {
			return entries[i].DurationSeconds < entries[j].DurationSeconds
		}
		return entries[i].AccountID.String() < entries[j].AccountID.String()
	})
	return entries, nil
}

func rankingResponse(courseID uuid.UUID, source string, entries []ranking.Entry) *dto.RankingResponse {
	out := &dto.RankingResponse{CourseID: courseID, Source: source, Entries: make([]dto.RankingEntry, 0, len(entries))}
	for i, e := range entries {
		out.Entries = append(out.Entries, dto.RankingEntry{
			Rank:           i + 1,
			AccountID:      e.AccountID,
			Username:       e.Username,
			CompletionTime: e.DurationSeconds,
		})
	}
	return out
}

// RebuildAll dipanggil cron: tulis ulang ranking Redis semua course MULTIPLAYER dari DB.
func (s *MultiplayerService) RebuildAll(ctx context.Context) (int, error) {
	if s.ranking == nil {
		return 0, nil
	}
	t := courseModel.CourseMultiplayer
	courses, err := s.courses.List(ctx, courseRepo.Filter{Type: &t})
	if err != nil {
		return 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, c := range courses {
		courseID := c.ID
		g.Go(func() error {
			entries, err := s.rankingFromDB(gctx, courseID)
			if err != nil {
				return err
			}
			return s.ranking.Replace(gctx, courseID, entries)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(courses), nil
}
