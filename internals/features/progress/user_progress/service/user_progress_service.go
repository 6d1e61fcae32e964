package service

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	courseModel "duomonggo_backend/internals/features/courses/courses/model"
	"duomonggo_backend/internals/features/progress/user_progress/dto"
	"duomonggo_backend/internals/features/progress/user_progress/model"
	"duomonggo_backend/internals/features/progress/user_progress/repository"
	accountModel "duomonggo_backend/internals/features/users/accounts/model"
	helper "duomonggo_backend/internals/helpers"
)

const msgProgressNotFound = "Progress not found"

type AccountLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error)
}

type CourseLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*courseModel.CourseModel, error)
}

type UserProgressService struct {
	repo     repository.UserProgressRepository
	accounts AccountLookup
	courses  CourseLookup
	now      func() time.Time
}

func NewUserProgressService(repo repository.UserProgressRepository, accounts AccountLookup, courses CourseLookup) *UserProgressService {
	return &UserProgressService{repo: repo, accounts: accounts, courses: courses, now: time.Now}
}

// CalculateExpReward = round(reward * correct / total); 0 kalau total 0.
func CalculateExpReward(reward, correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(reward) * float64(correct) / float64(total)))
}

func (s *UserProgressService) List(ctx context.Context) ([]model.UserProgressModel, error) {
	return s.repo.List(ctx)
}

func (s *UserProgressService) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]model.UserProgressModel, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

func (s *UserProgressService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.UserProgressModel, error) {
	return s.repo.ListByCourse(ctx, courseID)
}

func (s *UserProgressService) Get(ctx context.Context, accountID, courseID uuid.UUID) (*model.UserProgressModel, error) {
	row, err := s.repo.Find(ctx, accountID, courseID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, helper.NotFound(msgProgressNotFound)
	}
	return row, nil
}

func (s *UserProgressService) Start(ctx context.Context, accountID, courseID uuid.UUID) (*model.UserProgressModel, error) {
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.repo.Start(ctx, accountID, courseID)
}

// Update tidak menyentuh flag completed.
func (s *UserProgressService) Update(ctx context.Context, accountID, courseID uuid.UUID, c repository.Counts) (*model.UserProgressModel, error) {
	return s.repo.UpdateCounts(ctx, accountID, courseID, c, s.now())
}

func (s *UserProgressService) Complete(ctx context.Context, accountID, courseID uuid.UUID, correct, total int) (*model.UserProgressModel, error) {
	if _, err := s.Get(ctx, accountID, courseID); err != nil {
		return nil, err
	}
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	gain := CalculateExpReward(course.ExpReward, correct, total)
	row, awarded, err := s.repo.Complete(ctx, accountID, courseID, correct, total, gain, s.now())
	if err != nil {
		return nil, err
	}
	if awarded {
		log.Printf("[SUCCESS] Progress completed account=%s course=%s %d/%d exp+%d", accountID, courseID, correct, total, gain)
	}
	return row, nil
}

func (s *UserProgressService) CountCompleted(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return s.repo.CountCompleted(ctx, accountID)
}

func (s *UserProgressService) Stats(ctx context.Context, accountID uuid.UUID) (*dto.StatsResponse, error) {
	var out dto.StatsResponse
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.repo.CountCompleted(gctx, accountID)
		out.CompletedCourses = n
		return err
	})
	g.Go(func() error {
		n, err := s.repo.SumExp(gctx, accountID)
		out.TotalExp = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
