package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	courseModel "duomonggo_backend/internals/features/courses/courses/model"
	"duomonggo_backend/internals/features/progress/enrollments/model"
	"duomonggo_backend/internals/features/progress/enrollments/repository"
	accountModel "duomonggo_backend/internals/features/users/accounts/model"
	helper "duomonggo_backend/internals/helpers"
)

type AccountLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*accountModel.AccountModel, error)
}

type CourseLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*courseModel.CourseModel, error)
}

type EnrollmentService struct {
	repo     repository.EnrollmentRepository
	accounts AccountLookup
	courses  CourseLookup
	now      func() time.Time
}

func NewEnrollmentService(repo repository.EnrollmentRepository, accounts AccountLookup, courses CourseLookup) *EnrollmentService {
	return &EnrollmentService{repo: repo, accounts: accounts, courses: courses, now: time.Now}
}

// Get: NotFound kalau belum pernah mulai.
func (s *EnrollmentService) Get(ctx context.Context, accountID, courseID uuid.UUID) (*model.EnrollmentModel, error) {
	row, err := s.repo.Find(ctx, accountID, courseID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, helper.NotFound("Enrollment not found")
	}
	return row, nil
}

func (s *EnrollmentService) Start(ctx context.Context, accountID, courseID uuid.UUID) (*model.EnrollmentModel, error) {
	existing, err := s.repo.Find(ctx, accountID, courseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if _, err := s.accounts.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.repo.Start(ctx, accountID, courseID)
}

// Complete: exp course hanya ditambahkan sekali.
func (s *EnrollmentService) Complete(ctx context.Context, accountID, courseID uuid.UUID) (*model.EnrollmentModel, error) {
	if _, err := s.Get(ctx, accountID, courseID); err != nil {
		return nil, err
	}
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	row, awarded, err := s.repo.Complete(ctx, accountID, courseID, course.ExpReward, s.now())
	if err != nil {
		return nil, err
	}
	if awarded {
		log.Printf("[SUCCESS] Enrollment completed account=%s course=%s exp+%d", accountID, courseID, course.ExpReward)
	}
	return row, nil
}

func (s *EnrollmentService) IsCompleted(ctx context.Context, accountID, courseID uuid.UUID) (bool, error) {
	row, err := s.repo.Find(ctx, accountID, courseID)
	if err != nil {
		return false, err
	}
	return row != nil && row.IsCompleted, nil
}
