package service

import (
	"context"
	"log"

	"github.com/google/uuid"

	"duomonggo_backend/internals/features/quizzes/answers/dto"
	"duomonggo_backend/internals/features/quizzes/answers/model"
	"duomonggo_backend/internals/features/quizzes/answers/repository"
	helper "duomonggo_backend/internals/helpers"
)

// QuestionExister diisi repo questions.
type QuestionExister interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type AnswerService struct {
	repo      repository.AnswerRepository
	questions QuestionExister
}

func NewAnswerService(repo repository.AnswerRepository, questions QuestionExister) *AnswerService {
	return &AnswerService{repo: repo, questions: questions}
}

func (s *AnswerService) Get(ctx context.Context, id uuid.UUID) (*model.AnswerModel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AnswerService) List(ctx context.Context) ([]model.AnswerModel, error) {
	return s.repo.List(ctx)
}

func (s *AnswerService) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]model.AnswerModel, error) {
	return s.repo.ListByQuestion(ctx, questionID)
}

func (s *AnswerService) Create(ctx context.Context, req dto.CreateAnswerRequest) (*model.AnswerModel, error) {
	req.Normalize()
	qid, err := helper.ParseUUID(req.QuestionID, "question_id")
	if err != nil {
		return nil, err
	}
	ok, err := s.questions.Exists(ctx, qid)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, helper.NotFound("Question not found")
	}

	a := &model.AnswerModel{
		QuestionID: qid,
		Content:    req.Content,
		IsCorrect:  req.IsCorrect != nil && *req.IsCorrect,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnswerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateAnswerRequest) (*model.AnswerModel, error) {
	req.Normalize()
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Content = req.Content
	a.IsCorrect = req.IsCorrect != nil && *req.IsCorrect
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AnswerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *AnswerService) DeleteByQuestion(ctx context.Context, questionID uuid.UUID) (int64, error) {
	n, err := s.repo.DeleteByQuestion(ctx, questionID)
	if err != nil {
		return 0, err
	}
	log.Printf("[INFO] %d answers removed from question %s", n, questionID)
	return n, nil
}
