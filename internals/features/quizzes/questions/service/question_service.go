package service

import (
	"context"
	"log"
	"mime/multipart"

	"github.com/google/uuid"

	courseModel "duomonggo_backend/internals/features/courses/courses/model"
	answerModel "duomonggo_backend/internals/features/quizzes/answers/model"
	"duomonggo_backend/internals/features/quizzes/questions/dto"
	"duomonggo_backend/internals/features/quizzes/questions/model"
	"duomonggo_backend/internals/features/quizzes/questions/repository"
	helper "duomonggo_backend/internals/helpers"
	"duomonggo_backend/internals/helpers/assets"
)

const imageFolder = "questions"

// CourseLookup diisi repo courses.
type CourseLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*courseModel.CourseModel, error)
}

type QuestionService struct {
	repo     repository.QuestionRepository
	courses  CourseLookup
	uploader assets.Uploader
}

func NewQuestionService(repo repository.QuestionRepository, courses CourseLookup, uploader assets.Uploader) *QuestionService {
	if uploader == nil {
		uploader = assets.Disabled{}
	}
	return &QuestionService{repo: repo, courses: courses, uploader: uploader}
}

func (s *QuestionService) Get(ctx context.Context, id uuid.UUID) (*model.QuestionModel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *QuestionService) List(ctx context.Context) ([]model.QuestionModel, error) {
	return s.repo.List(ctx)
}

func (s *QuestionService) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]model.QuestionModel, error) {
	return s.repo.ListByCourse(ctx, courseID)
}

func (s *QuestionService) uploadImage(ctx context.Context, image *multipart.FileHeader) (*string, error) {
	if image == nil {
		return nil, nil
	}
	url, err := s.uploader.Upload(ctx, imageFolder, image)
	if err != nil {
		log.Printf("[ERROR] upload question image: %v", err)
		return nil, assets.AsAppError(err)
	}
	return &url, nil
}

func toAnswers(choices []dto.ChoiceRequest) []answerModel.AnswerModel {
	out := make([]answerModel.AnswerModel, 0, len(choices))
	for _, ch := range choices {
		out = append(out, answerModel.AnswerModel{Content: ch.Content, IsCorrect: ch.IsCorrect})
	}
	return out
}

// Create: pilihan jawaban hanya disimpan untuk MULTIPLE_CHOICE.
func (s *QuestionService) Create(ctx context.Context, req dto.QuestionRequest, image *multipart.FileHeader) (*model.QuestionModel, error) {
	req.Normalize()
	qt, err := model.ParseQuestionType(req.QuestionType)
	if err != nil {
		return nil, err
	}
	if req.OrderNumber == nil {
		return nil, helper.InvalidInput("order_number is required")
	}
	courseID, err := helper.ParseUUID(req.CourseID, "course_id")
	if err != nil {
		return nil, err
	}
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	imageURL, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}

	q := &model.QuestionModel{
		CourseID:     courseID,
		Content:      req.Content,
		QuestionType: qt,
		Explanation:  req.Explanation,
		OrderNumber:  *req.OrderNumber,
		ImageURL:     imageURL,
		Answers:      []answerModel.AnswerModel{},
	}
	if qt == model.QuestionMultipleChoice && len(req.Choices) > 0 {
		q.Answers = toAnswers(req.Choices)
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	log.Printf("[SUCCESS] Question created id=%s course=%s answers=%d", q.ID, courseID, len(q.Answers))
	return q, nil
}

// Update mengganti content/type/explanation/order. Choices yang dikirim
// untuk MULTIPLE_CHOICE menggantikan seluruh jawaban lama.
func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, req dto.QuestionRequest, image *multipart.FileHeader) (*model.QuestionModel, error) {
	req.Normalize()
	qt, err := model.ParseQuestionType(req.QuestionType)
	if err != nil {
		return nil, err
	}
	if req.OrderNumber == nil {
		return nil, helper.InvalidInput("order_number is required")
	}
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	q.Content = req.Content
	q.QuestionType = qt
	q.Explanation = req.Explanation
	q.OrderNumber = *req.OrderNumber

	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		q.ImageURL = url
	}

	replace := qt == model.QuestionMultipleChoice && req.Choices != nil
	if replace {
		q.Answers = toAnswers(req.Choices)
	}
	if err := s.repo.Update(ctx, q, replace); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[INFO] Question %s deleted with its answers", id)
	return nil
}
