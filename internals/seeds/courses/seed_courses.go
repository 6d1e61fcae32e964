package courses

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"

	courseModel "duomonggo_backend/internals/features/courses/courses/model"
	courseRepo "duomonggo_backend/internals/features/courses/courses/repository"
	answerModel "duomonggo_backend/internals/features/quizzes/answers/model"
	questionModel "duomonggo_backend/internals/features/quizzes/questions/model"
	questionRepo "duomonggo_backend/internals/features/quizzes/questions/repository"
)

const deadlineLayout = "2006-01-02T15:04:05"

type AnswerSeed struct {
	Content   string `json:"content"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionSeed struct {
	Content      string       `json:"content"`
	QuestionType string       `json:"question_type"`
	Explanation  string       `json:"explanation"`
	OrderNumber  int          `json:"order_number"`
	Answers      []AnswerSeed `json:"answers"`
}

type CourseSeed struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Difficulty  string         `json:"difficulty"`
	CourseType  string         `json:"course_type"`
	ExpReward   int            `json:"exp_reward"`
	Deadline    string         `json:"deadline"` // YYYY-MM-DDTHH:MM:SS, zona proses
	Questions   []QuestionSeed `json:"questions"`
}

func LoadCourseSeeds(filePath string) ([]CourseSeed, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("baca file seed: %w", err)
	}
	var data []CourseSeed
	if err := sonic.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("decode seed JSON: %w", err)
	}
	return data, nil
}

// toModels memvalidasi enum + deadline sebelum ada yang ditulis ke DB.
func (s CourseSeed) toModels(loc *time.Location) (*courseModel.CourseModel, []questionModel.QuestionModel, error) {
	difficulty, err := courseModel.ParseDifficulty(s.Difficulty)
	if err != nil {
		return nil, nil, fmt.Errorf("course %q: %w", s.Title, err)
	}
	courseType := courseModel.CourseSingleplayer
	if strings.TrimSpace(s.CourseType) != "" {
		if courseType, err = courseModel.ParseCourseType(s.CourseType); err != nil {
			return nil, nil, fmt.Errorf("course %q: %w", s.Title, err)
		}
	}

	course := &courseModel.CourseModel{
		Title:       strings.TrimSpace(s.Title),
		Description: s.Description,
		Difficulty:  difficulty,
		CourseType:  courseType,
		ExpReward:   s.ExpReward,
	}
	if s.Deadline != "" {
		d, err := time.ParseInLocation(deadlineLayout, s.Deadline, loc)
		if err != nil {
			return nil, nil, fmt.Errorf("course %q: deadline %q: %w", s.Title, s.Deadline, err)
		}
		course.Deadline = &d
	}
	if course.IsMultiplayer() && course.Deadline == nil {
		return nil, nil, fmt.Errorf("course %q: multiplayer course needs a deadline", s.Title)
	}

	questions := make([]questionModel.QuestionModel, 0, len(s.Questions))
	for _, q := range s.Questions {
		qt, err := questionModel.ParseQuestionType(q.QuestionType)
		if err != nil {
			return nil, nil, fmt.Errorf("course %q question %d: %w", s.Title, q.OrderNumber, err)
		}
		m := questionModel.QuestionModel{
			Content:      q.Content,
			QuestionType: qt,
			Explanation:  q.Explanation,
			OrderNumber:  q.OrderNumber,
		}
		if qt == questionModel.QuestionMultipleChoice {
			for _, a := range q.Answers {
				m.Answers = append(m.Answers, answerModel.AnswerModel{Content: a.Content, IsCorrect: a.IsCorrect})
			}
		}
		questions = append(questions, m)
	}
	return course, questions, nil
}

// SeedCoursesFromJSON idempoten per judul course; mengembalikan jumlah course baru.
func SeedCoursesFromJSON(ctx context.Context, db *gorm.DB, filePath string, loc *time.Location) (int, error) {
	log.Println("📥 Membaca file:", filePath)
	data, err := LoadCourseSeeds(filePath)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, item := range data {
		course, questions, err := item.toModels(loc)
		if err != nil {
			return inserted, err
		}

		var existing courseModel.CourseModel
		err = db.WithContext(ctx).Where("title = ?", course.Title).Take(&existing).Error
		if err == nil {
			log.Printf("ℹ️ Course %q sudah ada, lewati...", course.Title)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return inserted, err
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := courseRepo.NewCourseRepository(tx).Create(ctx, course); err != nil {
				return err
			}
			qRepo := questionRepo.NewQuestionRepository(tx)
			for i := range questions {
				questions[i].CourseID = course.ID
				if err := qRepo.Create(ctx, &questions[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return inserted, fmt.Errorf("insert course %q: %w", course.Title, err)
		}
		inserted++
		log.Printf("✅ Berhasil insert course %q (%d soal)", course.Title, len(questions))
	}
	return inserted, nil
}
