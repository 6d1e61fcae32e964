package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"duomonggo_backend/internals/features/courses/courses/dto"
	"duomonggo_backend/internals/features/courses/courses/model"
	"duomonggo_backend/internals/features/courses/courses/repository"
	helper "duomonggo_backend/internals/helpers"
)

const msgBadDeadline = "Invalid deadline format. Use ISO format (YYYY-MM-DDTHH:MM:SS)"

// Tanpa offset -> dibaca di zona proses.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type CourseService struct {
	repo repository.CourseRepository
	loc  *time.Location
}

func NewCourseService(repo repository.CourseRepository, loc *time.Location) *CourseService {
	if loc == nil {
		loc = time.Local
	}
	return &CourseService{repo: repo, loc: loc}
}

// ParseDeadline menerima ISO-8601 dengan atau tanpa offset.
func ParseDeadline(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, helper.InvalidInput(msgBadDeadline)
}

func (s *CourseService) deadlineFrom(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, helper.InvalidInput("Deadline is required for multiplayer courses")
	}
	t, err := ParseDeadline(*raw, s.loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *CourseService) Get(ctx context.Context, id uuid.UUID) (*model.CourseModel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CourseService) List(ctx context.Context, q dto.ListCoursesQuery) ([]model.CourseModel, error) {
	var f repository.Filter
	if q.Difficulty != "" {
		d, err := model.ParseDifficulty(q.Difficulty)
		if err != nil {
			return nil, err
		}
		f.Difficulty = &d
	}
	if q.Type != "" {
		t, err := model.ParseCourseType(q.Type)
		if err != nil {
			return nil, err
		}
		f.Type = &t
	}
	return s.repo.List(ctx, f)
}

func (s *CourseService) ListByType(ctx context.Context, raw string) ([]model.CourseModel, error) {
	return s.List(ctx, dto.ListCoursesQuery{Type: raw})
}

func (s *CourseService) ListByDifficulty(ctx context.Context, raw string) ([]model.CourseModel, error) {
	return s.List(ctx, dto.ListCoursesQuery{Difficulty: raw})
}

func (s *CourseService) Create(ctx context.Context, req dto.CourseRequest) (*model.CourseModel, error) {
	req.Normalize()
	d, err := model.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}
	ct := model.CourseSingleplayer
	if req.CourseType != nil && *req.CourseType != "" {
		if ct, err = model.ParseCourseType(*req.CourseType); err != nil {
			return nil, err
		}
	}
	c := &model.CourseModel{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  d,
		ExpReward:   expOf(req.ExpReward),
		CourseType:  ct,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	log.Printf("[SUCCESS] Course created id=%s type=%s", c.ID, c.CourseType)
	return c, nil
}

func (s *CourseService) CreateMultiplayer(ctx context.Context, req dto.MultiplayerCourseRequest) (*model.CourseModel, error) {
	req.Normalize()
	d, err := model.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}
	deadline, err := s.deadlineFrom(req.Deadline)
	if err != nil {
		return nil, err
	}
	c := &model.CourseModel{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  d,
		ExpReward:   expOf(req.ExpReward),
		CourseType:  model.CourseMultiplayer,
		Deadline:    deadline,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	log.Printf("[SUCCESS] Multiplayer course created id=%s deadline=%s", c.ID, deadline.Format(time.RFC3339))
	return c, nil
}

// Update mengganti seluruh field; course_type hanya berubah kalau dikirim.
func (s *CourseService) Update(ctx context.Context, id uuid.UUID, req dto.CourseRequest) (*model.CourseModel, error) {
	req.Normalize()
	d, err := model.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.CourseType != nil && *req.CourseType != "" {
		ct, err := model.ParseCourseType(*req.CourseType)
		if err != nil {
			return nil, err
		}
		c.CourseType = ct
	}
	c.Title = req.Title
	c.Description = req.Description
	c.Difficulty = d
	c.ExpReward = expOf(req.ExpReward)

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CourseService) UpdateMultiplayer(ctx context.Context, id uuid.UUID, req dto.MultiplayerCourseRequest) (*model.CourseModel, error) {
	req.Normalize()
	d, err := model.ParseDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}
	deadline, err := s.deadlineFrom(req.Deadline)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Title = req.Title
	c.Description = req.Description
	c.Difficulty = d
	c.ExpReward = expOf(req.ExpReward)
	c.CourseType = model.CourseMultiplayer
	c.Deadline = deadline

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[INFO] Course %s deleted with its questions, enrollments and sessions", id)
	return nil
}

func expOf(p *int) int {
	if p == nil || *p < 0 {
		return 0
	}
	return *p
}
