package controller

import (
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"duomonggo_backend/internals/features/quizzes/questions/dto"
	"duomonggo_backend/internals/features/quizzes/questions/service"
	helper "duomonggo_backend/internals/helpers"
	"duomonggo_backend/internals/helpers/assets"
)

type QuestionController struct {
	Service  *service.QuestionService
	Validate *validator.Validate
}

func NewQuestionController(svc *service.QuestionService, v *validator.Validate) *QuestionController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &QuestionController{Service: svc, Validate: v}
}

func (ctl *QuestionController) List(c *fiber.Ctx) error {
	rows, err := ctl.Service.List(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Questions retrieved successfully", rows)
}

func (ctl *QuestionController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	q, err := ctl.Service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Question retrieved successfully", q)
}

func (ctl *QuestionController) ListByCourse(c *fiber.Ctx) error {
	courseID, err := helper.ParseUUIDParam(c, "courseId")
	if err != nil {
		return err
	}
	rows, err := ctl.Service.ListByCourse(c.UserContext(), courseID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Questions retrieved successfully", rows)
}

// bindRequest: JSON biasa atau multipart (field + image, choices sebagai JSON string).
func (ctl *QuestionController) bindRequest(c *fiber.Ctx) (dto.QuestionRequest, error) {
	var req dto.QuestionRequest
	if assets.IsMultipart(c) {
		r, err := parseMultipart(c)
		if err != nil {
			return req, err
		}
		req = r
	} else if err := c.BodyParser(&req); err != nil {
		return req, helper.InvalidInput("Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return req, err
	}
	return req, nil
}

func parseMultipart(c *fiber.Ctx) (dto.QuestionRequest, error) {
	var req dto.QuestionRequest
	form, err := c.MultipartForm()
	if err != nil {
		return req, helper.InvalidInput("Invalid multipart form")
	}
	value := func(name string) (string, bool) {
		vals, ok := form.Value[name]
		if !ok || len(vals) == 0 {
			return "", false
		}
		return vals[0], true
	}

	req.Content, _ = value("content")
	req.QuestionType, _ = value("question_type")
	req.Explanation, _ = value("explanation")
	req.CourseID, _ = value("course_id")

	if raw, ok := value("order_number"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return req, helper.InvalidInput("order_number must be an integer")
		}
		req.OrderNumber = &n
	}
	if raw, ok := value("choices"); ok && strings.TrimSpace(raw) != "" {
		choices := []dto.ChoiceRequest{}
		if err := sonic.UnmarshalString(raw, &choices); err != nil {
			return req, helper.InvalidInput("choices must be a JSON array of {content, is_correct}")
		}
		req.Choices = choices
	}
	return req, nil
}

func (ctl *QuestionController) Create(c *fiber.Ctx) error {
	req, err := ctl.bindRequest(c)
	if err != nil {
		return err
	}
	q, err := ctl.Service.Create(c.UserContext(), req, assets.GetImageFile(c, "image"))
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Question created successfully", q)
}

func (ctl *QuestionController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	req, err := ctl.bindRequest(c)
	if err != nil {
		return err
	}
	q, err := ctl.Service.Update(c.UserContext(), id, req, assets.GetImageFile(c, "image"))
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Question updated successfully", q)
}

func (ctl *QuestionController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Question deleted successfully", nil)
}
