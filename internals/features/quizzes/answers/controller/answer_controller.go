package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"duomonggo_backend/internals/features/quizzes/answers/dto"
	"duomonggo_backend/internals/features/quizzes/answers/service"
	helper "duomonggo_backend/internals/helpers"
)

type AnswerController struct {
	Service  *service.AnswerService
	Validate *validator.Validate
}

func NewAnswerController(svc *service.AnswerService, v *validator.Validate) *AnswerController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &AnswerController{Service: svc, Validate: v}
}

func (ctl *AnswerController) List(c *fiber.Ctx) error {
	rows, err := ctl.Service.List(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Answers retrieved successfully", rows)
}

func (ctl *AnswerController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	a, err := ctl.Service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Answer retrieved successfully", a)
}

func (ctl *AnswerController) ListByQuestion(c *fiber.Ctx) error {
	qid, err := helper.ParseUUIDParam(c, "questionId")
	if err != nil {
		return err
	}
	rows, err := ctl.Service.ListByQuestion(c.UserContext(), qid)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Answers retrieved successfully", rows)
}

func (ctl *AnswerController) Create(c *fiber.Ctx) error {
	var req dto.CreateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.InvalidInput("Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return err
	}
	a, err := ctl.Service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Answer created successfully", a)
}

func (ctl *AnswerController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.InvalidInput("Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return err
	}
	a, err := ctl.Service.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Answer updated successfully", a)
}

func (ctl *AnswerController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Answer deleted successfully", nil)
}

func (ctl *AnswerController) DeleteByQuestion(c *fiber.Ctx) error {
	qid, err := helper.ParseUUIDParam(c, "questionId")
	if err != nil {
		return err
	}
	n, err := ctl.Service.DeleteByQuestion(c.UserContext(), qid)
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Answers deleted successfully", dto.DeleteByQuestionResponse{
		QuestionID: qid.String(),
		Deleted:    n,
	})
}
