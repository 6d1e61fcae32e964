package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"duomonggo_backend/internals/features/progress/user_progress/dto"
	"duomonggo_backend/internals/features/progress/user_progress/repository"
	"duomonggo_backend/internals/features/progress/user_progress/service"
	helper "duomonggo_backend/internals/helpers"
)

type UserProgressController struct {
	Service  *service.UserProgressService
	Validate *validator.Validate
}

func NewUserProgressController(svc *service.UserProgressService, v *validator.Validate) *UserProgressController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &UserProgressController{Service: svc, Validate: v}
}

func (ctl *UserProgressController) parse(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return helper.InvalidInput("Invalid request body")
	}
	return ctl.Validate.Struct(out)
}

func (ctl *UserProgressController) List(c *fiber.Ctx) error {
	rows, err := ctl.Service.List(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "All progress retrieved successfully", rows)
}

func (ctl *UserProgressController) ListByAccount(c *fiber.Ctx) error {
	accountID, err := helper.ParseUUIDParam(c, "accountId")
	if err != nil {
		return err
	}
	rows, err := ctl.Service.ListByAccount(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "User progress retrieved successfully", rows)
}

func (ctl *UserProgressController) ListByCourse(c *fiber.Ctx) error {
	courseID, err := helper.ParseUUIDParam(c, "courseId")
	if err != nil {
		return err
	}
	rows, err := ctl.Service.ListByCourse(c.UserContext(), courseID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Course progress retrieved successfully", rows)
}

func (ctl *UserProgressController) Get(c *fiber.Ctx) error {
	accountID, courseID, err := dto.ParseIDs(c.Params("accountId"), c.Params("courseId"))
	if err != nil {
		return err
	}
	row, err := ctl.Service.Get(c.UserContext(), accountID, courseID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Progress retrieved successfully", row)
}

func (ctl *UserProgressController) Start(c *fiber.Ctx) error {
	var req dto.StartProgressRequest
	if err := ctl.parse(c, &req); err != nil {
		return err
	}
	accountID, courseID, err := dto.ParseIDs(req.AccountID, req.CourseID)
	if err != nil {
		return err
	}
	row, err := ctl.Service.Start(c.UserContext(), accountID, courseID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Course started successfully", row)
}

func (ctl *UserProgressController) Update(c *fiber.Ctx) error {
	var req dto.UpdateProgressRequest
	if err := ctl.parse(c, &req); err != nil {
		return err
	}
	accountID, courseID, err := dto.ParseIDs(req.AccountID, req.CourseID)
	if err != nil {
		return err
	}
	row, err := ctl.Service.Update(c.UserContext(), accountID, courseID, repository.Counts{
		CorrectAnswers:    dto.Deref(req.CorrectAnswers),
		TotalQuestions:    dto.Deref(req.TotalQuestions),
		LastQuestionIndex: dto.Deref(req.LastQuestionIndex),
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Progress updated successfully", row)
}

func (ctl *UserProgressController) Complete(c *fiber.Ctx) error {
	var req dto.CompleteProgressRequest
	if err := ctl.parse(c, &req); err != nil {
		return err
	}
	accountID, courseID, err := dto.ParseIDs(req.AccountID, req.CourseID)
	if err != nil {
		return err
	}
	row, err := ctl.Service.Complete(c.UserContext(), accountID, courseID, dto.Deref(req.CorrectAnswers), dto.Deref(req.TotalQuestions))
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Course completed successfully", row)
}

func (ctl *UserProgressController) Stats(c *fiber.Ctx) error {
	accountID, err := helper.ParseUUIDParam(c, "accountId")
	if err != nil {
		return err
	}
	stats, err := ctl.Service.Stats(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "User stats retrieved successfully", stats)
}
