package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"duomonggo_backend/internals/features/progress/enrollments/dto"
	"duomonggo_backend/internals/features/progress/enrollments/service"
	helper "duomonggo_backend/internals/helpers"
)

type EnrollmentController struct {
	Service  *service.EnrollmentService
	Validate *validator.Validate
}

func NewEnrollmentController(svc *service.EnrollmentService, v *validator.Validate) *EnrollmentController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &EnrollmentController{Service: svc, Validate: v}
}

func (ctl *EnrollmentController) bind(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	var req dto.EnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return uuid.Nil, uuid.Nil, helper.InvalidInput("Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return req.IDs()
}

func pathIDs(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	accountID, err := helper.ParseUUIDParam(c, "accountId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	courseID, err := helper.ParseUUIDParam(c, "courseId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return accountID, courseID, nil
}

func (ctl *EnrollmentController) Start(c *fiber.Ctx) error {
	accountID, courseID, err := ctl.bind(c)
	if err != nil {
		return err
	}
	row, err := ctl.Service.Start(c.UserContext(), accountID, courseID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Course enrollment started successfully", row)
}

func (ctl *EnrollmentController) Complete(c *fiber.Ctx) error {
	accountID, courseID, err := ctl.bind(c)
	if err != nil {
		return err
	}
	row, err := ctl.Service.Complete(c.UserContext(), accountID, courseID)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Course completed successfully", row)
}

func (ctl *EnrollmentController) Get(c *fiber.Ctx) error {
	accountID, courseID, err := pathIDs(c)
	if err != nil {
		return err
	}
	row, err := ctl.Service.Get(c.UserContext(), accountID, courseID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Enrollment retrieved successfully", row)
}

func (ctl *EnrollmentController) IsCompleted(c *fiber.Ctx) error {
	accountID, courseID, err := pathIDs(c)
	if err != nil {
		return err
	}
	done, err := ctl.Service.IsCompleted(c.UserContext(), accountID, courseID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Course completion status retrieved successfully", done)
}
