package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"duomonggo_backend/internals/features/courses/courses/dto"
	"duomonggo_backend/internals/features/courses/courses/model"
	"duomonggo_backend/internals/features/courses/courses/service"
	helper "duomonggo_backend/internals/helpers"
)

type CourseController struct {
	Service  *service.CourseService
	Validate *validator.Validate
}

func NewCourseController(svc *service.CourseService, v *validator.Validate) *CourseController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &CourseController{Service: svc, Validate: v}
}

func listMessage(rows []model.CourseModel, empty string) string {
	if len(rows) == 0 {
		return empty
	}
	return "Courses found"
}

func (ctl *CourseController) List(c *fiber.Ctx) error {
	var q dto.ListCoursesQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.InvalidInput("Invalid query parameters")
	}
	rows, err := ctl.Service.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Courses found", rows)
}

func (ctl *CourseController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	course, err := ctl.Service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Course found", course)
}

func (ctl *CourseController) ListByType(c *fiber.Ctx) error {
	rows, err := ctl.Service.ListByType(c.UserContext(), c.Params("courseType"))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, listMessage(rows, "No courses found with this type"), rows)
}

func (ctl *CourseController) ListByDifficulty(c *fiber.Ctx) error {
	rows, err := ctl.Service.ListByDifficulty(c.UserContext(), c.Params("difficulty"))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, listMessage(rows, "No courses found with this difficulty"), rows)
}

func (ctl *CourseController) Create(c *fiber.Ctx) error {
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.InvalidInput("Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return err
	}
	course, err := ctl.Service.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Course created successfully", course)
}

func (ctl *CourseController) CreateMultiplayer(c *fiber.Ctx) error {
	var req dto.MultiplayerCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.InvalidInput("Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return err
	}
	course, err := ctl.Service.CreateMultiplayer(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Multiplayer course created successfully", course)
}

func (ctl *CourseController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.InvalidInput("Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return err
	}
	course, err := ctl.Service.Update(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Course updated successfully", course)
}

func (ctl *CourseController) UpdateMultiplayer(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	var req dto.MultiplayerCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.InvalidInput("Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return err
	}
	course, err := ctl.Service.UpdateMultiplayer(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Multiplayer course updated successfully", course)
}

func (ctl *CourseController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctl.Service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Course deleted successfully", "Course with ID: "+id.String()+" was deleted")
}
