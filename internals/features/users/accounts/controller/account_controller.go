package controller

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"duomonggo_backend/internals/features/users/accounts/dto"
	"duomonggo_backend/internals/features/users/accounts/service"
	helper "duomonggo_backend/internals/helpers"
	"duomonggo_backend/internals/helpers/assets"
)

type AccountController struct {
	Service  *service.AccountService
	Validate *validator.Validate
}

func NewAccountController(svc *service.AccountService, v *validator.Validate) *AccountController {
	if v == nil {
		v = helper.NewValidator()
	}
	return &AccountController{Service: svc, Validate: v}
}

func (ctl *AccountController) List(c *fiber.Ctx) error {
	rows, err := ctl.Service.List(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Accounts found", dto.FromModels(rows))
}

func (ctl *AccountController) Get(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	acc, err := ctl.Service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Account found", dto.FromModel(acc))
}

func (ctl *AccountController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.InvalidInput("Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return err
	}
	acc, err := ctl.Service.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Account created successfully", dto.FromModel(acc))
}

func (ctl *AccountController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.InvalidInput("Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return err
	}
	res, err := ctl.Service.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Login successful", res)
}

// Update menerima JSON atau multipart (field + image).
func (ctl *AccountController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateAccountRequest
	if assets.IsMultipart(c) {
		if req, err = parseMultipartPatch(c); err != nil {
			return err
		}
	} else if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return helper.InvalidInput("Invalid request body")
		}
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return err
	}

	image := assets.GetImageFile(c, "image")
	if req.IsEmpty() && image == nil {
		return helper.InvalidInput("No fields to update")
	}

	acc, err := ctl.Service.Update(c.UserContext(), id, req, image)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Account updated successfully", dto.FromModel(acc))
}

func parseMultipartPatch(c *fiber.Ctx) (dto.UpdateAccountRequest, error) {
	var req dto.UpdateAccountRequest
	form, err := c.MultipartForm()
	if err != nil {
		return req, helper.InvalidInput("Invalid multipart form")
	}
	field := func(name string) *string {
		vals, ok := form.Value[name]
		if !ok || len(vals) == 0 {
			return nil
		}
		v := vals[0]
		return &v
	}
	req.Username = field("username")
	req.Email = field("email")
	req.Password = field("password")
	req.Role = field("role")
	if raw := field("exp"); raw != nil {
		n, err := strconv.Atoi(strings.TrimSpace(*raw))
		if err != nil {
			return req, helper.InvalidInput("exp must be an integer")
		}
		req.Exp = &n
	}
	return req, nil
}

func (ctl *AccountController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	existed, err := ctl.Service.Delete(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !existed {
		return helper.NotFound("Account not found")
	}
	return helper.JsonDeleted(c, "Account deleted successfully", "Account with ID: "+id.String()+" was deleted")
}

func (ctl *AccountController) AdminDashboard(c *fiber.Ctx) error {
	res, err := ctl.Service.Dashboard(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Dashboard data retrieved successfully", res)
}
