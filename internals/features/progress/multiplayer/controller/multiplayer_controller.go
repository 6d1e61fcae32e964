package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"duomonggo_backend/internals/features/progress/multiplayer/dto"
	"duomonggo_backend/internals/features/progress/multiplayer/service"
	helper "duomonggo_backend/internals/helpers"
)

type MultiplayerController struct {
	Service *service.MultiplayerService
}

func NewMultiplayerController(svc *service.MultiplayerService) *MultiplayerController {
	return &MultiplayerController{Service: svc}
}

// bind: body JSON dulu, kalau kosong ambil dari query string.
func bind(c *fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	var req dto.MultiplayerRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return uuid.Nil, uuid.Nil, helper.InvalidInput("Invalid request body")
		}
	}
	if req.AccountID == "" && req.CourseID == "" {
		if err := c.QueryParser(&req); err != nil {
			return uuid.Nil, uuid.Nil, helper.InvalidInput("Invalid query parameters")
		}
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

func (ctl *MultiplayerController) Start(c *fiber.Ctx) error {
	accountID, courseID, err := bind(c)
	if err != nil {
		return err
	}
	row, err := ctl.Service.Start(c.UserContext(), accountID, courseID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Course started successfully", row)
}

func (ctl *MultiplayerController) Complete(c *fiber.Ctx) error {
	accountID, courseID, err := bind(c)
	if err != nil {
		return err
	}
	row, err := ctl.Service.Complete(c.UserContext(), accountID, courseID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Course completed successfully", row)
}

func (ctl *MultiplayerController) IsCompleted(c *fiber.Ctx) error {
	accountID, courseID, err := pathIDs(c)
	if err != nil {
		return err
	}
	done, err := ctl.Service.IsCompleted(c.UserContext(), accountID, courseID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Completion status retrieved successfully", dto.CompletionStatus{Completed: done})
}

func (ctl *MultiplayerController) CompletionTime(c *fiber.Ctx) error {
	accountID, courseID, err := pathIDs(c)
	if err != nil {
		return err
	}
	secs, err := ctl.Service.CompletionTime(c.UserContext(), accountID, courseID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Completion time retrieved successfully", dto.CompletionTime{CompletionTime: secs})
}

func (ctl *MultiplayerController) Leaderboard(c *fiber.Ctx) error {
	courseID, err := helper.ParseUUIDParam(c, "courseId")
	if err != nil {
		return err
	}
	rows, err := ctl.Service.Leaderboard(c.UserContext(), courseID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "All completion times retrieved successfully", rows)
}

// GET /ranking/course/:courseId?limit=10
func (ctl *MultiplayerController) Ranking(c *fiber.Ctx) error {
	courseID, err := helper.ParseUUIDParam(c, "courseId")
	if err != nil {
		return err
	}
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return helper.InvalidInput("limit must be a non-negative integer")
	}
	out, err := ctl.Service.Ranking(c.UserContext(), courseID, int64(limit))
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Ranking retrieved successfully", out)
}
