package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	helper "duomonggo_backend/internals/helpers"
	helperAuth "duomonggo_backend/internals/helpers/auth"
)

const (
	LocalAccountID = "account_id"
	LocalUsername  = "user_name"
	LocalRole      = "userRole"
)

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if h == "" {
		return "", helper.Unauthorized("Unauthorized - Missing token")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", helper.Unauthorized("Unauthorized - Invalid token format")
	}
	return strings.TrimSpace(parts[1]), nil
}

// AuthMiddleware verifikasi Bearer JWT lalu simpan klaim ke Locals.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return err
		}

		claims, err := helperAuth.ParseAccessToken(secret, tokenString)
		if err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return helper.Unauthorized("Unauthorized - Invalid or expired token")
		}
		id, err := uuid.Parse(claims.AccountID)
		if err != nil {
			return helper.Unauthorized("Unauthorized - Invalid or missing account ID")
		}

		c.Locals(LocalAccountID, id)
		c.Locals(LocalUsername, claims.Username)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

// AccountIDFromLocals untuk handler di belakang AuthMiddleware.
func AccountIDFromLocals(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(LocalAccountID).(uuid.UUID)
	return id, ok
}
