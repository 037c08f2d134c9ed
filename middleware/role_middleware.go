package middleware

import (
	authutils "recruit-backend/lib/utils/auth-utils"
	"recruit-backend/models"
	apimodels "recruit-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func GetUserID(ctx *fiber.Ctx) int64 {
	return authutils.ClaimsUserID(authutils.GetClaims(ctx))
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return authutils.ClaimsRole(authutils.GetClaims(ctx))
}

// RoleRequired lets through authenticated users with one of the roles.
func RoleRequired(roles ...models.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if GetUserID(ctx) <= 0 {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation not allowed"))
		}
		role := GetUserRole(ctx)
		for _, allowed := range roles {
			if role == allowed {
				return ctx.Next()
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation not allowed"))
	}
}
