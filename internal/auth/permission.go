package auth

import (
	"depo-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RequirePage: sayfa (ve istenirse buton) yetkisi kontrolü.
// Admin rolü yetki haritasını tamamen atlar.
func RequirePage(page models.PageKey, buttons ...models.ActionKey) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(CtxUserRoleKey)
		if role, ok := roleVal.(models.UserRole); ok && role == models.RoleAdmin {
			return c.Next()
		}

		user, err := CurrentUser(c)
		if err != nil {
			return err
		}

		if !user.Permissions.Allows(page, buttons...) {
			return fiber.NewError(fiber.StatusForbidden, "Bu sayfa için yetkiniz yok")
		}

		return c.Next()
	}
}
