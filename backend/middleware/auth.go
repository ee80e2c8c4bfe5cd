package middleware

import (
	"coursework/backend/models"
	"coursework/backend/services"
	"coursework/backend/utils"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const userKey = "user"

func isAPIRequest(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

// AuthMiddleware проверяет токен и кладет пользователя в c.Locals("user").
// Страницы без авторизации отправляют на /login, API отвечает 401.
func AuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(utils.ExtractTokenString(c))
		if err != nil {
			if services.KindOf(err) != services.KindAuthentication {
				return err
			}
			if isAPIRequest(c) {
				return utils.CodedError(c, fiber.StatusUnauthorized, services.CodeOf(err), "Unauthorized")
			}
			return c.Redirect("/login?error=auth", fiber.StatusSeeOther)
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// OptionalAuth loads the user when a valid token is present and never rejects.
func OptionalAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := utils.ExtractTokenString(c); token != "" {
			if user, err := auth.CurrentUser(token); err == nil {
				c.Locals(userKey, user)
			}
		}
		return c.Next()
	}
}

// CurrentUser returns the account set by AuthMiddleware, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// RequireRole пропускает только пользователей с одной из ролей
func RequireRole(roles ...models.Role) fiber.Handler {
	allowed := make(map[models.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user != nil {
			if _, ok := allowed[user.Role]; ok {
				return c.Next()
			}
		}
		if isAPIRequest(c) {
			return utils.CodedError(c, fiber.StatusForbidden, services.ErrForbidden.Code, "Forbidden")
		}
		return fiber.ErrForbidden
	}
}
