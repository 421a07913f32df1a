package middleware

import (
	"jobport/internal/domain/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// RequireRoles gates a route on the principal's role claim. It must run
// after the auth middleware; public read-only routes skip both entirely.
func RequireRoles(allowed ...user.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := c.Locals(CtxRoleKey).(user.Role)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "You are not logged in", nil, nil)
		}

		if !role.OneOf(allowed...) {
			return NewAppError(fiber.StatusForbidden, "You are not allowed to perform this action", nil, nil)
		}

		return c.Next()
	}
}

// PrincipalFromCtx rebuilds the authenticated principal the auth middleware
// stored on the request.
func PrincipalFromCtx(c fiber.Ctx) (user.Principal, bool) {
	id, ok := c.Locals(CtxUserIDKey).(uuid.UUID)
	if !ok {
		return user.Principal{}, false
	}
	role, ok := c.Locals(CtxRoleKey).(user.Role)
	if !ok {
		return user.Principal{}, false
	}
	email, _ := c.Locals(CtxEmailKey).(string)

	return user.Principal{ID: id, Email: email, Role: role}, true
}
