package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldops/atm-visit-service/internal/domain"
	apperrors "github.com/fieldops/atm-visit-service/pkg/util"
)

// RequireRole ensures the caller's role ranks at least as high as required.
// Roles are ordered agent < manager < admin, so a manager passes an agent
// gate and an admin passes every gate.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := UserFromContext(c)
		if !ok {
			return apperrors.NewMissingCredential("authentication required")
		}
		if !user.Role.AtLeast(required) {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
