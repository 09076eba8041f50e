package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldops/atm-visit-service/internal/api/dto"
	"github.com/fieldops/atm-visit-service/internal/auth"
	apperrors "github.com/fieldops/atm-visit-service/pkg/util"
)

// UsersHandler exposes the authenticated caller's directory record.
type UsersHandler struct{}

// NewUsersHandler constructs the handler.
func NewUsersHandler() *UsersHandler {
	return &UsersHandler{}
}

// Profile GET /user/profile.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewMissingCredential("authentication required")
	}
	return c.JSON(dto.ProfileResponse{
		ID:              user.ID,
		Email:           user.Email,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		ProfileImageURL: user.ProfileImageURL,
		Role:            string(user.Role),
	})
}
