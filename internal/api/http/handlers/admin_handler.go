package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldops/atm-visit-service/internal/api/dto"
	"github.com/fieldops/atm-visit-service/internal/auth"
	"github.com/fieldops/atm-visit-service/internal/domain"
	"github.com/fieldops/atm-visit-service/internal/service"
	apperrors "github.com/fieldops/atm-visit-service/pkg/util"
)

// AdminHandler exposes administrative directory operations.
type AdminHandler struct {
	directory *service.DirectoryService
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(directoryService *service.DirectoryService) *AdminHandler {
	return &AdminHandler{directory: directoryService}
}

// UpdateRole PUT /admin/users/role.
func (h *AdminHandler) UpdateRole(c *fiber.Ctx) error {
	actor, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewMissingCredential("authentication required")
	}

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	updated, err := h.directory.UpdateRole(c.UserContext(), actor, req.Email, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(dto.ProfileResponse{
		ID:              updated.ID,
		Email:           updated.Email,
		FirstName:       updated.FirstName,
		LastName:        updated.LastName,
		ProfileImageURL: updated.ProfileImageURL,
		Role:            string(updated.Role),
	})
}
