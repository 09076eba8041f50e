package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fieldops/atm-visit-service/internal/api/dto"
	"github.com/fieldops/atm-visit-service/internal/auth"
	"github.com/fieldops/atm-visit-service/internal/service"
	apperrors "github.com/fieldops/atm-visit-service/pkg/util"
)

// SubmissionsHandler manages visit report endpoints.
type SubmissionsHandler struct {
	service *service.SubmissionService
}

// NewSubmissionsHandler constructs the handler.
func NewSubmissionsHandler(submissionService *service.SubmissionService) *SubmissionsHandler {
	return &SubmissionsHandler{service: submissionService}
}

// Create POST /submissions.
func (h *SubmissionsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewMissingCredential("authentication required")
	}

	var req dto.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	sub, err := h.service.Create(c.UserContext(), user, service.SubmissionCreateInput{
		ClientName:  req.ClientName,
		Government:  req.Government,
		ATMCode:     req.ATMCode,
		ServiceType: req.ServiceType,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewSubmissionResponse(sub))
}

// ListMine GET /submissions/my.
func (h *SubmissionsHandler) ListMine(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewMissingCredential("authentication required")
	}

	subs, err := h.service.ListMine(c.UserContext(), user.ID)
	if err != nil {
		return err
	}
	items := make([]dto.SubmissionResponse, 0, len(subs))
	for i := range subs {
		items = append(items, dto.NewSubmissionResponse(&subs[i]))
	}
	return c.JSON(items)
}

// ListAll GET /submissions. Reaches here only through the manager gate.
func (h *SubmissionsHandler) ListAll(c *fiber.Ctx) error {
	subs, err := h.service.ListAll(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.SubmissionWithAgentResponse, 0, len(subs))
	for i := range subs {
		items = append(items, dto.SubmissionWithAgentResponse{
			SubmissionResponse: dto.NewSubmissionResponse(&subs[i].Submission),
			AgentName:          subs[i].AgentName,
		})
	}
	return c.JSON(items)
}
