package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fieldops/atm-visit-service/internal/domain"
	"github.com/fieldops/atm-visit-service/internal/identity"
	"github.com/fieldops/atm-visit-service/internal/observability"
	apperrors "github.com/fieldops/atm-visit-service/pkg/util"
)

const userKey = "auth_user"

// UserResolver maps verified credential claims onto the stored directory
// record. Implemented by the directory service.
type UserResolver interface {
	Resolve(ctx context.Context, claims *identity.Claims) (*domain.User, error)
}

// Middleware validates bearer credentials and attaches the directory user to
// the request.
type Middleware struct {
	verifier identity.Verifier
	resolver UserResolver
}

// NewMiddleware constructs the authentication gate.
func NewMiddleware(verifier identity.Verifier, resolver UserResolver) *Middleware {
	return &Middleware{verifier: verifier, resolver: resolver}
}

// Handle enforces authentication for protected routes. A request with no
// usable credential is rejected before the identity provider is consulted;
// an unreachable provider or directory yields a retryable failure, never a
// credential rejection.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewMissingCredential("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return apperrors.NewMissingCredential("authorization header must carry a bearer token")
	}

	claims, err := m.verifier.Verify(c.UserContext(), strings.TrimSpace(parts[1]))
	if err != nil {
		if errors.Is(err, identity.ErrProviderUnavailable) {
			observability.IdentityVerificationsTotal.WithLabelValues("unavailable").Inc()
			return apperrors.NewUnavailable(apperrors.CodeProviderUnavailable, "identity provider unavailable", err)
		}
		observability.IdentityVerificationsTotal.WithLabelValues("invalid").Inc()
		return apperrors.NewInvalidCredential("credential rejected")
	}
	observability.IdentityVerificationsTotal.WithLabelValues("ok").Inc()

	user, err := m.resolver.Resolve(c.UserContext(), claims)
	if err != nil {
		return err
	}

	c.Locals(userKey, user)
	return c.Next()
}

// UserFromContext retrieves the authenticated user.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(userKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
