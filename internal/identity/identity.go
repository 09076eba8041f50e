// Package identity verifies bearer credentials against the configured
// identity provider and extracts the caller's directory attributes. The
// service never stores or checks passwords; the provider owns credentials.
package identity

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/fieldops/atm-visit-service/internal/config"
)

// Claims carries the identity attributes extracted from a verified credential.
type Claims struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
	Picture   string
}

// Verifier validates a raw bearer credential and returns the caller's claims.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Claims, error)
}

var (
	// ErrInvalidToken means the provider examined the credential and
	// rejected it (bad signature, expired, wrong audience).
	ErrInvalidToken = errors.New("credential rejected by identity provider")

	// ErrProviderUnavailable means the provider could not be reached, so
	// the credential's validity is unknown.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// NewVerifier builds the verifier selected by configuration.
func NewVerifier(ctx context.Context, cfg config.AuthConfig, logger *zap.Logger) (Verifier, error) {
	switch cfg.Mode {
	case config.AuthModeStatic:
		logger.Warn("static credential verification enabled; not for production use")
		return NewStaticVerifier(cfg.StaticSecret), nil
	default:
		return NewOIDCVerifier(ctx, cfg)
	}
}

// splitName derives first and last name from a combined display name when the
// provider omits the structured name claims.
func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
