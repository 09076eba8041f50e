package identity

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/fieldops/atm-visit-service/internal/config"
)

// OIDCVerifier validates ID tokens against the configured OpenID Connect
// provider using its published signing keys.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
	timeout  time.Duration
}

// NewOIDCVerifier discovers the provider metadata and prepares a token
// verifier bound to the configured client ID.
func NewOIDCVerifier(ctx context.Context, cfg config.AuthConfig) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		return nil, fmt.Errorf("discover oidc provider: %w", err)
	}
	return &OIDCVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID}),
		timeout:  cfg.VerifyTimeout(),
	}, nil
}

// Verify checks the raw token against the provider. A transient provider
// failure is retried once; a failure that persists maps to
// ErrProviderUnavailable so callers never treat an unreachable provider as a
// rejected credential.
func (v *OIDCVerifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	idToken, err := v.verifyOnce(ctx, rawToken)
	if err != nil && isTransient(err) && ctx.Err() == nil {
		idToken, err = v.verifyOnce(ctx, rawToken)
	}
	if err != nil {
		if isTransient(err) {
			return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claimsFromIDToken(idToken)
}

func (v *OIDCVerifier) verifyOnce(ctx context.Context, rawToken string) (*oidc.IDToken, error) {
	verifyCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()
	return v.verifier.Verify(verifyCtx, rawToken)
}

func claimsFromIDToken(idToken *oidc.IDToken) (*Claims, error) {
	var raw struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Name       string `json:"name"`
		Picture    string `json:"picture"`
	}
	if err := idToken.Claims(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode claims: %v", ErrInvalidToken, err)
	}

	claims := &Claims{
		Subject:   idToken.Subject,
		Email:     raw.Email,
		FirstName: raw.GivenName,
		LastName:  raw.FamilyName,
		Picture:   raw.Picture,
	}
	if claims.FirstName == "" && claims.LastName == "" && raw.Name != "" {
		claims.FirstName, claims.LastName = splitName(raw.Name)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token carries no subject", ErrInvalidToken)
	}
	return claims, nil
}

// isTransient reports whether the failure stems from reaching the provider
// rather than from the credential itself.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
