package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// StaticVerifier validates HS256 tokens signed with a shared secret. It
// serves local development and tests where no identity provider is reachable;
// production deployments use the OIDC verifier.
type StaticVerifier struct {
	secret []byte
}

// NewStaticVerifier builds a verifier around the shared secret.
func NewStaticVerifier(secret string) *StaticVerifier {
	return &StaticVerifier{secret: []byte(secret)}
}

type staticClaims struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
	jwt.RegisteredClaims
}

// Verify validates the token signature and expiry and returns its claims.
func (v *StaticVerifier) Verify(_ context.Context, rawToken string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(rawToken, &staticClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*staticClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid claims", ErrInvalidToken)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token carries no subject", ErrInvalidToken)
	}

	return &Claims{
		Subject:   claims.Subject,
		Email:     claims.Email,
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
		Picture:   claims.Picture,
	}, nil
}

// MintToken signs a token carrying the given claims. Used by development
// tooling and tests.
func (v *StaticVerifier) MintToken(claims *Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &staticClaims{
		Email:      claims.Email,
		GivenName:  claims.FirstName,
		FamilyName: claims.LastName,
		Picture:    claims.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(v.secret)
}
