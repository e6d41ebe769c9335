package auth

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kbukum/capkit/capability"
	"github.com/kbukum/capkit/dispatch"
	"github.com/kbukum/capkit/raise"
)

// SigningKeyHolder is the impl-side dependency of JWTExpiryFetcher: the
// context supplies the HMAC key tokens were signed with.
type SigningKeyHolder interface {
	SigningKey() []byte
}

// JWTExpiryFetcher reads a token's expiry from its JWT exp claim after
// verifying the HS256 signature with the context's signing key.
type JWTExpiryFetcher struct{}

func (JWTExpiryFetcher) ProviderName() string { return "jwt-expiry-fetcher" }

func (JWTExpiryFetcher) Constraints() []capability.Constraint {
	return []capability.Constraint{requireSigningKey}
}

func (JWTExpiryFetcher) FetchTokenExpiry(ctx dispatch.Context, token string) (time.Time, error) {
	holder := ctx.(SigningKeyHolder)

	parsed, err := gojwt.Parse(token, func(t *gojwt.Token) (interface{}, error) {
		if t.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return holder.SigningKey(), nil
	}, gojwt.WithoutClaimsValidation())
	if err != nil {
		return time.Time{}, raise.Error(ctx, err)
	}

	expiry, err := parsed.Claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, raise.Error(ctx, ErrUnknownToken{Token: token})
	}
	return expiry.Time, nil
}

func requireSigningKey(ctx any) error {
	if _, ok := ctx.(SigningKeyHolder); !ok {
		return fmt.Errorf("context %T does not supply a signing key", ctx)
	}
	return nil
}

// NewToken issues an HS256 bearer token with the given expiry and a
// random jti claim.
func NewToken(key []byte, expiry time.Time) (string, error) {
	claims := gojwt.RegisteredClaims{
		ID:        uuid.NewString(),
		ExpiresAt: gojwt.NewNumericDate(expiry),
		IssuedAt:  gojwt.NewNumericDate(time.Now()),
	}
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
